package config

import (
	"os"
	"strings"
	"sync"
)

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type StorageConfig struct {
	Driver   string
	LocalDir string
	S3Bucket string
	S3Region string
	S3Prefix string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			Driver:   strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal)),
			LocalDir: getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			S3Bucket: os.Getenv("S3_BUCKET"),
			S3Region: os.Getenv("AWS_REGION"),
			S3Prefix: os.Getenv("S3_PREFIX"),
		}
	})
	return storageConfig
}
