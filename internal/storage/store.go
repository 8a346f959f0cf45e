package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fadilmartias/resumind/internal/config"
	"github.com/google/uuid"
)

var (
	ErrInvalidPath = errors.New("invalid storage path")
	ErrEmptyBlob   = errors.New("blob is empty")
)

// Blob is a named payload to upload.
type Blob struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploaded describes a stored blob. Path is opaque and stable.
type Uploaded struct {
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

type BlobStore interface {
	Upload(ctx context.Context, blob Blob) (*Uploaded, error)
	Read(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
}

// NewBlobStore builds the store selected by STORAGE_DRIVER.
func NewBlobStore(ctx context.Context) (BlobStore, error) {
	cfg := config.LoadStorageConfig()
	switch cfg.Driver {
	case config.StorageDriverLocal, "":
		return NewLocalStore(cfg.LocalDir)
	case config.StorageDriverS3:
		return NewS3Store(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "file"
	}
	if len(base) > 120 {
		base = base[len(base)-120:]
	}
	return base
}

func contentTypeOf(blob Blob) string {
	if blob.ContentType != "" {
		return blob.ContentType
	}
	n := len(blob.Data)
	if n > 512 {
		n = 512
	}
	return http.DetectContentType(blob.Data[:n])
}

func objectName(name string) string {
	return uuid.NewString() + "_" + sanitizeFileName(name)
}
