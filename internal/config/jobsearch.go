package config

import (
	"os"
	"sync"
	"time"
)

type JobSearchConfig struct {
	RapidAPIKey string
	Host        string
	BaseURL     string
	NumPages    int
	Timeout     time.Duration
}

var (
	jobSearchConfig *JobSearchConfig
	jobSearchOnce   sync.Once
)

func LoadJobSearchConfig() *JobSearchConfig {
	jobSearchOnce.Do(func() {
		host := getEnv("RAPIDAPI_HOST", "jsearch.p.rapidapi.com")
		jobSearchConfig = &JobSearchConfig{
			RapidAPIKey: os.Getenv("RAPIDAPI_KEY"),
			Host:        host,
			BaseURL:     getEnv("JSEARCH_BASE_URL", "https://"+host),
			NumPages:    getEnvInt("JSEARCH_NUM_PAGES", 1),
			Timeout:     getEnvDuration("JSEARCH_TIMEOUT", 30*time.Second),
		}
	})
	return jobSearchConfig
}

func (c *JobSearchConfig) Enabled() bool {
	return c.RapidAPIKey != ""
}
