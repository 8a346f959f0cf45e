package config

import (
	"os"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	BaseURL  string
	LogLevel string
	// MaxBodyBytes bounds multipart uploads at the HTTP layer, above the intake limit.
	MaxBodyBytes int
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Warnf("APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name:         getEnv("APP_NAME", "resumind"),
			Env:          env,
			Port:         getEnv("APP_PORT", ":8080"),
			BaseURL:      os.Getenv("APP_URL"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			MaxBodyBytes: getEnvInt("APP_MAX_BODY_BYTES", 25*1024*1024),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
