package config

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

// LoadDBConfig reads DB_* variables. Pool defaults are larger in production.
func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		idle, open, lifetime := 5, 10, 30*time.Minute
		if LoadAppConfig().IsProduction() {
			idle, open, lifetime = 20, 200, time.Hour
		}
		dbConfig = &DBConfig{
			Host:            os.Getenv("DB_HOST"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            os.Getenv("DB_USER"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            os.Getenv("DB_NAME"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", idle),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", open),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", lifetime),
		}
	})
	return dbConfig
}

// Enabled reports whether a Postgres host was configured. Without one the
// server keeps records in memory.
func (c *DBConfig) Enabled() bool {
	return c.Host != ""
}

func (c *DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}
