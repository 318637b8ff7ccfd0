// Package config loads pipeline configuration from the process environment.
// A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// PostgresConfig holds connection parameters for the record store.
type PostgresConfig struct {
	Host     string
	Database string
	User     string
	Password string
}

// DSN builds a libpq-style connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s dbname=%s user=%s password=%s",
		c.Host, c.Database, c.User, c.Password)
}

// Config holds the full pipeline configuration.
type Config struct {
	Postgres PostgresConfig

	// SourceDir is the root of the tree scanned for input files.
	SourceDir string

	// OutputDir receives the exported CSV files.
	OutputDir string

	LogLevel    string
	Development bool
}

// Load reads configuration from the environment.
// Missing required values are a fatal startup condition and return an error.
func Load() (*Config, error) {
	// Best effort: the file is optional, env vars win either way.
	_ = godotenv.Load()

	pg := PostgresConfig{}
	required := []struct {
		key  string
		dest *string
	}{
		{"POSTGRES_HOST", &pg.Host},
		{"POSTGRES_DATABASE", &pg.Database},
		{"POSTGRES_UID", &pg.User},
		{"POSTGRES_PASSWORD", &pg.Password},
	}

	for _, r := range required {
		v := os.Getenv(r.key)
		if v == "" {
			return nil, fmt.Errorf("required environment variable %s not set", r.key)
		}
		*r.dest = v
	}

	return &Config{
		Postgres:    pg,
		SourceDir:   getEnv("SOURCE_DIR", "./test-data"),
		OutputDir:   getEnv("OUTPUT_DIR", "./final"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
