/*
Package configs is responsible for loading and parsing the application's
configuration settings.

Configuration comes from environment variables, optionally seeded from a .env
file. It covers the running environment, HTTP port, CORS allowed origins, the
session token secret, the database connection, the history snapshot directory,
and the optional S3-compatible archive backend.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string
	JWTSecret      string

	// History Snapshot Settings
	HistoryDir string

	// Archive (S3-compatible) Settings; all four must be set to enable archiving.
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// Database Settings; empty means the in-memory development store.
	DatabaseDSN string
}

// ArchiveEnabled reports whether the S3 archive backend is fully configured.
func (c *AppConfig) ArchiveEnabled() bool {
	return c.S3BucketName != "" && c.S3Endpoint != "" &&
		c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

// LoadConfig reads and parses the application configuration from environment
// variables, providing defaults where sensible and validating the rest.
func LoadConfig() (*AppConfig, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if cfg.Environment == "development" {
		if jwtSecret == "" {
			jwtSecret = "your_default_insecure_secret_key_change_me"
		}
	} else {
		if jwtSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment for security", cfg.Environment)
		}
	}
	cfg.JWTSecret = jwtSecret

	// --- History Snapshot Settings ---
	cfg.HistoryDir = os.Getenv("HISTORY_DIR")
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = "./data/history"
	}

	// --- Archive Settings ---
	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")

	partial := cfg.S3BucketName != "" || cfg.S3Endpoint != "" ||
		cfg.S3AccessKeyID != "" || cfg.S3SecretAccessKey != ""
	if partial && !cfg.ArchiveEnabled() {
		return nil, fmt.Errorf("incomplete S3 archive configuration: S3_BUCKET_NAME, S3_ENDPOINT, S3_ACCESS_KEY_ID, and S3_SECRET_ACCESS_KEY must all be set")
	}

	// --- Database Settings ---
	cfg.DatabaseDSN = os.Getenv("DATABASE_URL")
	if cfg.DatabaseDSN == "" && cfg.Environment != "development" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required in %s environment", cfg.Environment)
	}

	return cfg, nil
}
