package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the SmartDocAI backend.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Uploads  UploadsConfig
	Sarvam   SarvamConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the embedded store settings.
type DatabaseConfig struct {
	Path string
}

// UploadsConfig holds on-disk storage settings for uploaded originals.
type UploadsConfig struct {
	Dir string
}

// SarvamConfig holds the remote summarization endpoint settings.
// If URL or APIKey is empty the remote summarizer is disabled and every
// upload uses the keyword fallback.
type SarvamConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Load reads configuration from the environment. A .env file is loaded
// first if present (ignored otherwise).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "smartdocai.db"),
		},
		Uploads: UploadsConfig{
			Dir: getEnv("UPLOAD_DIR", "uploads"),
		},
		Sarvam: SarvamConfig{
			URL:     os.Getenv("SARVAM_SUMMARY_URL"),
			APIKey:  os.Getenv("SARVAM_API_KEY"),
			Timeout: time.Duration(getEnvInt("SUMMARY_TIMEOUT_SECONDS", 15)) * time.Second,
		},
	}
	return cfg, nil
}

// getEnv returns the value of key or fallback if unset/empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns the integer value of key or fallback if unset/invalid.
func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
