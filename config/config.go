package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	DBPath    string
	UploadDir string
	JWTSecret string
}

var cfg *Config

// Load reads .env (if present) and environment variables with defaults.
func Load() *Config {
	// Missing .env is fine, real env vars still apply
	_ = godotenv.Load()

	cfg = &Config{
		Port:      getEnv("PORT", "3000"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		DBPath:    getEnv("DB_PATH", "database.db"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
	}
	return cfg
}

// Get returns the loaded configuration, loading it on first use.
func Get() *Config {
	if cfg == nil {
		return Load()
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
