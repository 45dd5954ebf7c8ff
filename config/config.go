package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT configuration. The signing secret is injected here at startup and
	// must never appear as a source constant.
	JWTSecret string

	// Upload configuration. StorageBackend is StorageLocal or StorageS3;
	// UploadDir only applies to the local backend.
	StorageBackend string
	UploadDir      string
}

// Supported upload storage backends.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// LoadConfig creates a new Config instance. Development, test and CI read
// environment variables; production reads Docker secrets.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if GetEnvironment() == Production {
		loadProdConfig(cfg)
	} else {
		loadEnvConfig(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig loads configuration from environment variables with local
// defaults for everything except the JWT secret.
func loadEnvConfig(cfg *Config) {
	cfg.ServerPort = getenv("SERVER_PORT", "8080")
	cfg.ServerHost = getenv("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = getenv("DB_HOST", "localhost")
	cfg.DBPort = getenv("DB_PORT", "5432")
	cfg.DBUser = getenv("DB_USER", "postgres")
	cfg.DBPassword = getenv("DB_PASSWORD", "postgres")
	cfg.DBName = getenv("DB_NAME", "recipespace")
	cfg.DBSSLMode = getenv("DB_SSL_MODE", "disable")
	cfg.RedisAddr = getenv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = 0
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.StorageBackend = getenv("STORAGE_BACKEND", StorageLocal)
	cfg.UploadDir = getenv("UPLOAD_DIR", "uploads")
}

// loadProdConfig loads configuration for production using ONLY Docker secrets
func loadProdConfig(cfg *Config) {
	cfg.ServerPort = readSecret("server_port")
	cfg.ServerHost = readSecret("server_host")
	cfg.DBHost = readSecret("db_host")
	cfg.DBPort = readSecret("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = readSecret("db_name")
	cfg.DBSSLMode = readSecret("db_ssl_mode")
	cfg.RedisAddr = readSecret("redis_addr")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisDB = 0
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.StorageBackend = readSecret("storage_backend")
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = StorageLocal
	}
	cfg.UploadDir = readSecret("upload_dir")
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
