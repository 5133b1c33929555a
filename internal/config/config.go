package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates runtime configuration for the FileHub API.
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Storage  StorageConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
	Metrics  MetricsConfig
}

// ServerConfig parameterizes the HTTP server.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PostgresConfig contains PostgreSQL connection details.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN returns the PostgreSQL DSN string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// Blob store backends.
const (
	StorageBackendDisk  = "disk"
	StorageBackendMinIO = "minio"
)

// StorageConfig selects and parameterizes the blob store backend.
type StorageConfig struct {
	Backend       string
	UploadDir     string
	MaxFileSize   int64
	MaxBatchFiles int
}

// MinIOConfig carries MinIO connection and bucket information.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
}

// AuthConfig groups authentication-related settings.
type AuthConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
	BcryptCost  int
}

// MetricsConfig groups observability settings.
type MetricsConfig struct {
	PrometheusPath string
}

// Load reads configuration values from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:         getString("FILEHUB_API_HOST", "0.0.0.0"),
			Port:         getInt("FILEHUB_API_PORT", 3001),
			ReadTimeout:  getDuration("FILEHUB_API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("FILEHUB_API_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("FILEHUB_API_IDLE_TIMEOUT", 60*time.Second),
		},
		Postgres: PostgresConfig{
			Host:     getString("POSTGRES_HOST", "localhost"),
			Port:     getInt("POSTGRES_PORT", 5432),
			User:     getString("POSTGRES_USER", "filehub_app"),
			Password: getString("POSTGRES_PASSWORD", "change-me"),
			Database: getString("POSTGRES_DB", "filehub"),
			SSLMode:  strings.ToLower(getString("POSTGRES_SSL_MODE", "disable")),
		},
		Storage: loadStorageConfig(),
		MinIO: MinIOConfig{
			Endpoint:        getString("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getString("MINIO_ROOT_USER", "filehub"),
			SecretAccessKey: getString("MINIO_ROOT_PASSWORD", "change-me-strong-password"),
			Bucket:          getString("MINIO_BUCKET", "filehub"),
			UseSSL:          getBool("MINIO_USE_SSL", false),
			Region:          getString("MINIO_REGION", ""),
		},
		Auth: loadAuthConfig(),
		Metrics: MetricsConfig{
			PrometheusPath: getString("FILEHUB_METRICS_PATH", "/metrics"),
		},
	}

	if cfg.Storage.Backend != StorageBackendDisk && cfg.Storage.Backend != StorageBackendMinIO {
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:       strings.ToLower(getString("FILEHUB_STORAGE_BACKEND", StorageBackendDisk)),
		UploadDir:     getString("FILEHUB_UPLOAD_DIR", "uploads"),
		MaxFileSize:   getInt64("FILEHUB_MAX_FILE_SIZE", 100*1024*1024),
		MaxBatchFiles: getInt("FILEHUB_MAX_BATCH_FILES", 500),
	}
}

func loadAuthConfig() AuthConfig {
	cost := getInt("FILEHUB_AUTH_BCRYPT_COST", 12)
	if cost < 4 || cost > 31 {
		cost = 12
	}

	return AuthConfig{
		TokenSecret: getString("FILEHUB_JWT_SECRET", "change-me-to-a-32-byte-secret"),
		TokenTTL:    getDuration("FILEHUB_AUTH_TOKEN_TTL", 24*time.Hour),
		BcryptCost:  cost,
	}
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "1", "true", "t", "yes", "y":
			return true
		case "0", "false", "f", "no", "n":
			return false
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
