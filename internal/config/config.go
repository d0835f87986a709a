package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	GFW     GFWConfig
	Export  ExportConfig
	MongoDB MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// GFWConfig contains credentials and options for the Global Forest Watch
// data API. The API key is optional; requests the provider rejects fall
// back to simulated data.
type GFWConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// ExportConfig holds document rendering options: where artifacts land and
// where the ministry branding assets live.
type ExportConfig struct {
	Dir           string
	LogoPath      string
	SignaturePath string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	timeout, err := time.ParseDuration(getenvWithDefault("GFW_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GFW_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		GFW: GFWConfig{
			APIKey:  os.Getenv("GFW_API_KEY"),
			BaseURL: getenvWithDefault("GFW_BASE_URL", "https://data-api.globalforestwatch.org"),
			Timeout: timeout,
		},
		Export: ExportConfig{
			Dir:           getenvWithDefault("EXPORT_DIR", "exports"),
			LogoPath:      getenvWithDefault("MINISTRY_LOGO_PATH", "assets/logo.png"),
			SignaturePath: getenvWithDefault("MINISTRY_SIGNATURE_PATH", "assets/signature.png"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "creditcarbon"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.GFW.BaseURL == "" {
		return errors.New("GFW_BASE_URL must not be empty")
	}

	if c.GFW.Timeout <= 0 {
		return errors.New("GFW_TIMEOUT must be positive")
	}

	if c.Export.Dir == "" {
		return errors.New("EXPORT_DIR must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
