package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Catalog    CatalogConfig
	State      StateConfig
	Mail       MailConfig
	Processing ProcessingConfig
	Store      StoreConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// CatalogConfig locates the product catalog file.
type CatalogConfig struct {
	Path string
}

// StateConfig locates the durable client-state directory.
type StateConfig struct {
	Dir string
}

// MailConfig holds the transactional-mail API settings and the notification
// inboxes. An empty APIKey leaves notifications as logged no-ops.
type MailConfig struct {
	APIEndpoint string
	APIKey      string
	From        string
	Operator    string
	Backup      string
}

// ProcessingConfig bounds the simulated order-processing delay.
type ProcessingConfig struct {
	MinDelayMs int
	MaxDelayMs int
}

// MinDelay returns the lower delay bound as a duration.
func (c ProcessingConfig) MinDelay() time.Duration {
	return time.Duration(c.MinDelayMs) * time.Millisecond
}

// MaxDelay returns the upper delay bound as a duration.
func (c ProcessingConfig) MaxDelay() time.Duration {
	return time.Duration(c.MaxDelayMs) * time.Millisecond
}

// StoreConfig holds storefront identity settings used by the client flows.
type StoreConfig struct {
	BusinessPhone string
	Locale        string
}

// Load loads configuration from the environment, reading a .env file first
// when one is present.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "data/products.json"),
		},
		State: StateConfig{
			Dir: getEnv("STATE_DIR", "data/state"),
		},
		Mail: MailConfig{
			APIEndpoint: getEnv("MAIL_API_ENDPOINT", "https://api.resend.com/emails"),
			APIKey:      getEnv("MAIL_API_KEY", ""),
			From:        getEnv("MAIL_FROM", "orders@kasameri.bg"),
			Operator:    getEnv("MAIL_OPERATOR", "office@kasameri.bg"),
			Backup:      getEnv("MAIL_BACKUP", ""),
		},
		Processing: ProcessingConfig{
			MinDelayMs: getEnvAsInt("PROCESSING_MIN_DELAY_MS", 800),
			MaxDelayMs: getEnvAsInt("PROCESSING_MAX_DELAY_MS", 1200),
		},
		Store: StoreConfig{
			BusinessPhone: getEnv("BUSINESS_PHONE", "+359877123456"),
			Locale:        getEnv("STORE_LOCALE", "bg"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}

	if c.State.Dir == "" {
		return fmt.Errorf("state directory is required")
	}

	if c.Mail.APIKey != "" {
		if c.Mail.APIEndpoint == "" {
			return fmt.Errorf("mail API endpoint is required when a mail API key is set")
		}
		if c.Mail.From == "" {
			return fmt.Errorf("mail sender address is required when a mail API key is set")
		}
		if c.Mail.Operator == "" {
			return fmt.Errorf("operator inbox is required when a mail API key is set")
		}
	}

	if c.Processing.MinDelayMs < 0 || c.Processing.MaxDelayMs < 0 {
		return fmt.Errorf("processing delays must not be negative")
	}

	if c.Processing.MinDelayMs > c.Processing.MaxDelayMs {
		return fmt.Errorf("processing min delay cannot exceed max delay")
	}

	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
