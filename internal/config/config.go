package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the client tooling.
type Config struct {
	SendGrid   SendGridConfig   `yaml:"sendgrid"`
	Validation ValidationConfig `yaml:"validation"`
	LogLevel   string           `yaml:"log_level"`
}

// SendGridConfig holds Mail Send API configuration.
type SendGridConfig struct {
	APIKey         string `yaml:"api_key"`
	EU             bool   `yaml:"eu"`
	BaseURL        string `yaml:"base_url"` // override for local stub testing
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration.
func (c SendGridConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ValidationConfig holds Email Address Validation API configuration.
// The validation API uses its own key, separate from the mail-send key.
type ValidationConfig struct {
	APIKey               string `yaml:"api_key"`
	EU                   bool   `yaml:"eu"`
	BaseURL              string `yaml:"base_url"` // override for local stub testing
	TimeoutSeconds       int    `yaml:"timeout_seconds"`
	UploadTimeoutSeconds int    `yaml:"upload_timeout_seconds"`
}

// Timeout returns the configured metadata-call timeout as a duration.
func (c ValidationConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// UploadTimeout returns the configured bulk file upload timeout as a
// duration. Uploads are slow compared to metadata calls and get their
// own budget.
func (c ValidationConfig) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutSeconds) * time.Second
}

// Default returns a Config with all defaults applied and no credentials.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.SendGrid.TimeoutSeconds == 0 {
		cfg.SendGrid.TimeoutSeconds = 30
	}
	if cfg.Validation.TimeoutSeconds == 0 {
		cfg.Validation.TimeoutSeconds = 30
	}
	if cfg.Validation.UploadTimeoutSeconds == 0 {
		cfg.Validation.UploadTimeoutSeconds = 180
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Load reads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// A .env file is loaded first if present. If path is empty, defaults
// are used as the base instead of a YAML file.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	var cfg *Config
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = Default()
	}

	// Override with environment variables if present
	if apiKey := os.Getenv("SENDGRID_API_KEY"); apiKey != "" {
		cfg.SendGrid.APIKey = apiKey
	}
	if baseURL := os.Getenv("SENDGRID_BASE_URL"); baseURL != "" {
		cfg.SendGrid.BaseURL = baseURL
	}
	if apiKey := os.Getenv("SENDGRID_VALIDATION_API_KEY"); apiKey != "" {
		cfg.Validation.APIKey = apiKey
	}
	if baseURL := os.Getenv("SENDGRID_VALIDATION_BASE_URL"); baseURL != "" {
		cfg.Validation.BaseURL = baseURL
	}
	if eu := os.Getenv("SENDGRID_EU"); eu == "true" || eu == "1" {
		cfg.SendGrid.EU = true
		cfg.Validation.EU = true
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}
