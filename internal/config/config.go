package config

import (
	"os"
	"strconv"

	"degviz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds dataset handling settings
type DataConfig struct {
	// ConditionSuffix is the qualifier appended to column names by the
	// condition-suffixed naming convention (e.g. avg_log2FC_N6).
	ConditionSuffix string
	MaxUploadMB     int
	PreviewRows     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Data: DataConfig{
			ConditionSuffix: getEnvOrDefault("CONDITION_SUFFIX", "N6"),
			MaxUploadMB:     getEnvIntOrDefault("MAX_UPLOAD_MB", 32),
			PreviewRows:     getEnvIntOrDefault("PREVIEW_ROWS", 20),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if cfg.Data.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if cfg.Data.PreviewRows <= 0 {
		return errors.ConfigInvalid("PREVIEW_ROWS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
