// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Store struct {
		DSN string `mapstructure:"dsn" yaml:"-"` // Never serialize credentials
	} `mapstructure:"store" yaml:"store"`

	Registry struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"registry" yaml:"registry"`

	Archive struct {
		Enabled       bool   `mapstructure:"enabled" yaml:"enabled"`
		Endpoint      string `mapstructure:"endpoint" yaml:"endpoint"`
		AccessKey     string `mapstructure:"access_key" yaml:"-"`
		SecretKey     string `mapstructure:"secret_key" yaml:"-"`
		Bucket        string `mapstructure:"bucket" yaml:"bucket"`
		Region        string `mapstructure:"region" yaml:"region"`
		UseSSL        bool   `mapstructure:"use_ssl" yaml:"use_ssl"`
		URLTTLSeconds int    `mapstructure:"url_ttl_seconds" yaml:"url_ttl_seconds"`
	} `mapstructure:"archive" yaml:"archive"`

	Export struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.sri-comprobantes")
	v.AddConfigPath(".sri-comprobantes")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("COMPROBANTES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	// 5. Conventional unprefixed variables for credentials
	if err := v.BindEnv("store.dsn", "DATABASE_URL"); err != nil {
		fmt.Printf("Warning: failed to bind DATABASE_URL environment variable: %v\n", err)
	}
	if err := v.BindEnv("archive.access_key", "S3_ACCESS_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind S3_ACCESS_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("archive.secret_key", "S3_SECRET_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind S3_SECRET_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("store.dsn", "")

	v.SetDefault("registry.file", "clientes.yaml")

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.bucket", "comprobantes")
	v.SetDefault("archive.region", "")
	v.SetDefault("archive.use_ssl", true)
	v.SetDefault("archive.url_ttl_seconds", 86400)

	v.SetDefault("export.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.Export.Delimiter) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}

	if config.Archive.Enabled {
		if config.Archive.Endpoint == "" {
			return fmt.Errorf("archive.endpoint required when archiving is enabled")
		}
		if config.Archive.AccessKey == "" || config.Archive.SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY required when archiving is enabled")
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
