// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"tradevault/trade-import/internal/logging"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Dates struct {
		// DayFirst selects DD/MM/YYYY for ambiguous slash dates.
		// False keeps the US month-first convention.
		DayFirst bool `mapstructure:"day_first" yaml:"day_first"`
	} `mapstructure:"dates" yaml:"dates"`

	Journal struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"journal" yaml:"journal"`

	Columns struct {
		HintsFile string `mapstructure:"hints_file" yaml:"hints_file"`
	} `mapstructure:"columns" yaml:"columns"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then TRADEIMPORT_* env vars.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.trade-import")
	v.AddConfigPath(".trade-import")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRADEIMPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("dates.day_first", false)
	v.SetDefault("journal.file", "journal.csv")
	v.SetDefault("columns.hints_file", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Journal.File == "" {
		return fmt.Errorf("journal.file must not be empty")
	}

	return nil
}

// ConfigureLogging builds the application logger from the Config struct.
func ConfigureLogging(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}

// LoadEnv loads a .env file from the working directory when present.
// Missing files are fine; real config comes from viper.
func LoadEnv() {
	_ = godotenv.Load()
}
