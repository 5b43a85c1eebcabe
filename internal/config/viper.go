// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"fjacquet/shipsort/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "SHIPSORT"

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls CSV reading.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// IngestConfig bounds what an upload may contain.
type IngestConfig struct {
	MaxRows    int    `mapstructure:"max_rows" yaml:"max_rows"`
	XLSCharset string `mapstructure:"xls_charset" yaml:"xls_charset"`
}

// ResolverConfig points at an optional rules file replacing the built-in
// customer column rules.
type ResolverConfig struct {
	RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
}

// InvoiceConfig controls the CSV invoice export.
type InvoiceConfig struct {
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`
	AmountColumn string `mapstructure:"amount_column" yaml:"amount_column"`
}

// AuthConfig is the upload gate. When enabled, uploads need a token.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Token   string `mapstructure:"token" yaml:"-"` // never serialized
}

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	CSV      CSVConfig      `mapstructure:"csv" yaml:"csv"`
	Ingest   IngestConfig   `mapstructure:"ingest" yaml:"ingest"`
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver"`
	Invoice  InvoiceConfig  `mapstructure:"invoice" yaml:"invoice"`
	Auth     AuthConfig     `mapstructure:"auth" yaml:"auth"`
}

// InitializeConfig loads configuration from the standard locations.
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig initializes Viper configuration with hierarchical loading:
// defaults, then the config file, then SHIPSORT_* environment variables.
// An explicit configFile must exist; the search-path file is optional.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.shipsort")
		v.AddConfigPath(".shipsort")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("ingest.max_rows", 0)
	v.SetDefault("ingest.xls_charset", "utf-8")

	v.SetDefault("resolver.rules_file", "")

	v.SetDefault("invoice.output_dir", "invoices")
	v.SetDefault("invoice.amount_column", "Amount")

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.token", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}
	switch d := config.Delimiter(); d {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("CSV delimiter %q is not allowed", d)
	}

	if config.Ingest.MaxRows < 0 {
		return fmt.Errorf("ingest.max_rows must not be negative, got: %d", config.Ingest.MaxRows)
	}

	if strings.TrimSpace(config.Ingest.XLSCharset) == "" {
		return fmt.Errorf("ingest.xls_charset must not be empty")
	}

	if strings.TrimSpace(config.Invoice.OutputDir) == "" {
		return fmt.Errorf("invoice.output_dir must not be empty")
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// UploadsAuthorized reports whether the upload gate is open: either auth is
// disabled or a token is configured.
func (c *Config) UploadsAuthorized() bool {
	return !c.Auth.Enabled || strings.TrimSpace(c.Auth.Token) != ""
}

// ConfigureLoggingFromConfig builds the stderr logrus logger described by
// the log section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	return logging.NewLogrus(config.Log.Level, config.Log.Format, os.Stderr)
}
