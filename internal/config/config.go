// Package config provides configuration loading and validation for the
// server and the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults
const (
	DefaultPort        = 8080
	DefaultPageSize    = 12
	MaxPageSize        = 48
	DefaultSearchLimit = 20
)

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Server
	Port       int    `json:"port,omitempty"`
	CORSOrigin string `json:"cors_origin,omitempty"` // Allowed origin for browser clients

	// Data
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	SeedFile    string `json:"seed_file,omitempty"`    // Import file served from memory when no database is set

	// Listings
	PageSize    int `json:"page_size,omitempty"`    // Default page size of listings
	SearchLimit int `json:"search_limit,omitempty"` // Maximum hits per search

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // json or console
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:        DefaultPort,
		CORSOrigin:  "*",
		PageSize:    DefaultPageSize,
		SearchLimit: DefaultSearchLimit,
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

// FromEnv reads the configuration from environment variables. Unset
// variables leave their field empty.
func FromEnv() Config {
	return Config{
		Port:        GetEnvInt("PORT", 0),
		CORSOrigin:  GetEnvString("CORS_ORIGIN", ""),
		DatabaseURL: GetEnvString("DATABASE_URL", ""),
		SeedFile:    GetEnvString("SEED_FILE", ""),
		PageSize:    GetEnvInt("PAGE_SIZE", 0),
		SearchLimit: GetEnvInt("SEARCH_LIMIT", 0),
		LogLevel:    GetEnvString("LOG_LEVEL", ""),
		LogFormat:   GetEnvString("LOG_FORMAT", ""),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.PageSize < 0 || c.PageSize > MaxPageSize {
		return fmt.Errorf("config error: 'page_size' must be between 1 and %d, got %d", MaxPageSize, c.PageSize)
	}
	if c.SearchLimit < 0 {
		return fmt.Errorf("config error: 'search_limit' must be non-negative")
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "json", "console":
	default:
		return fmt.Errorf("config error: unknown 'log_format' %q", c.LogFormat)
	}

	if c.SeedFile != "" {
		if _, err := os.Stat(c.SeedFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: seed file not found: %s", c.SeedFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Callers layer sources by merging the most specific one first.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SeedFile == "" {
		result.SeedFile = defaults.SeedFile
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.PageSize == 0 {
		result.PageSize = defaults.PageSize
	}
	if result.SearchLimit == 0 {
		result.SearchLimit = defaults.SearchLimit
	}

	return result
}

// Resolve layers flags over the config file over the environment over the
// built-in defaults and validates the result. configPath may be empty.
func Resolve(flags Config, configPath string) (Config, error) {
	merged := flags
	if configPath != "" {
		fileCfg, err := LoadConfig(configPath)
		if err != nil {
			return Config{}, err
		}
		merged = merged.MergeWithDefaults(*fileCfg)
	}
	merged = merged.MergeWithDefaults(FromEnv())
	merged = merged.MergeWithDefaults(Defaults())

	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
