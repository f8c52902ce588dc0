// Package config provides configuration management for query execution and
// the sample runner.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the global configuration for query execution
type Config struct {
	// Query Execution Configuration
	JoinOptimization  bool `json:"join_optimization" yaml:"join_optimization"`                              // Use hash indexes for joins (false = nested loop)
	IndexCapacityHint int  `json:"index_capacity_hint" yaml:"index_capacity_hint" validate:"gte=1,lte=1048576"` // Initial bucket count for tuple key indexes

	// Debugging Configuration
	TraceEnabled      bool   `json:"trace_enabled" yaml:"trace_enabled"`                                        // Log every traced enumeration
	LogLevel          string `json:"log_level" yaml:"log_level" validate:"oneof=trace debug info warn error"`  // zerolog level name
	LogFormat         string `json:"log_format" yaml:"log_format" validate:"oneof=json console"`               // Log encoding
	MetricsCollection bool   `json:"metrics_collection" yaml:"metrics_collection"`                             // Enable metrics collection

	// Sample Runner Configuration
	DatasetPath string `json:"dataset_path" yaml:"dataset_path"` // Optional YAML dataset replacing the embedded one
	Color       bool   `json:"color" yaml:"color"`               // Colored console output
}

// Global configuration instance
var (
	globalConfig Config
	configMutex  sync.RWMutex

	validate = validator.New()
)

// Default configuration values
const (
	DefaultIndexCapacityHint = 16
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "console"
)

// Initialize global configuration with defaults
func init() {
	globalConfig = NewConfig()
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		JoinOptimization:  true,
		IndexCapacityHint: DefaultIndexCapacityHint,

		TraceEnabled:      false,
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
		MetricsCollection: false,

		DatasetPath: "",
		Color:       true,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.DatasetPath != "" {
		ext := strings.ToLower(filepath.Ext(c.DatasetPath))
		if ext != ".yaml" && ext != ".yml" {
			return fmt.Errorf("invalid configuration: dataset_path must be a YAML file, got %q", c.DatasetPath)
		}
	}
	return nil
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.IndexCapacityHint == 0 {
		c.IndexCapacityHint = defaults.IndexCapacityHint
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}

	// Note: Boolean fields are intentionally not set to defaults here
	// This allows distinguishing between explicitly set false and unset values
	// Use NewConfig() directly if you need boolean defaults

	return c
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = config
}

// GetGlobalConfig returns the current global configuration
func GetGlobalConfig() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// LoadFromJSON loads configuration from JSON data
func LoadFromJSON(data []byte) (Config, error) {
	config := NewConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a file (supports JSON, YAML).
// Keys missing from the file keep their NewConfig defaults.
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	config := NewConfig()
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from environment variables on top of base
func LoadFromEnv(base Config) Config {
	config := base

	if val := os.Getenv("LINQ_JOIN_OPTIMIZATION"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.JoinOptimization = parsed
		}
	}

	if val := os.Getenv("LINQ_INDEX_CAPACITY_HINT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.IndexCapacityHint = parsed
		}
	}

	if val := os.Getenv("LINQ_TRACE"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.TraceEnabled = parsed
		}
	}

	if val := os.Getenv("LINQ_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}

	if val := os.Getenv("LINQ_LOG_FORMAT"); val != "" {
		config.LogFormat = strings.ToLower(val)
	}

	if val := os.Getenv("LINQ_METRICS"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.MetricsCollection = parsed
		}
	}

	if val := os.Getenv("LINQ_DATASET"); val != "" {
		config.DatasetPath = val
	}

	if val := os.Getenv("LINQ_COLOR"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.Color = parsed
		}
	}

	return config
}

// Load resolves the effective configuration: defaults, then the optional
// file, then environment overrides. The result is validated.
func Load(filename string) (Config, error) {
	config := NewConfig()
	if filename != "" {
		loaded, err := LoadFromFile(filename)
		if err != nil {
			return Config{}, err
		}
		config = loaded
	}

	config = LoadFromEnv(config)
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
