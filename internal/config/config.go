// =============================================================================
// JSON to CSV Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION FILE:
//   config.yaml (optional): directories for batch processing, logging and
//   the list of date fields. Every key has a default, so the single-file
//   command works with no configuration file at all.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDateFields are the fields rewritten from DD-MM-YYYY to DD-mon-YYYY.
var DefaultDateFields = []string{"starting_date", "ending_date"}

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for *.json files by the process command.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives the converted files from the process command.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives input files after a successful conversion.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveOnSuccess moves converted inputs to InputArchiveDir.
	// Default: false
	ArchiveOnSuccess bool `yaml:"archive_on_success"`

	// ArchiveTimestampSubdirs files archived inputs under YYYY/MM/DD
	// subdirectories of InputArchiveDir.
	// Default: false
	ArchiveTimestampSubdirs bool `yaml:"archive_timestamp_subdirs"`

	// OutputNameFormat names files written by the process command.
	// Placeholders:
	//   {name}      - Input file name without extension
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	// A name ending in ".xlsx" produces a spreadsheet instead of a CSV.
	// Default: "{name}.csv"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogJSON switches diagnostics to JSON lines.
	LogJSON bool `yaml:"log_json"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the number of files the process command converts at
	// once. Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// DateFields lists the fields whose DD-MM-YYYY strings are rewritten.
	// Default: ["starting_date", "ending_date"]
	DateFields []string `yaml:"date_fields"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyMainConfigDefaults(cfg)
	return cfg
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//   - required: When false, a missing file yields the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed, or is invalid.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{name}.csv"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if len(config.DateFields) == 0 {
		config.DateFields = append([]string(nil), DefaultDateFields...)
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	if config.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be positive, got %d", config.MaxConcurrency)
	}

	for _, field := range config.DateFields {
		if strings.TrimSpace(field) == "" {
			return fmt.Errorf("date_fields must not contain empty names")
		}
	}

	return nil
}

// Validate checks the configuration again, for use after flag overrides.
func (c *MainConfig) Validate() error {
	if err := validateMainConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EnsureDirectories creates the batch directories if they don't exist.
func (c *MainConfig) EnsureDirectories() error {
	dirs := []string{c.InputDir, c.OutputDir}
	if c.ArchiveOnSuccess {
		dirs = append(dirs, c.InputArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
