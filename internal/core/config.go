// Package core contains the business logic for eve: the task registry,
// dependency-graph validation, the task lifecycle state machine, tag
// normalization, and configuration.
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/eve/pkg/models"
	"gopkg.in/yaml.v3"
)

// validPrefixPattern matches uppercase alphanumeric id prefixes between 1
// and 10 characters.
var validPrefixPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// Config holds the global eve configuration read from .eveconfig.
type Config struct {
	StorageFile     string
	DefaultPriority models.Priority
	DefaultCategory string
	TaskIDPrefix    string
	TaskIDPadWidth  int
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		StorageFile:     "tasks.json",
		DefaultPriority: models.PriorityMedium,
		DefaultCategory: "general",
		TaskIDPrefix:    "TASK",
		TaskIDPadWidth:  5,
	}
}

// LoadConfig reads the .eveconfig file from basePath using Viper. If the
// file does not exist, defaults are returned.
func LoadConfig(basePath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(".eveconfig")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	v.SetDefault("storage.file", cfg.StorageFile)
	v.SetDefault("defaults.priority", string(cfg.DefaultPriority))
	v.SetDefault("defaults.category", cfg.DefaultCategory)
	v.SetDefault("task_id.prefix", cfg.TaskIDPrefix)
	v.SetDefault("task_id.pad_width", cfg.TaskIDPadWidth)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .eveconfig: %w", err)
	}

	cfg.StorageFile = v.GetString("storage.file")
	cfg.DefaultPriority = models.Priority(v.GetString("defaults.priority"))
	cfg.DefaultCategory = v.GetString("defaults.category")
	cfg.TaskIDPrefix = v.GetString("task_id.prefix")
	// IsSet distinguishes "not set" (use default 5) from "explicitly 0".
	if v.IsSet("task_id.pad_width") {
		cfg.TaskIDPadWidth = v.GetInt("task_id.pad_width")
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []string

	if c.StorageFile == "" {
		errs = append(errs, "storage.file must not be empty")
	}
	if c.DefaultPriority != "" && !c.DefaultPriority.Valid() {
		errs = append(errs, fmt.Sprintf(
			"defaults.priority %q is invalid, must be one of: high, medium, low",
			c.DefaultPriority,
		))
	}
	if c.TaskIDPrefix == "" || !validPrefixPattern.MatchString(c.TaskIDPrefix) {
		errs = append(errs, fmt.Sprintf(
			"task_id.prefix %q is invalid, must match [A-Z0-9]{1,10}",
			c.TaskIDPrefix,
		))
	}
	if c.TaskIDPadWidth < 0 || c.TaskIDPadWidth > 10 {
		errs = append(errs, fmt.Sprintf(
			"task_id.pad_width %d is invalid, must be between 0 and 10",
			c.TaskIDPadWidth,
		))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// configFile mirrors the nested YAML layout of .eveconfig for writing.
type configFile struct {
	Storage struct {
		File string `yaml:"file"`
	} `yaml:"storage"`
	Defaults struct {
		Priority string `yaml:"priority"`
		Category string `yaml:"category"`
	} `yaml:"defaults"`
	TaskID struct {
		Prefix   string `yaml:"prefix"`
		PadWidth int    `yaml:"pad_width"`
	} `yaml:"task_id"`
}

// WriteDefaultConfig writes a .eveconfig file with default values to
// basePath. It refuses to overwrite an existing file.
func WriteDefaultConfig(basePath string) (string, error) {
	path := filepath.Join(basePath, ".eveconfig")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file %s already exists", path)
	}

	cfg := DefaultConfig()
	var cf configFile
	cf.Storage.File = cfg.StorageFile
	cf.Defaults.Priority = string(cfg.DefaultPriority)
	cf.Defaults.Category = cfg.DefaultCategory
	cf.TaskID.Prefix = cfg.TaskIDPrefix
	cf.TaskID.PadWidth = cfg.TaskIDPadWidth

	data, err := yaml.Marshal(&cf)
	if err != nil {
		return "", fmt.Errorf("marshaling default config: %w", err)
	}

	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}
