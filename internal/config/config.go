package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appDirName = "labourcost"

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Report export settings
	Report ReportConfig `yaml:"report"`

	// Logging settings
	Log LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to the encrypted SQLite database
}

type ReportConfig struct {
	OutputDir     string `yaml:"output_dir"`     // Directory for generated CSV and PDF reports
	DefaultFormat string `yaml:"default_format"` // "csv" or "pdf"
	Title         string `yaml:"title"`          // Heading printed on PDF reports
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

func baseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", appDirName)
}

// DefaultConfigPath returns ~/.config/labourcost/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := baseDir()

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "labourcost.db"),
		},
		Report: ReportConfig{
			OutputDir:     filepath.Join(dir, "reports"),
			DefaultFormat: "csv",
			Title:         "Weekly Labour Cost",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	switch c.Report.DefaultFormat {
	case "csv", "pdf":
	default:
		return fmt.Errorf("report.default_format must be csv or pdf, got %q", c.Report.DefaultFormat)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level, defaulting to warn
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for database, reports, etc.)
func (c *Config) EnsureDirectories() error {
	dbDir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	if err := os.MkdirAll(c.Report.OutputDir, 0755); err != nil {
		return err
	}

	return nil
}
