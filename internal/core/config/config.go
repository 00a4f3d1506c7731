// Package config handles configuration loading and validation for taskboard.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/taskboard/internal/core/styles"
)

// Storage backend names accepted by storage.backend and --storage.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists every supported storage backend.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage" toml:"storage"`
	TUI      TUIConfig      `yaml:"tui" toml:"tui"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	DataDir  string         `yaml:"-" toml:"-"` // set by caller, not from config file
}

// StorageConfig selects where the task list is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend" toml:"backend"`
}

// TUIConfig holds interactive display settings.
type TUIConfig struct {
	Theme string `yaml:"theme" toml:"theme"`
}

// DatabaseConfig tunes the sqlite backend.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns" toml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns" toml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout" toml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendFile},
		TUI:     TUIConfig{Theme: styles.DefaultTheme},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Read parses the config file and applies defaults without validating.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := decode(configPath, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyDefaults restores defaults for values the file left empty. Keys missing
// from the file already hold defaults because decoding starts from
// DefaultConfig, so an explicit max_idle_conns or busy_timeout of 0 is kept.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
}

// StorageFile returns the path of the JSON file backend.
func (c *Config) StorageFile() string {
	return filepath.Join(c.DataDir, "storage.json")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "taskboard.log")
}
