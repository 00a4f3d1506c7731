package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/taskboard/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("storage.backend", c.Storage.Backend, oneOf(Backends)),
		criterio.Run("tui.theme", c.TUI.Theme, oneOf(styles.ThemeNames())),
		atLeast("database.max_open_conns", c.Database.MaxOpenConns, 1),
		atLeast("database.max_idle_conns", c.Database.MaxIdleConns, 0),
		atLeast("database.busy_timeout", c.Database.BusyTimeout, 0),
	)
}

// ValidateDeep performs Validate and then checks file accessibility. The configPath
// argument is the config file location to check (empty string skips the check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Storage.Backend == BackendMemory {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "backend",
			Message:  "memory backend does not persist tasks between runs",
		})
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		warnings = append(warnings, ValidationWarning{
			Category: "Database",
			Item:     "max_idle_conns",
			Message:  "max_idle_conns exceeds max_open_conns and will be capped",
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func notEmpty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func oneOf(allowed []string) func(string) error {
	return func(s string) error {
		if !slices.Contains(allowed, s) {
			return fmt.Errorf("must be one of %s, got %q", strings.Join(allowed, ", "), s)
		}
		return nil
	}
}

func atLeast(field string, v, n int) error {
	if v < n {
		return criterio.NewFieldErrors(field, fmt.Errorf("must be at least %d", n))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
