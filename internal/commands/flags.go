package commands

import (
	"os"
	"path/filepath"

	"github.com/hay-kot/taskboard/internal/core/config"
)

// LogStderr is the --log-file value that sends logs to stderr instead of a file.
const LogStderr = "-"

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	Storage    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// LogsToStderr reports whether logs are written to stderr.
func (f *Flags) LogsToStderr() bool {
	return f.LogFile == LogStderr
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskboard", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "taskboard")
}
