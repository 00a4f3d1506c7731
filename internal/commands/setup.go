package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/core/config"
	"github.com/hay-kot/taskboard/internal/core/logging"
	"github.com/hay-kot/taskboard/internal/core/styles"
	"github.com/hay-kot/taskboard/internal/taskboard"
)

// ReadConfig reads the config file and applies the --storage override. The
// result is not validated.
func (f *Flags) ReadConfig() (*config.Config, error) {
	cfg, err := config.Read(f.ConfigPath, f.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.Storage != "" {
		cfg.Storage.Backend = f.Storage
	}
	return cfg, nil
}

// Setup loads the config into flags and opens storage into app. It runs as the
// root Before hook, after the logger is configured. The config subcommands
// only get the config so they can report on a file that does not validate.
func Setup(ctx context.Context, c *cli.Command, flags *Flags, app *taskboard.App) (context.Context, error) {
	cfg, err := flags.ReadConfig()
	if err != nil {
		return ctx, err
	}
	flags.Config = cfg

	if c.Args().First() == "config" {
		return ctx, nil
	}

	if err := cfg.Validate(); err != nil {
		return ctx, fmt.Errorf("invalid config: %w", err)
	}

	// Validation ensures the theme name is known
	palette, _ := styles.GetPalette(cfg.TUI.Theme)
	styles.SetTheme(palette)

	ctx = logging.WithBackend(ctx, cfg.Storage.Backend)
	opened, err := taskboard.NewApp(ctx, cfg, logging.Component("taskboard"))
	if err != nil {
		return ctx, err
	}

	// Commands already hold a pointer to app
	*app = *opened
	return ctx, nil
}
