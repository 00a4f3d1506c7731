package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/commands"
	"github.com/hay-kot/taskboard/internal/core/config"
	"github.com/hay-kot/taskboard/internal/core/logging"
	"github.com/hay-kot/taskboard/internal/core/styles"
	"github.com/hay-kot/taskboard/internal/taskboard"
	"github.com/hay-kot/taskboard/pkg/logutils"
	"github.com/hay-kot/taskboard/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		deferred  *utils.DeferredWriter
		app       = &taskboard.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "taskboard",
		Usage:     "A terminal to-do list",
		UsageText: "taskboard [global options] command [command options]",
		Description: `Taskboard keeps a short list of tasks you can add, complete, delete,
filter and sort. The list is saved in your data directory after every change.

Run 'taskboard' with no arguments to open the interactive board.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKBOARD_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/taskboard.log, '-' for stderr)",
				Sources:     cli.EnvVars("TASKBOARD_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (.yaml or .toml)",
				Sources:     cli.EnvVars("TASKBOARD_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKBOARD_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "storage",
				Usage:       "storage backend (file, sqlite, memory); overrides storage.backend",
				Sources:     cli.EnvVars("TASKBOARD_STORAGE"),
				Destination: &flags.Storage,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if flags.LogsToStderr() {
				// Stderr logs are held until exit so they never tear the TUI.
				lvl, err := zerolog.ParseLevel(flags.LogLevel)
				if err != nil {
					return ctx, fmt.Errorf("setup logger: %w", err)
				}
				deferred = &utils.DeferredWriter{}
				log.Logger = logutils.NewWithWriter(lvl, deferred).Hook(logging.ContextHook{})
			} else {
				logFile := flags.LogFile
				if logFile == "" {
					logFile = (&config.Config{DataDir: flags.DataDir}).LogFile()
				}

				logger, closer, err := logutils.New(flags.LogLevel, logFile)
				if err != nil {
					return ctx, fmt.Errorf("setup logger: %w", err)
				}
				log.Logger = logger.Hook(logging.ContextHook{})
				logCloser = closer
			}

			ctx, err := commands.Setup(ctx, c, flags, app)
			if err != nil || app.Storage == nil {
				return ctx, err
			}

			log.Debug().Ctx(ctx).
				Str("location", app.Storage.Location).
				Str("version", version).
				Msg("taskboard started")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			var err error
			if app.Storage != nil {
				err = app.Close()
			}

			if logCloser != nil {
				logCloser()
			}
			if deferred != nil {
				_ = deferred.Flush(os.Stderr)
			}
			return err
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)

	root = commands.NewAddCmd(flags, app).Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewToggleCmd(flags, app).Register(root)
	root = commands.NewRmCmd(flags, app).Register(root)
	root = commands.NewExportCmd(flags, app).Register(root)
	root = commands.NewImportCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'taskboard --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render(err.Error()))
		exitCode = 1
	}

	os.Exit(exitCode)
}
