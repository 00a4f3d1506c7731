package commands

import (
	"context"
	"errors"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/core/config"
	"github.com/hay-kot/taskboard/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "taskboard config validate [options]",
				Description: "Validates the configuration file, the storage backend, the theme and the data directory.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationError is one field failure in JSON output.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	errs := fieldErrors(cfg.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		return cmd.outputJSON(c.Root().Writer, c.Root().ErrWriter, errs, warnings)
	}

	return cmd.outputText(c.Root().Writer, errs, warnings)
}

func fieldErrors(err error) []validationError {
	if err == nil {
		return nil
	}

	var fe criterio.FieldErrors
	if !errors.As(err, &fe) {
		return []validationError{{Field: "config", Message: err.Error()}}
	}

	out := make([]validationError, 0, len(fe))
	for _, e := range fe {
		out = append(out, validationError{Field: e.Field, Message: e.Err.Error()})
	}
	return out
}

func (cmd *ConfigValidateCmd) outputJSON(w, ew io.Writer, errs []validationError, warnings []config.ValidationWarning) error {
	out := struct {
		Valid    bool                       `json:"valid"`
		Errors   []validationError          `json:"errors,omitempty"`
		Warnings []config.ValidationWarning `json:"warnings,omitempty"`
	}{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}

	if err := iojson.WriteWith(w, ew, out); err != nil {
		return err
	}
	if len(errs) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(w io.Writer, errs []validationError, warnings []config.ValidationWarning) error {
	cfg := cmd.flags.Config
	infof(w, "Config file: %s", cmd.flags.ConfigPath)
	infof(w, "Storage: %s (%s)", cfg.Storage.Backend, cfg.DataDir)
	infof(w, "Theme: %s", cfg.TUI.Theme)

	for _, warn := range warnings {
		infof(w, "%s: %s", warn.Category, warn.Message)
	}

	for _, e := range errs {
		errorf(w, "%s: %s", e.Field, e.Message)
	}

	_, _ = io.WriteString(w, "\n")
	if len(errs) == 0 {
		successf(w, "Configuration is valid")
		return nil
	}

	errorf(w, "%d error(s) found", len(errs))
	return cli.Exit("", 1)
}
