package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/core/logging"
	"github.com/hay-kot/taskboard/internal/core/task"
	"github.com/hay-kot/taskboard/internal/taskboard"
)

type ExportCmd struct {
	flags *Flags
	app   *taskboard.App

	// flags
	format string
	output string

	create func(path string) (io.WriteCloser, error)
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *taskboard.App) *ExportCmd {
	return &ExportCmd{
		flags: flags,
		app:   app,
		create: func(path string) (io.WriteCloser, error) {
			return os.Create(path)
		},
	}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export the stored task list",
		UsageText: "taskboard export [--format json|csv|pdf] [-o file]",
		Description: `Writes every stored task in insertion order. Filters and sorting are not applied.

Output goes to stdout unless -o is given.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "export format (json, csv, pdf)",
				Value:       string(taskboard.FormatJSON),
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "file to write (defaults to stdout)",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	format, err := taskboard.ParseFormat(cmd.format)
	if err != nil {
		return err
	}

	ctx = logging.WithCommand(ctx, "export")
	tasks := cmd.app.Board(ctx).Tasks()

	if cmd.output == "" {
		if err := cmd.app.Export.Export(c.Root().Writer, c.Root().ErrWriter, tasks, format); err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		return nil
	}

	if err := cmd.exportFile(c.Root().ErrWriter, tasks, format); err != nil {
		return err
	}

	successf(c.Root().ErrWriter, "Exported %d task(s) to %s", len(tasks), cmd.output)
	return nil
}

// exportFile writes the export to cmd.output. A failed close is an error
// since buffered data may not have reached the file.
func (cmd *ExportCmd) exportFile(ew io.Writer, tasks []task.Task, format taskboard.Format) error {
	f, err := cmd.create(cmd.output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := cmd.app.Export.Export(f, ew, tasks, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("export %s: %w", format, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}
