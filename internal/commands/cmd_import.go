package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/core/logging"
	"github.com/hay-kot/taskboard/internal/core/task"
	"github.com/hay-kot/taskboard/internal/core/validate"
	"github.com/hay-kot/taskboard/internal/taskboard"
	"github.com/hay-kot/taskboard/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *taskboard.App

	reader iojson.FileReader[[]task.Task]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *taskboard.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Append tasks from a JSON export",
		UsageText: "taskboard import [-f file]",
		Description: `Reads a JSON array of tasks (the output of 'taskboard export --format json')
and appends each one as a new task, keeping its text and completed state.
Imported tasks get fresh ids. Entries with blank text are skipped.`,
		Flags:  []cli.Flag{cmd.reader.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	incoming, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	ctx = logging.WithCommand(ctx, "import")
	imported, skipped := importTasks(ctx, cmd.app.Board(ctx), incoming)

	out := c.Root().Writer
	successf(out, "Imported %d task(s)", imported)
	if skipped > 0 {
		infof(out, "Skipped %d task(s) with empty text", skipped)
	}
	return nil
}

func importTasks(ctx context.Context, board *task.Board, incoming []task.Task) (imported, skipped int) {
	log := logging.Component("import")

	for i, in := range incoming {
		if err := validate.TaskTextField(fmt.Sprintf("tasks[%d].text", i), in.Text); err != nil {
			log.Debug().Ctx(ctx).Err(err).Int64("id", in.ID).Msg("skipping task")
			skipped++
			continue
		}

		t, err := board.Add(in.Text)
		if err != nil {
			skipped++
			continue
		}
		if in.Completed {
			board.Toggle(t.ID)
		}
		imported++
	}
	return imported, skipped
}
