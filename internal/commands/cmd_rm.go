package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/core/logging"
	"github.com/hay-kot/taskboard/internal/taskboard"
)

type RmCmd struct {
	flags *Flags
	app   *taskboard.App
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *taskboard.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "rm",
		Aliases:       []string{"delete"},
		Usage:         "Delete a task",
		UsageText:     "taskboard rm <id>",
		ShellComplete: TaskIDCompleter(cmd.flags, cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx = logging.WithCommand(ctx, "rm")
	board := cmd.app.Board(ctx)
	out := c.Root().Writer

	t, found := board.Get(id)
	if !found {
		infof(out, "Task %d not found", id)
		return nil
	}
	board.Remove(id)

	successf(out, "Deleted task %d: %s", t.ID, t.Text)
	return nil
}
