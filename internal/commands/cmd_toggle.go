package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/core/logging"
	"github.com/hay-kot/taskboard/internal/taskboard"
)

type ToggleCmd struct {
	flags *Flags
	app   *taskboard.App
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *taskboard.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "toggle",
		Usage:         "Flip a task between pending and completed",
		UsageText:     "taskboard toggle <id>",
		ShellComplete: TaskIDCompleter(cmd.flags, cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx = logging.WithCommand(ctx, "toggle")
	board := cmd.app.Board(ctx)
	out := c.Root().Writer

	if !board.Toggle(id) {
		infof(out, "Task %d not found", id)
		return nil
	}

	t, _ := board.Get(id)
	state := "pending"
	if t.Completed {
		state = "completed"
	}
	successf(out, "Task %d marked %s: %s", t.ID, state, t.Text)
	return nil
}
