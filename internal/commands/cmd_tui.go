package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/core/logging"
	"github.com/hay-kot/taskboard/internal/core/task"
	"github.com/hay-kot/taskboard/internal/taskboard"
	"github.com/hay-kot/taskboard/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *taskboard.App

	altScreen bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *taskboard.App) *TuiCmd {
	return &TuiCmd{
		flags:     flags,
		app:       app,
		altScreen: true,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "alt-screen",
			Usage:       "run the board in the terminal's alternate screen",
			Sources:     cli.EnvVars("TASKBOARD_ALT_SCREEN"),
			Value:       true,
			Destination: &cmd.altScreen,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	ctx = logging.WithCommand(ctx, "tui")

	session := task.NewSession(cmd.app.Board(ctx))
	model := tui.New(ctx, session, tui.Options{Logger: logging.Component("tui")})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cmd.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
