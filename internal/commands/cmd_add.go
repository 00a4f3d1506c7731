package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/taskboard/internal/core/logging"
	"github.com/hay-kot/taskboard/internal/core/styles"
	"github.com/hay-kot/taskboard/internal/core/task"
	"github.com/hay-kot/taskboard/internal/core/validate"
	"github.com/hay-kot/taskboard/internal/taskboard"
)

type AddCmd struct {
	flags *Flags
	app   *taskboard.App

	// prompt reads the task text when no arguments are given. Nil means
	// prompt with a form when stdin is a terminal.
	prompt func() (string, error)
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *taskboard.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "taskboard add [text...]",
		Description: `Adds a task with the given text. Arguments are joined with spaces and
surrounding whitespace is trimmed.

With no arguments on a terminal, prompts for the text.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "add")

	text := strings.Join(c.Args().Slice(), " ")
	if c.Args().Len() == 0 {
		var err error
		text, err = cmd.readText()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	board := cmd.app.Board(ctx)
	t, err := board.Add(text)
	if err != nil {
		if msg, ok := task.AlertMessage(err); ok {
			return errors.New(msg)
		}
		return err
	}

	successf(c.Root().Writer, "Added task %d: %s", t.ID, t.Text)
	return nil
}

func (cmd *AddCmd) readText() (string, error) {
	if cmd.prompt != nil {
		return cmd.prompt()
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}

	var text string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New task").
				Placeholder("Enter a new task").
				Validate(validate.TaskText).
				Value(&text),
		),
	).WithTheme(styles.FormTheme()).Run()

	return text, err
}
