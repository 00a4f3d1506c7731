package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/core/logging"
	"github.com/hay-kot/taskboard/internal/taskboard"
)

// TaskIDCompleter returns a ShellCompleteFunc that suggests stored task ids as
// positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior. The root Before hook does not run during
// completion, so storage is opened here when app has not been set up.
func TaskIDCompleter(flags *Flags, app *taskboard.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		source := app
		if source.Bridge == nil {
			opened, err := openForCompletion(ctx, flags)
			if err != nil {
				return
			}
			defer func() { _ = opened.Close() }()
			source = opened
		}

		w := cmd.Root().Writer
		for _, t := range source.Bridge.Load(ctx) {
			_, _ = fmt.Fprintln(w, strconv.FormatInt(t.ID, 10))
		}
	}
}

func openForCompletion(ctx context.Context, flags *Flags) (*taskboard.App, error) {
	cfg, err := flags.ReadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return taskboard.NewApp(ctx, cfg, logging.Component("completion"))
}

func parseID(c *cli.Command) (int64, error) {
	if c.Args().Len() != 1 {
		return 0, fmt.Errorf("expected exactly one task id")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", c.Args().First())
	}
	return id, nil
}
