package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/core/logging"
	"github.com/hay-kot/taskboard/internal/core/styles"
	"github.com/hay-kot/taskboard/internal/core/task"
	"github.com/hay-kot/taskboard/internal/taskboard"
	"github.com/hay-kot/taskboard/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *taskboard.App

	// flags
	filter string
	sort   string
	match  string
	format string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *taskboard.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks",
		UsageText: "taskboard ls [--filter all|completed|pending] [--sort default|az|za] [--match glob] [--format text|json|markdown]",
		Description: `Displays the task list after applying the filter, the glob match and the sort.

--match uses doublestar glob syntax against the task text (e.g. "Buy *", "*{milk,eggs}*").
Use --format json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Usage:       "show all, completed or pending tasks",
				Value:       string(task.FilterAll),
				Destination: &cmd.filter,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "default (insertion order), az or za",
				Value:       string(task.SortDefault),
				Destination: &cmd.sort,
			},
			&cli.StringFlag{
				Name:        "match",
				Usage:       "only tasks whose text matches the glob",
				Destination: &cmd.match,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json, markdown)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "ls")

	filter, err := task.ParseFilter(cmd.filter)
	if err != nil {
		return err
	}
	sort, err := task.ParseSort(cmd.sort)
	if err != nil {
		return err
	}
	if cmd.match != "" && !doublestar.ValidatePattern(cmd.match) {
		return fmt.Errorf("invalid --match pattern %q", cmd.match)
	}

	tasks := task.Project(matching(cmd.app.Board(ctx).Tasks(), cmd.match), filter, sort)
	out := c.Root().Writer

	switch cmd.format {
	case "json":
		for _, t := range tasks {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	case "markdown":
		return renderMarkdown(out, tasks, filter, sort)
	case "text":
	default:
		return fmt.Errorf("unknown format %q (want text, json or markdown)", cmd.format)
	}

	if len(tasks) == 0 {
		infof(c.Root().ErrWriter, "No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDONE\tTEXT")
	for _, t := range tasks {
		box := styles.IconUnchecked
		text := t.Text
		if t.Completed {
			box = styles.IconChecked
			text = styles.TaskDoneStyle.Render(text)
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, box, text)
	}
	return w.Flush()
}

// matching keeps the tasks whose text matches pattern. An empty pattern keeps
// everything.
func matching(tasks []task.Task, pattern string) []task.Task {
	if pattern == "" {
		return tasks
	}
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if ok, _ := doublestar.Match(pattern, t.Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func renderMarkdown(w io.Writer, tasks []task.Task, f task.Filter, s task.Sort) error {
	var b strings.Builder
	b.WriteString("# To-Do List\n\n")
	fmt.Fprintf(&b, "_Filter: %s · Sort: %s_\n\n", f.Label(), s.Label())
	if len(tasks) == 0 {
		b.WriteString("No tasks.\n")
	}
	for _, t := range tasks {
		box := " "
		if t.Completed {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", box, t.Text)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	rendered, err := r.Render(b.String())
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = w.Write([]byte(rendered))
	return err
}
