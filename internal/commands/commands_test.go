package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskboard/internal/core/config"
	"github.com/hay-kot/taskboard/internal/core/task"
	"github.com/hay-kot/taskboard/internal/taskboard"
)

type harness struct {
	flags  *Flags
	app    *taskboard.App
	add    *AddCmd
	export *ExportCmd
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	app, err := taskboard.NewApp(context.Background(), &cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	flags := &Flags{
		DataDir:    cfg.DataDir,
		ConfigPath: filepath.Join(cfg.DataDir, "config.yaml"),
		Config:     &cfg,
	}
	return &harness{
		flags:  flags,
		app:    app,
		add:    NewAddCmd(flags, app),
		export: NewExportCmd(flags, app),
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := &cli.Command{
		Name:           "taskboard",
		Writer:         &out,
		ErrWriter:      &out,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = h.add.Register(root)
	root = NewLsCmd(h.flags, h.app).Register(root)
	root = NewToggleCmd(h.flags, h.app).Register(root)
	root = NewRmCmd(h.flags, h.app).Register(root)
	root = h.export.Register(root)
	root = NewImportCmd(h.flags, h.app).Register(root)
	root = NewConfigValidateCmd(h.flags).Register(root)

	err := root.Run(context.Background(), append([]string{"taskboard"}, args...))
	return out.String(), err
}

func (h *harness) stored(t *testing.T) []task.Task {
	t.Helper()
	return h.app.Bridge.Load(context.Background())
}

func TestAdd_JoinsArgsAndTrims(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "add", "  Buy", "milk  ")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")

	tasks := h.stored(t)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.False(t, tasks[0].Completed)
}

func TestAdd_EmptyText(t *testing.T) {
	h := newHarness(t)
	h.add.prompt = func() (string, error) { return "   ", nil }

	_, err := h.run(t, "add")
	require.EqualError(t, err, task.EmptyTextAlert)
	assert.Empty(t, h.stored(t))

	_, err = h.run(t, "add", " ", "")
	require.EqualError(t, err, task.EmptyTextAlert)
}

func TestAdd_Prompt(t *testing.T) {
	h := newHarness(t)
	h.add.prompt = func() (string, error) { return "from prompt", nil }

	_, err := h.run(t, "add")
	require.NoError(t, err)
	require.Len(t, h.stored(t), 1)
	assert.Equal(t, "from prompt", h.stored(t)[0].Text)
}

func TestToggleAndRm(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "add", "Write report")
	require.NoError(t, err)
	id := h.stored(t)[0].ID
	idArg := strings.TrimSpace(jsonNumber(id))

	out, err := h.run(t, "toggle", idArg)
	require.NoError(t, err)
	assert.Contains(t, out, "completed")
	assert.True(t, h.stored(t)[0].Completed)

	out, err = h.run(t, "rm", idArg)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")
	assert.Empty(t, h.stored(t))
}

func TestToggleAndRm_UnknownIDIsNoop(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "add", "keep me")
	require.NoError(t, err)
	before := h.stored(t)

	for _, cmd := range []string{"toggle", "rm"} {
		out, err := h.run(t, cmd, "42")
		require.NoError(t, err)
		assert.Contains(t, out, "not found")
	}
	assert.Equal(t, before, h.stored(t))
}

func TestToggle_InvalidID(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "toggle", "abc")
	assert.ErrorContains(t, err, "invalid task id")

	_, err = h.run(t, "rm")
	assert.ErrorContains(t, err, "exactly one task id")
}

func seed(t *testing.T, h *harness) {
	t.Helper()
	for _, text := range []string{"banana bread", "Apple pie", "carrot cake"} {
		_, err := h.run(t, "add", text)
		require.NoError(t, err)
	}
	_, err := h.run(t, "toggle", jsonNumber(h.stored(t)[1].ID))
	require.NoError(t, err)
}

func TestLs_JSONProjection(t *testing.T) {
	h := newHarness(t)
	seed(t, h)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "default", args: nil, want: []string{"banana bread", "Apple pie", "carrot cake"}},
		{name: "az", args: []string{"--sort", "az"}, want: []string{"Apple pie", "banana bread", "carrot cake"}},
		{name: "za", args: []string{"--sort", "za"}, want: []string{"carrot cake", "banana bread", "Apple pie"}},
		{name: "completed", args: []string{"--filter", "completed"}, want: []string{"Apple pie"}},
		{name: "pending za", args: []string{"--filter", "pending", "--sort", "za"}, want: []string{"carrot cake", "banana bread"}},
		{name: "match", args: []string{"--match", "*ca*"}, want: []string{"carrot cake"}},
		{name: "match braces", args: []string{"--match", "{Apple,banana}*"}, want: []string{"banana bread", "Apple pie"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"ls", "--format", "json"}, tt.args...)
			out, err := h.run(t, args...)
			require.NoError(t, err)

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
				if line == "" {
					continue
				}
				var tk task.Task
				require.NoError(t, json.Unmarshal([]byte(line), &tk))
				got = append(got, tk.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	// listing never changes the stored order
	texts := make([]string, 0, 3)
	for _, tk := range h.stored(t) {
		texts = append(texts, tk.Text)
	}
	assert.Equal(t, []string{"banana bread", "Apple pie", "carrot cake"}, texts)
}

func TestLs_Text(t *testing.T) {
	h := newHarness(t)
	seed(t, h)

	out, err := h.run(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "carrot cake")
}

func TestLs_Markdown(t *testing.T) {
	h := newHarness(t)
	seed(t, h)

	out, err := h.run(t, "ls", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "To-Do List")
	assert.Contains(t, out, "banana bread")
}

func TestLs_InvalidFlags(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "ls", "--filter", "done")
	assert.ErrorContains(t, err, "invalid filter")

	_, err = h.run(t, "ls", "--sort", "random")
	assert.Error(t, err)

	_, err = h.run(t, "ls", "--match", "[")
	assert.ErrorContains(t, err, "invalid --match")

	_, err = h.run(t, "ls", "--format", "yaml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestExportImport_RoundTrip(t *testing.T) {
	h := newHarness(t)
	seed(t, h)

	file := filepath.Join(t.TempDir(), "tasks.json")
	_, err := h.run(t, "export", "--format", "json", "-o", file)
	require.NoError(t, err)

	other := newHarness(t)
	out, err := other.run(t, "import", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 task(s)")

	got := other.stored(t)
	require.Len(t, got, 3)
	assert.Equal(t, "Apple pie", got[1].Text)
	assert.True(t, got[1].Completed)
	assert.False(t, got[0].Completed)
}

func TestImport_SkipsBlankText(t *testing.T) {
	h := newHarness(t)
	file := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"id":1,"text":"  "},{"id":2,"text":"ok","completed":true}]`), 0o644))

	out, err := h.run(t, "import", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped 1")
	require.Len(t, h.stored(t), 1)
	assert.True(t, h.stored(t)[0].Completed)
}

func TestExport_CSVToStdout(t *testing.T) {
	h := newHarness(t)
	seed(t, h)

	out, err := h.run(t, "export", "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "id,text,completed\n"))
	assert.Contains(t, out, ",Apple pie,true")
}

type closeFailer struct {
	bytes.Buffer
}

func (closeFailer) Close() error { return errors.New("disk full") }

func TestExport_CloseErrorIsReported(t *testing.T) {
	h := newHarness(t)
	seed(t, h)
	h.export.create = func(string) (io.WriteCloser, error) { return &closeFailer{}, nil }

	out, err := h.run(t, "export", "--format", "json", "-o", "tasks.json")
	require.ErrorContains(t, err, "close output file")
	assert.NotContains(t, out, "Exported")
}

func TestLs_EmptyReportsOnErrWriter(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found")
}

func TestExport_UnknownFormat(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "export", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestConfigValidate(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	h.flags.Config.TUI.Theme = "neon"
	out, err = h.run(t, "config", "validate", "--format", "json")
	require.Error(t, err)

	var result struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "tui.theme", result.Errors[0].Field)
}

// runRoot runs a root command wired through Setup, the way main does.
func runRoot(t *testing.T, flags *Flags, app *taskboard.App, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { _ = app.Close() })

	var out bytes.Buffer
	root := &cli.Command{
		Name:                  "taskboard",
		Writer:                &out,
		ErrWriter:             &out,
		EnableShellCompletion: true,
		ExitErrHandler:        func(context.Context, *cli.Command, error) {},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return Setup(ctx, c, flags, app)
		},
	}
	root = NewLsCmd(flags, app).Register(root)
	root = NewToggleCmd(flags, app).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)

	err := root.Run(context.Background(), append([]string{"taskboard"}, args...))
	return out.String(), err
}

func TestSetup_ConfigCommandSkipsValidation(t *testing.T) {
	dataDir := t.TempDir()
	cfgPath := filepath.Join(dataDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage:\n  backend: postgres\n"), 0o644))

	flags := &Flags{ConfigPath: cfgPath, DataDir: dataDir}
	app := &taskboard.App{}

	out, err := runRoot(t, flags, app, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "storage.backend")
	require.NotNil(t, flags.Config)
	assert.Nil(t, app.Storage)

	_, err = runRoot(t, flags, app, "ls")
	assert.ErrorContains(t, err, "invalid config")
	assert.Nil(t, app.Storage)
}

func TestSetup_OpensStorageWithOverride(t *testing.T) {
	dataDir := t.TempDir()
	flags := &Flags{
		ConfigPath: filepath.Join(dataDir, "missing.yaml"),
		DataDir:    dataDir,
		Storage:    config.BackendSQLite,
	}
	app := &taskboard.App{}

	_, err := runRoot(t, flags, app, "ls")
	require.NoError(t, err)
	require.NotNil(t, app.Storage)
	assert.Equal(t, config.BackendSQLite, app.Storage.Backend)
	assert.Equal(t, config.BackendSQLite, flags.Config.Storage.Backend)
}

func TestToggle_ShellCompletionListsStoredIDs(t *testing.T) {
	dataDir := t.TempDir()
	flags := &Flags{ConfigPath: filepath.Join(dataDir, "missing.yaml"), DataDir: dataDir}

	cfg, err := flags.ReadConfig()
	require.NoError(t, err)
	seeded, err := taskboard.NewApp(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	board := seeded.Board(context.Background())
	first, err := board.Add("first")
	require.NoError(t, err)
	second, err := board.Add("second")
	require.NoError(t, err)
	require.NoError(t, seeded.Close())

	out, err := runRoot(t, flags, &taskboard.App{}, "toggle", "--generate-shell-completion")
	require.NoError(t, err)
	assert.Contains(t, out, jsonNumber(first.ID))
	assert.Contains(t, out, jsonNumber(second.ID))
}

func TestTaskIDCompleter_OpensStorageWhenAppIsEmpty(t *testing.T) {
	h := newHarness(t)
	seed(t, h)

	var out bytes.Buffer
	cmd := &cli.Command{Name: "toggle", Writer: &out}
	TaskIDCompleter(h.flags, &taskboard.App{})(context.Background(), cmd)

	stored := h.stored(t)
	require.Len(t, stored, 3)
	for _, tk := range stored {
		assert.Contains(t, out.String(), jsonNumber(tk.ID))
	}
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
