// Package tui implements the interactive task board.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/taskboard/internal/core/task"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

const (
	placeholder = "Enter a new task"
	minInputW   = 20
)

// Model is the bubbletea model for the task board.
type Model struct {
	ctx     context.Context
	session *task.Session
	log     zerolog.Logger

	input  textinput.Model
	keys   KeyMap
	help   help.Model
	focus  focusArea
	cursor int
	alert  Alert

	width  int
	height int
}

// Options configures a Model.
type Options struct {
	Logger zerolog.Logger
	Keys   *KeyMap
}

// New creates a Model driving session. The text input starts focused.
func New(ctx context.Context, session *task.Session, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 0
	ti.Width = 40
	ti.SetValue(session.View.Input)
	ti.Focus()

	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	return Model{
		ctx:     ctx,
		session: session,
		log:     opts.Logger.With().Str("cmp", "tui").Logger(),
		input:   ti,
		keys:    keys,
		help:    help.New(),
		focus:   focusInput,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(minInputW, msg.Width-24)
		return m, nil
	case tea.KeyMsg:
		if m.alert.Visible() {
			return m.updateAlert(msg)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateAlert swallows every key except the dismiss keys.
func (m Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Dismiss) {
		m.alert = Alert{}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.submit()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		return m.setFocus(focusList)
	case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		m.move(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.dispatch(task.InputChanged{Text: m.input.Value()})
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		return m.setFocus(focusInput)
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		m.move(msg)
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.dispatch(task.ToggleRequested{ID: t.ID})
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.dispatch(task.DeleteRequested{ID: t.ID})
		}
	case key.Matches(msg, m.keys.Filter):
		m.dispatch(task.FilterChanged{Filter: m.session.View.Filter.Next()})
	case key.Matches(msg, m.keys.Sort):
		m.dispatch(task.SortChanged{Sort: m.session.View.Sort.Next()})
	}

	m.clampCursor()
	return m, nil
}

func (m *Model) submit() {
	if err := m.session.Dispatch(task.AddRequested{}); err != nil {
		if text, ok := task.AlertMessage(err); ok {
			m.alert = NewAlert(text)
			return
		}
		m.log.Error().Ctx(m.ctx).Err(err).Msg("add task")
		return
	}
	m.input.SetValue(m.session.View.Input)
	m.clampCursor()
}

func (m *Model) dispatch(ev task.Event) {
	if err := m.session.Dispatch(ev); err != nil {
		m.log.Error().Ctx(m.ctx).Err(err).Msgf("dispatch %T", ev)
	}
}

func (m Model) setFocus(f focusArea) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == focusInput {
		return m, m.input.Focus()
	}
	m.input.Blur()
	m.clampCursor()
	return m, nil
}

func (m *Model) move(msg tea.KeyMsg) {
	n := len(m.session.Displayed())
	if n == 0 {
		m.cursor = 0
		return
	}
	if key.Matches(msg, m.keys.Up) {
		m.cursor = (m.cursor - 1 + n) % n
	} else {
		m.cursor = (m.cursor + 1) % n
	}
}

func (m *Model) clampCursor() {
	n := len(m.session.Displayed())
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	}
}

func (m Model) selected() (task.Task, bool) {
	displayed := m.session.Displayed()
	if m.cursor < 0 || m.cursor >= len(displayed) {
		return task.Task{}, false
	}
	return displayed[m.cursor], true
}

// Alert returns the visible alert text, or "" when no alert is open.
func (m Model) Alert() string {
	if !m.alert.Visible() {
		return ""
	}
	return m.alert.Message()
}

// Cursor returns the index of the selected row in the displayed list.
func (m Model) Cursor() int {
	return m.cursor
}
