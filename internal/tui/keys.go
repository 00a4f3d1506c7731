package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the task board keybindings.
type KeyMap struct {
	Add     key.Binding
	Focus   key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Filter  key.Binding
	Sort    key.Binding
	Quit    key.Binding
	Dismiss key.Binding
}

// DefaultKeyMap returns the built-in keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter/esc", "dismiss"),
		),
	}
}

// inputHelp is shown while the text input has focus.
type inputHelp struct{ keys KeyMap }

func (h inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Add, h.keys.Focus, key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))}
}

func (h inputHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// listHelp is shown while the task list has focus.
type listHelp struct{ keys KeyMap }

func (h listHelp) ShortHelp() []key.Binding {
	k := h.keys
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Delete, k.Filter, k.Sort, k.Focus, k.Quit}
}

func (h listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
