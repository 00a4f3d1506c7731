// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"catppuccin": {
		Primary:    lipgloss.Color("#89b4fa"), // Blue
		Secondary:  lipgloss.Color("#94e2d5"), // Teal
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0
		Background: lipgloss.Color("#1e1e2e"), // Base
		Surface:    lipgloss.Color("#313244"), // Surface0
		Success:    lipgloss.Color("#a6e3a1"), // Green
		Warning:    lipgloss.Color("#f9e2af"), // Yellow
		Error:      lipgloss.Color("#f38ba8"), // Red
	},
	"light": {
		Primary:    lipgloss.Color("#1d4ed8"),
		Secondary:  lipgloss.Color("#7c3aed"),
		Foreground: lipgloss.Color("#1f2937"),
		Muted:      lipgloss.Color("#9ca3af"),
		Background: lipgloss.Color("#ffffff"),
		Surface:    lipgloss.Color("#f3f4f6"),
		Success:    lipgloss.Color("#15803d"),
		Warning:    lipgloss.Color("#b45309"),
		Error:      lipgloss.Color("#dc2626"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	SuccessStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
	MutedStyle         lipgloss.Style

	// TUI styles.
	AppStyle          lipgloss.Style
	TitleStyle        lipgloss.Style
	InputStyle        lipgloss.Style
	InputFocusedStyle lipgloss.Style
	ButtonStyle       lipgloss.Style
	SelectorLabel     lipgloss.Style
	SelectorValue     lipgloss.Style
	TaskStyle         lipgloss.Style
	TaskDoneStyle     lipgloss.Style
	TaskCursorStyle   lipgloss.Style
	CheckboxStyle     lipgloss.Style
	DeleteStyle       lipgloss.Style
	EmptyStyle        lipgloss.Style
	ModalStyle        lipgloss.Style
	ModalTitleStyle   lipgloss.Style
	ModalHelpStyle    lipgloss.Style
)

func init() {
	SetTheme(themes[DefaultTheme])
}

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)

	AppStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(1, 2)
	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)
	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1)
	InputFocusedStyle = InputStyle.
		BorderForeground(p.Primary)
	ButtonStyle = lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)
	SelectorLabel = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	SelectorValue = lipgloss.NewStyle().
		Foreground(p.Secondary)
	TaskStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	TaskDoneStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Strikethrough(true)
	TaskCursorStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	CheckboxStyle = lipgloss.NewStyle().
		Foreground(p.Success)
	DeleteStyle = lipgloss.NewStyle().
		Foreground(p.Error)
	EmptyStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Warning).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
}

// FormTheme returns a huh theme matching the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()
	p := CurrentPalette

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Primary)
	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p.Secondary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(p.Muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Secondary)

	return t
}
