package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/taskboard/internal/core/styles"
)

// Alert is a blocking message dialog with a single acknowledgement.
type Alert struct {
	message string
	visible bool
}

// NewAlert creates a visible alert showing message.
func NewAlert(message string) Alert {
	return Alert{message: message, visible: true}
}

// Visible returns whether the alert should be displayed.
func (a Alert) Visible() bool {
	return a.visible
}

// Message returns the alert text.
func (a Alert) Message() string {
	return a.message
}

// Overlay renders the alert centered over the screen. The background is
// replaced rather than blended.
func (a Alert) Overlay(background string, width, height int) string {
	if !a.visible {
		return background
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Alert"),
		"",
		a.message,
		lipgloss.NewStyle().MarginTop(1).Render(styles.ButtonStyle.Render("OK")),
		styles.ModalHelpStyle.Render("enter/esc dismiss"),
	)

	modal := styles.ModalStyle.Render(content)
	if width <= 0 || height <= 0 {
		return modal
	}

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}
