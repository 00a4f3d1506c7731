package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/taskboard/internal/core/styles"
	"github.com/hay-kot/taskboard/internal/core/task"
)

const title = "To-Do List"

// View implements tea.Model.
func (m Model) View() string {
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TitleStyle.Render(title),
		m.renderInput(),
		"",
		m.renderSelectors(),
		"",
		m.renderTasks(),
		"",
		m.renderHelp(),
	)

	screen := styles.AppStyle.Render(body)
	return m.alert.Overlay(screen, m.width, m.height)
}

func (m Model) renderInput() string {
	box := styles.InputStyle
	if m.focus == focusInput {
		box = styles.InputFocusedStyle
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		box.Render(m.input.View()),
		styles.ButtonStyle.Render("Add"),
	)
}

func (m Model) renderSelectors() string {
	view := m.session.View
	return styles.SelectorLabel.Render("Filter: ") +
		selectorValues(task.Filters, view.Filter, task.Filter.Label) +
		"   " +
		styles.SelectorLabel.Render("Sort: ") +
		selectorValues(task.Sorts, view.Sort, task.Sort.Label)
}

func selectorValues[T comparable](all []T, cur T, label func(T) string) string {
	parts := make([]string, 0, len(all))
	for _, v := range all {
		if v == cur {
			parts = append(parts, styles.SelectorValue.Render("["+label(v)+"]"))
			continue
		}
		parts = append(parts, styles.MutedStyle.Render(label(v)))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderTasks() string {
	displayed := m.session.Displayed()
	if len(displayed) == 0 {
		return styles.EmptyStyle.Render("No tasks")
	}

	rows := make([]string, 0, len(displayed))
	for i, t := range displayed {
		rows = append(rows, m.renderTask(i, t))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderTask(i int, t task.Task) string {
	cursor := "  "
	if m.focus == focusList && i == m.cursor {
		cursor = styles.TaskCursorStyle.Render(styles.IconCursor) + " "
	}

	box := styles.CheckboxStyle.Render(styles.IconUnchecked)
	text := styles.TaskStyle.Render(t.Text)
	if t.Completed {
		box = styles.CheckboxStyle.Render(styles.IconChecked)
		text = styles.TaskDoneStyle.Render(t.Text)
	}

	return cursor + box + " " + text + " " + styles.DeleteStyle.Render(styles.IconDelete)
}

func (m Model) renderHelp() string {
	if m.focus == focusInput {
		return m.help.View(inputHelp{keys: m.keys})
	}
	return m.help.View(listHelp{keys: m.keys})
}
