package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zigazou/cliquetis/internal/types"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var content string
	switch m.mode {
	case ModeForm:
		content = m.renderForm()
	case ModeRunning:
		content = m.theme.Subtle.Render(m.statusMsg)
	case ModeViewer:
		content = m.active.view(m.width-4, m.height-3)
	}

	frame := lipgloss.NewStyle().
		Border(m.theme.Border).
		BorderForeground(m.theme.BorderFg).
		Width(m.width - 2).
		Height(m.height - 3).
		Padding(0, 1).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, frame, m.renderStatusBar())
}

func (m Model) renderForm() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render(m.tool.Title))
	b.WriteString("\n")
	b.WriteString(m.theme.Header.Render(m.tool.Description))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, field := range m.form.fields {
		if w := len(field.desc.Name); w > labelWidth {
			labelWidth = w
		}
	}

	for index := range m.form.fields {
		b.WriteString(m.renderField(index, labelWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	button := m.theme.Button.Render(m.form.actionName)
	if m.form.onButton() {
		button = m.theme.Focused.Render("> ") + button
	} else {
		button = "  " + button
	}
	b.WriteString(button)

	return b.String()
}

func (m Model) renderField(index, labelWidth int) string {
	field := &m.form.fields[index]
	focused := m.form.focus == index

	label := fmt.Sprintf("%-*s", labelWidth, field.desc.Name)
	if focused {
		label = m.theme.Focused.Render(label)
	} else {
		label = m.theme.Label.Render(label)
	}

	var widget string
	switch field.desc.Kind {
	case types.KindText, types.KindFile:
		widget = field.input.View()

	case types.KindList:
		switch {
		case field.loading:
			widget = m.theme.Subtle.Render("loading...")
		case len(field.choices) == 0:
			widget = m.theme.Subtle.Render("(no choices)")
		case field.choice < 0:
			widget = m.theme.Subtle.Render("◂ (none) ▸")
		default:
			widget = fmt.Sprintf("◂ %s ▸", field.choices[field.choice])
		}

	case types.KindBoolean:
		switch field.tri {
		case types.TriOn:
			widget = "[x]"
		case types.TriOff:
			widget = "[ ]"
		default:
			widget = "[-]"
		}
	}

	prefix := "  "
	if focused {
		prefix = m.theme.Focused.Render("> ")
	}

	return prefix + label + "  " + widget
}

func (m Model) renderStatusBar() string {
	switch m.mode {
	case ModeForm:
		return m.theme.Subtle.Render("tab/↑↓ move · space toggle · ←/→ choose · enter run · esc cancel")

	case ModeRunning:
		return m.theme.Subtle.Render(m.statusMsg)

	case ModeViewer:
		status := fmt.Sprintf("exit %d · %s · %d bytes",
			m.result.ExitCode, m.result.Duration.Round(time.Millisecond), len(m.result.Raw))
		if m.result.ExitCode != 0 {
			status = m.theme.Error.Render(status)
		} else {
			status = m.theme.Success.Render(status)
		}
		hints := m.theme.Subtle.Render(" · ↑↓ scroll · enter fold · c copy · q close")
		return status + hints
	}

	return ""
}
