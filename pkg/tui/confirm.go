package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModel is a modal yes/no prompt. It is used for destructive
// choices only (discarding unsaved edits), so Yes always renders red.
type confirmModel struct {
	active    bool
	title     string
	message   string
	warning   string
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

func newConfirm() *confirmModel {
	return &confirmModel{}
}

// Show activates the prompt. The callbacks run after the prompt hides.
func (m *confirmModel) Show(title, message, warning string, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.title = title
	m.message = message
	m.warning = warning
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

func (m *confirmModel) Hide() {
	m.active = false
}

func (m *confirmModel) Active() bool {
	return m.active
}

// Update consumes key events while the prompt is active
func (m *confirmModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

// View renders the dialog at the given outer width
func (m *confirmModel) View(width int) string {
	if !m.active {
		return ""
	}

	if width < 30 {
		width = 30
	}
	contentWidth := width - 4

	center := lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Render(SectionStyle.Render(m.title)))
	b.WriteString("\n\n")
	b.WriteString(center.Render(m.message))
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(WarningStyle.Render(m.warning)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	yes := ErrorStyle.Render("[Y]es")
	no := SuccessStyle.Render("[N]o")
	b.WriteString(center.Render(yes + "   " + no))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Width(width).
		Render(b.String())
}
