package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorActive)).
			Underline(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorNormal))
)

// renderTabBar draws the two tab rows: the top-level tabs and the
// sub-tabs of the active parent. The active tab is bracketed so the
// highlight survives terminals without color support. Tabs owning
// validation errors carry a red badge dot; the set comes from the
// last validation pass.
func renderTabBar(tabs models.Tabs, activePath string, errored map[string]bool) string {
	parent, _, _ := strings.Cut(activePath, "/")

	var b strings.Builder
	b.WriteString(renderTabRow(tabs.TopLevel(), parent, "", errored))

	children := tabs.Children(parent)
	if len(children) > 0 {
		b.WriteString("\n")
		b.WriteString(renderTabRow(children, models.Leaf(activePath), parent, errored))
	}
	return b.String()
}

func renderTabRow(row []models.Tab, activeID, parent string, errored map[string]bool) string {
	parts := make([]string, 0, len(row))
	for _, tab := range row {
		path := tab.ID
		if parent != "" {
			path = parent + "/" + tab.ID
		}

		var cell string
		if tab.ID == activeID {
			cell = activeTabStyle.Render("[" + tab.Name + "]")
		} else {
			cell = inactiveTabStyle.Render(" " + tab.Name + " ")
		}
		if errored[path] {
			cell += BadgeStyle.Render("●")
		}
		parts = append(parts, cell)
	}
	return " " + strings.Join(parts, "  ")
}
