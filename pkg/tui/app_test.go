package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestAppStatusMessages(t *testing.T) {
	tests := []struct {
		name         string
		msg          tea.Msg
		expectStatus string
	}{
		{
			name:         "StatusMsg fills the status bar",
			msg:          StatusMsg("✓ Settings saved"),
			expectStatus: "✓ Settings saved",
		},
		{
			name:         "unrelated messages leave it empty",
			msg:          tea.MouseMsg{},
			expectStatus: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApp(newTestEditor(t, nil))
			app.width = 100
			app.height = 40

			updated, _ := app.Update(tt.msg)
			a := updated.(*App)

			if a.statusMsg != tt.expectStatus {
				t.Errorf("expected status %q, got %q", tt.expectStatus, a.statusMsg)
			}
			if tt.expectStatus != "" && !strings.Contains(a.View(), tt.expectStatus) {
				t.Errorf("status %q not rendered", tt.expectStatus)
			}
		})
	}
}

func TestAppQuitsOnCtrlC(t *testing.T) {
	app := NewApp(newTestEditor(t, nil))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should produce a quit message")
	}
}

func TestAppSizesEditor(t *testing.T) {
	app := NewApp(newTestEditor(t, nil))
	if view := app.View(); view != "Loading..." {
		t.Errorf("zero-size view = %q", view)
	}

	updated, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	a := updated.(*App)
	if a.width != 120 || a.height != 50 {
		t.Errorf("app size = %dx%d", a.width, a.height)
	}
	if a.editor.width != 120 {
		t.Errorf("editor width = %d", a.editor.width)
	}
	if a.editor.height != 49 {
		t.Errorf("editor height = %d, want one line reserved for the status bar", a.editor.height)
	}
}
