package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/client"
)

// StatusMsg updates the status bar
type StatusMsg string

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(text)
	}
}

// loadResultMsg carries a completed load request back into the update
// loop. The token pins it to the request that issued it.
type loadResultMsg struct {
	token  uint64
	result *client.LoadResult
	err    error
}

// saveResultMsg carries a completed save request back into the update
// loop
type saveResultMsg struct {
	token  uint64
	result *client.SaveResult
	err    error
}

// clipboardMsg reports the outcome of a copy-to-clipboard attempt
type clipboardMsg struct {
	err error
}
