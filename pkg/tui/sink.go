package tui

import (
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/config"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/logger"
)

// StateSink persists the active tab path to the state file so the
// next run reopens on the same tab. It stands where the web editor's
// location fragment used to: a write-only projection of navigation
// state. Write failures are logged and otherwise ignored.
type StateSink struct {
	path string
}

// NewStateSink writes to the given state file; an empty path disables
// persistence
func NewStateSink(path string) *StateSink {
	return &StateSink{path: path}
}

func (s *StateSink) SetFragment(fragment string) {
	if s.path == "" {
		return
	}
	st := config.LoadState(s.path)
	st.ActiveTab = fragment
	if err := config.SaveState(s.path, st); err != nil {
		logger.Warn().Err(err).Str("file", s.path).Msg("navigation state not persisted")
	}
}
