// Package nav owns the editor's navigation state. The active tab path
// is the single source of truth; the location fragment the web UI used
// to round-trip through is reduced to a write-only projection.
package nav

import (
	"errors"
	"fmt"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
)

// ErrUnknownTab is returned by Activate for paths outside the tab tree
var ErrUnknownTab = errors.New("unknown tab")

// Sink receives the projected navigation state. Implementations must
// tolerate repeated values; the controller already suppresses writes
// that would not change anything.
type Sink interface {
	SetFragment(path string)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(path string)

func (f SinkFunc) SetFragment(path string) { f(path) }

// Controller resolves tab activations against the tab tree and
// projects the result into the sink. It is not safe for concurrent
// use; the update loop is its single caller.
type Controller struct {
	tabs      models.Tabs
	active    string
	projected string
	sink      Sink
}

// NewController starts with no active tab; callers activate the
// default or an externally restored path before first render. A nil
// sink disables projection.
func NewController(tabs models.Tabs, sink Sink) *Controller {
	return &Controller{tabs: tabs, sink: sink}
}

// Tabs returns the tree the controller navigates
func (c *Controller) Tabs() models.Tabs {
	return c.tabs
}

// ActivePath returns the fully qualified active path, empty before
// the first activation
func (c *Controller) ActivePath() string {
	return c.active
}

// Activate switches to the given tab path. A parent-only path is
// qualified to its default child. Unknown paths leave the state
// untouched and return ErrUnknownTab. Re-activating the current path
// is a no-op and writes nothing to the sink.
func (c *Controller) Activate(path string) error {
	qualified, ok := c.tabs.Qualify(path)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTab, path)
	}
	c.active = qualified
	c.project()
	return nil
}

// ActivateDefault switches to the tree's default tab
func (c *Controller) ActivateDefault() error {
	top, ok := c.tabs.DefaultTop()
	if !ok {
		return errors.New("tab tree has no top-level tabs")
	}
	return c.Activate(top.ID)
}

// HandleExternal feeds navigation state arriving from outside the
// controller: the restored fragment on startup or a --tab flag. Empty
// and unknown values fall back to the default tab. Returns the path
// that ended up active.
func (c *Controller) HandleExternal(fragment string) string {
	if fragment != "" {
		if err := c.Activate(fragment); err == nil {
			return c.active
		}
	}
	_ = c.ActivateDefault()
	return c.active
}

// project writes the active path to the sink, but only when it
// differs from the last projected value so a sink echoing back into
// HandleExternal cannot loop
func (c *Controller) project() {
	if c.sink == nil || c.active == c.projected {
		return
	}
	c.projected = c.active
	c.sink.SetFragment(c.active)
}
