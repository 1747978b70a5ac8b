package nav

import (
	"errors"
	"testing"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
)

type recordingSink struct {
	writes []string
}

func (s *recordingSink) SetFragment(path string) {
	s.writes = append(s.writes, path)
}

func TestActivateQualifiesParent(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(models.AuthTabs(), sink)

	if err := c.Activate("authentication"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if got := c.ActivePath(); got != "authentication/local" {
		t.Errorf("ActivePath = %q, want authentication/local", got)
	}
	if len(sink.writes) != 1 || sink.writes[0] != "authentication/local" {
		t.Errorf("sink writes = %v", sink.writes)
	}
}

func TestActivateQualifiedPathKept(t *testing.T) {
	c := NewController(models.AuthTabs(), nil)

	if err := c.Activate("authentication/ldap"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if got := c.ActivePath(); got != "authentication/ldap" {
		t.Errorf("ActivePath = %q, want authentication/ldap", got)
	}
}

func TestActivateUnknownLeavesState(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(models.AuthTabs(), sink)
	if err := c.Activate("authentication/ldap"); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	err := c.Activate("bogus/tab")
	if !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("err = %v, want ErrUnknownTab", err)
	}
	if got := c.ActivePath(); got != "authentication/ldap" {
		t.Errorf("ActivePath after failed activation = %q", got)
	}
	if len(sink.writes) != 1 {
		t.Errorf("failed activation wrote to the sink: %v", sink.writes)
	}
}

func TestActivateIdempotent(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(models.AuthTabs(), sink)

	if err := c.Activate("authentication/oidc"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := c.Activate(c.ActivePath()); err != nil {
		t.Fatalf("re-Activate: %v", err)
	}
	if len(sink.writes) != 1 {
		t.Errorf("re-activation should not write the sink again, got %v", sink.writes)
	}
}

func TestHandleExternal(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"empty falls to default", "", "authentication/local"},
		{"valid fragment restored", "authentication/azure", "authentication/azure"},
		{"parent fragment qualified", "authentication", "authentication/local"},
		{"unknown falls to default", "no/such", "authentication/local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(models.AuthTabs(), nil)
			if got := c.HandleExternal(tt.fragment); got != tt.want {
				t.Errorf("HandleExternal(%q) = %q, want %q", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(models.AuthTabs(), sink)
	c.HandleExternal("authentication/github")

	// feeding the projected fragment back in changes nothing and
	// writes nothing
	before := len(sink.writes)
	c.HandleExternal(sink.writes[len(sink.writes)-1])
	if got := c.ActivePath(); got != "authentication/github" {
		t.Errorf("ActivePath = %q", got)
	}
	if len(sink.writes) != before {
		t.Errorf("round trip wrote the sink: %v", sink.writes)
	}
}

func TestActivateDefault(t *testing.T) {
	c := NewController(models.AuthTabs(), nil)
	if err := c.ActivateDefault(); err != nil {
		t.Fatalf("ActivateDefault: %v", err)
	}
	if got := c.ActivePath(); got != "authentication/local" {
		t.Errorf("ActivePath = %q, want authentication/local", got)
	}
}
