package tui

import (
	"strings"
	"testing"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
)

func TestRenderTabBarRows(t *testing.T) {
	tabs := models.AuthTabs()

	bar := renderTabBar(tabs, "authentication/ldap", nil)
	if got := strings.Count(bar, "\n"); got != 1 {
		t.Fatalf("expected two rows for a parent with children, got %d newlines", got)
	}
	for _, name := range []string{"Authentication", "Server", "Local", "LDAP", "Google OAuth", "OpenID Connect"} {
		if !strings.Contains(bar, name) {
			t.Errorf("tab bar missing %q", name)
		}
	}

	bar = renderTabBar(tabs, "server", nil)
	if strings.Contains(bar, "\n") {
		t.Errorf("leaf top-level tab should render a single row, got %q", bar)
	}
	if strings.Contains(bar, "Local") {
		t.Errorf("server row should not list authentication sub-tabs")
	}
}

func TestRenderTabBarBadges(t *testing.T) {
	tabs := models.AuthTabs()

	errored := map[string]bool{
		"authentication":      true,
		"authentication/ldap": true,
	}
	bar := renderTabBar(tabs, "authentication/local", errored)
	if got := strings.Count(bar, "●"); got != 2 {
		t.Errorf("expected 2 badges, got %d in %q", got, bar)
	}

	if bar := renderTabBar(tabs, "authentication/local", nil); strings.Contains(bar, "●") {
		t.Errorf("clean results should render no badges")
	}
}

func TestRenderTabBarHighlightsActive(t *testing.T) {
	tabs := models.AuthTabs()

	bar := renderTabBar(tabs, "authentication/ldap", nil)
	if !strings.Contains(bar, "[Authentication]") {
		t.Errorf("active top-level tab should be bracketed, got %q", bar)
	}
	if !strings.Contains(bar, "[LDAP]") {
		t.Errorf("active sub-tab should be bracketed, got %q", bar)
	}
	if strings.Contains(bar, "[Local]") {
		t.Errorf("inactive sub-tab should not be bracketed, got %q", bar)
	}
}
