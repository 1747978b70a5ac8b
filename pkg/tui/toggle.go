package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ToggleStyle is the resolved presentation of a toggle switch. It is
// computed once when the editor binds its fields, never per frame.
type ToggleStyle struct {
	HandleWidth int
	OnLabel     string
	OffLabel    string
	OnColor     string
	OffColor    string
}

// ToggleOverride adjusts single properties of a profile; zero values
// keep the profile's setting
type ToggleOverride struct {
	HandleWidth int
	OnLabel     string
	OffLabel    string
	OnColor     string
	OffColor    string
}

// toggleProfiles are the named presets a config can ask for
var toggleProfiles = map[string]ToggleStyle{
	"default": {HandleWidth: 4, OnLabel: "ON", OffLabel: "OFF", OnColor: ColorSuccess, OffColor: ColorInactive},
	"compact": {HandleWidth: 2, OnLabel: "I", OffLabel: "O", OnColor: ColorSuccess, OffColor: ColorInactive},
	"wide":    {HandleWidth: 6, OnLabel: "ON", OffLabel: "OFF", OnColor: ColorSuccess, OffColor: ColorInactive},
}

// ResolveToggle resolves a profile name plus overrides into a
// concrete style. Unknown names report ok false; the caller falls
// back to a plain checkbox and keeps going.
func ResolveToggle(profile string, override ToggleOverride) (ToggleStyle, bool) {
	style, ok := toggleProfiles[profile]
	if !ok {
		return ToggleStyle{}, false
	}
	if override.HandleWidth > 0 {
		style.HandleWidth = override.HandleWidth
	}
	if override.OnLabel != "" {
		style.OnLabel = override.OnLabel
	}
	if override.OffLabel != "" {
		style.OffLabel = override.OffLabel
	}
	if override.OnColor != "" {
		style.OnColor = override.OnColor
	}
	if override.OffColor != "" {
		style.OffColor = override.OffColor
	}
	return style, true
}

// Render draws the switch: a colored handle track with the state
// label beside it
func (s ToggleStyle) Render(on bool) string {
	handle := strings.Repeat("█", s.HandleWidth)
	track := strings.Repeat("░", s.HandleWidth)

	if on {
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(s.OnColor)).Render(track + handle)
		return bar + " " + SuccessStyle.Render(s.OnLabel)
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(s.OffColor)).Render(handle + track)
	return bar + " " + NormalStyle.Render(s.OffLabel)
}

// renderCheckbox is the unstyled fallback used when the configured
// toggle profile does not exist
func renderCheckbox(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}
