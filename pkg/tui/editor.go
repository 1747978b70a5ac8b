package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/editor"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/logger"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/models"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/nav"
	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/rules"
)

// EditorOptions tunes the editor presentation
type EditorOptions struct {
	ToggleProfile  string
	ToggleOverride ToggleOverride
}

// EditorModel is the settings form: the tab bar, the field rows of the
// active tab and the load/save lifecycle around them. Text rows keep
// every printable key for themselves (LDAP filters contain brackets
// and digits), so tab switching is always available on modifier keys
// and additionally on bare keys while a non-text row has focus.
type EditorModel struct {
	session *editor.Session
	nav     *nav.Controller

	inputs map[string]*textinput.Model
	focus  int

	viewport viewport.Model
	spinner  spinner.Model
	confirm  *confirmModel

	toggle    ToggleStyle
	useToggle bool

	showHelp bool

	width  int
	height int
}

var errDigitsOnly = errors.New("digits only")

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return errDigitsOnly
		}
	}
	return nil
}

func NewEditorModel(session *editor.Session, controller *nav.Controller, opts EditorOptions) *EditorModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	m := &EditorModel{
		session:  session,
		nav:      controller,
		inputs:   make(map[string]*textinput.Model),
		viewport: viewport.New(80, 20),
		spinner:  sp,
		confirm:  newConfirm(),
		showHelp: true,
	}

	profile := opts.ToggleProfile
	if profile == "" {
		profile = "default"
	}
	m.toggle, m.useToggle = ResolveToggle(profile, opts.ToggleOverride)
	if !m.useToggle {
		logger.Warn().Str("profile", profile).Msg("unknown toggle profile, using checkboxes")
	}

	for _, f := range session.Schema().Fields() {
		if len(f.Options) > 0 || f.Kind == models.KindBool {
			continue
		}
		ti := textinput.New()
		ti.CharLimit = 255
		ti.Width = 40
		if f.Kind == models.KindInt {
			ti.CharLimit = 10
			ti.Width = 10
			ti.Validate = digitsOnly
		}
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[f.Name] = &ti
	}

	if controller.ActivePath() == "" {
		if err := controller.ActivateDefault(); err != nil {
			logger.Error().Err(err).Msg("no default tab")
		}
	}

	m.syncInputs()
	m.updateFocus()
	m.refreshContent()
	return m
}

// Session exposes the underlying session, for the app shell and tests
func (m *EditorModel) Session() *editor.Session {
	return m.session
}

func (m *EditorModel) Init() tea.Cmd {
	if m.session.AutoLoad() {
		return m.beginLoad()
	}
	return nil
}

// beginLoad issues a load request, or nil when the session refuses
func (m *EditorModel) beginLoad() tea.Cmd {
	token, ok := m.session.BeginLoad()
	if !ok {
		if !m.session.Client().Ready() {
			return statusCmd("No endpoint configured, editing offline")
		}
		return nil
	}
	c := m.session.Client()
	return tea.Batch(
		func() tea.Msg {
			res, err := c.Load(context.Background())
			return loadResultMsg{token: token, result: res, err: err}
		},
		m.spinner.Tick,
	)
}

// beginSave issues a save request. The session refuses while the form
// has validation errors, so an invalid form causes no request at all.
func (m *EditorModel) beginSave() tea.Cmd {
	token, ok := m.session.BeginSave()
	if !ok {
		if m.session.State() == editor.StateIdle && !m.session.Valid() {
			return statusCmd("Fix the highlighted errors before saving")
		}
		return nil
	}
	c := m.session.Client()
	data := m.session.Record().Flatten()
	return tea.Batch(
		func() tea.Msg {
			res, err := c.Save(context.Background(), data)
			return saveResultMsg{token: token, result: res, err: err}
		},
		m.spinner.Tick,
	)
}

func (m *EditorModel) copyToClipboard() tea.Cmd {
	data := m.session.Record().Flatten()
	return func() tea.Msg {
		buf, err := json.MarshalIndent(data, "", "  ")
		if err == nil {
			err = clipboard.WriteAll(string(buf))
		}
		return clipboardMsg{err: err}
	}
}

func (m *EditorModel) Update(msg tea.Msg) (*EditorModel, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.session.State() != editor.StateIdle {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case loadResultMsg:
		if m.session.ApplyLoad(msg.token, msg.result, msg.err) {
			m.syncInputs()
			m.refreshContent()
			if m.session.Outcome() == editor.OutcomeLoaded {
				return m, statusCmd("✓ Settings loaded")
			}
		}
		return m, nil

	case saveResultMsg:
		if m.session.ApplySave(msg.token, msg.result, msg.err) {
			m.syncInputs()
			m.refreshContent()
			if m.session.Outcome() == editor.OutcomeSaved {
				return m, statusCmd("✓ Settings saved")
			}
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			return m, statusCmd("Copy failed: " + msg.err.Error())
		}
		return m, statusCmd("✓ Settings copied as JSON")

	case tea.KeyMsg:
		if m.confirm.Active() {
			return m, m.confirm.Update(msg)
		}

		key := msg.String()
		textFocused := m.textRowFocused()

		switch key {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.session.Dirty() {
				m.confirm.Show(
					"EXIT CONFIRMATION",
					"You have unsaved authentication changes.",
					"Exit and discard them?",
					func() tea.Cmd { return tea.Quit },
					nil,
				)
				return m, nil
			}
			return m, tea.Quit

		case "ctrl+s":
			return m, m.beginSave()

		case "ctrl+r":
			if m.session.Dirty() {
				m.confirm.Show(
					"RELOAD CONFIRMATION",
					"Reloading will overwrite your unsaved changes.",
					"Reload from the server?",
					func() tea.Cmd { return m.beginLoad() },
					nil,
				)
				return m, nil
			}
			return m, m.beginLoad()

		case "ctrl+y":
			return m, m.copyToClipboard()

		case "ctrl+t":
			m.toggleTop()
			return m, nil

		case "shift+left":
			m.cycleSub(-1)
			return m, nil

		case "shift+right":
			m.cycleSub(1)
			return m, nil

		case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9":
			m.jumpSub(int(key[len(key)-1] - '1'))
			return m, nil

		case "up":
			m.moveFocus(-1, false)
			return m, nil

		case "down":
			m.moveFocus(1, false)
			return m, nil

		case "tab":
			m.moveFocus(1, true)
			return m, nil

		case "shift+tab":
			m.moveFocus(-1, true)
			return m, nil

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd

		case " ", "space", "enter":
			if !textFocused {
				m.toggleOrCycle(1)
				return m, nil
			}

		case "left":
			if !textFocused {
				m.leftRight(-1)
				return m, nil
			}

		case "right":
			if !textFocused {
				m.leftRight(1)
				return m, nil
			}

		case "[":
			if !textFocused {
				m.cycleSub(-1)
				return m, nil
			}

		case "]":
			if !textFocused {
				m.cycleSub(1)
				return m, nil
			}

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if !textFocused {
				m.jumpSub(int(key[0] - '1'))
				return m, nil
			}

		case "?":
			if !textFocused {
				m.showHelp = !m.showHelp
				return m, nil
			}
		}
	}

	// Write-through: the focused input consumes whatever is left and
	// every change lands in the record immediately
	if f, ok := m.focusedField(); ok {
		if in, exists := m.inputs[f.Name]; exists && in.Focused() {
			prev := in.Value()
			updated, cmd := in.Update(msg)
			*in = updated
			cmds = append(cmds, cmd)
			if updated.Value() != prev {
				if err := m.session.SetField(f.Name, updated.Value()); err != nil {
					logger.Debug().Err(err).Str("field", f.Name).Msg("edit not applied")
				}
				m.refreshContent()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *EditorModel) View() string {
	if m.confirm.Active() {
		return ContentPaddingStyle.Render(m.confirm.View(m.width - 4))
	}

	var content strings.Builder
	content.WriteString(renderPaneHeader(m.paneTitle(), m.width-4))
	content.WriteString("\n\n")

	errTabs := m.session.Results().TabErrors(m.nav.Tabs(), m.session.Schema())
	content.WriteString(ContentPaddingStyle.Render(renderTabBar(m.nav.Tabs(), m.nav.ActivePath(), errTabs)))
	content.WriteString("\n\n")

	m.refreshContent()
	content.WriteString(ContentPaddingStyle.Render(m.viewport.View()))

	if footer := m.renderFooter(); footer != "" {
		content.WriteString("\n")
		content.WriteString(ContentPaddingStyle.Render(footer))
	}

	var s strings.Builder
	s.WriteString(ContentPaddingStyle.Render(
		ActiveBorderStyle.Width(m.width - 4).Height(m.height - 5).Render(content.String())))
	s.WriteString("\n")

	if !m.showHelp {
		s.WriteString(ContentPaddingStyle.Render(CommentStyle.Render("? help")))
		return s.String()
	}

	help := []string{
		"shift+←→ sub-tab",
		"^t section",
		"alt+1-9 jump",
		"tab/↑↓ field",
		"space toggle",
		"^s save",
		"^r reload",
		"^y copy",
		"? help",
		"esc exit",
	}
	alignedHelp := lipgloss.NewStyle().
		Width(m.width - 8).
		Align(lipgloss.Right).
		Render(formatHelpText(help))
	s.WriteString(ContentPaddingStyle.Render(
		InactiveBorderStyle.Width(m.width - 4).Padding(0, 1).Render(alignedHelp)))

	return s.String()
}

func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 10
	m.viewport.Height = height - 14
	if m.viewport.Width < 20 {
		m.viewport.Width = 20
	}
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
}

func (m *EditorModel) paneTitle() string {
	parent, _, _ := strings.Cut(m.nav.ActivePath(), "/")
	if t, ok := m.nav.Tabs().Find(parent); ok {
		return strings.ToUpper(t.Name) + " SETTINGS"
	}
	return "SETTINGS"
}

func (m *EditorModel) activeFields() []models.Field {
	leaf := models.Leaf(m.nav.ActivePath())
	return m.session.Schema().FieldsForTab(leaf)
}

func (m *EditorModel) focusedField() (models.Field, bool) {
	fields := m.activeFields()
	if m.focus < 0 || m.focus >= len(fields) {
		return models.Field{}, false
	}
	return fields[m.focus], true
}

func (m *EditorModel) textRowFocused() bool {
	f, ok := m.focusedField()
	if !ok {
		return false
	}
	in, exists := m.inputs[f.Name]
	return exists && in.Focused()
}

func (m *EditorModel) updateFocus() {
	fields := m.activeFields()
	if m.focus >= len(fields) {
		m.focus = 0
	}

	for _, in := range m.inputs {
		in.Blur()
	}

	if len(fields) == 0 {
		return
	}
	if in, ok := m.inputs[fields[m.focus].Name]; ok {
		in.Focus()
	}
}

func (m *EditorModel) moveFocus(delta int, wrap bool) {
	fields := m.activeFields()
	if len(fields) == 0 {
		return
	}
	next := m.focus + delta
	if wrap {
		next = (next + len(fields)) % len(fields)
	} else if next < 0 || next >= len(fields) {
		return
	}
	m.focus = next
	m.updateFocus()
	m.refreshContent()
}

func (m *EditorModel) toggleOrCycle(delta int) {
	f, ok := m.focusedField()
	if !ok {
		return
	}
	switch {
	case len(f.Options) > 0:
		m.cycleChoice(f, delta)
	case f.Kind == models.KindBool:
		m.toggleBool(f)
	}
	m.refreshContent()
}

func (m *EditorModel) leftRight(delta int) {
	f, ok := m.focusedField()
	if ok && len(f.Options) > 0 {
		m.cycleChoice(f, delta)
		m.refreshContent()
		return
	}
	m.cycleSub(delta)
}

func (m *EditorModel) cycleChoice(f models.Field, delta int) {
	current := m.session.Record().String(f.Name)
	i := 0
	for j, opt := range f.Options {
		if opt == current {
			i = j
			break
		}
	}
	next := (i + delta + len(f.Options)) % len(f.Options)
	if err := m.session.SetField(f.Name, f.Options[next]); err != nil {
		logger.Warn().Err(err).Str("field", f.Name).Msg("choice not applied")
	}
}

func (m *EditorModel) toggleBool(f models.Field) {
	if err := m.session.SetField(f.Name, !m.session.Record().Bool(f.Name)); err != nil {
		logger.Warn().Err(err).Str("field", f.Name).Msg("toggle not applied")
	}
}

func (m *EditorModel) cycleSub(delta int) {
	parent, leaf, nested := strings.Cut(m.nav.ActivePath(), "/")
	if !nested {
		return
	}
	children := m.nav.Tabs().Children(parent)
	if len(children) == 0 {
		return
	}
	i := 0
	for j, tab := range children {
		if tab.ID == leaf {
			i = j
			break
		}
	}
	next := (i + delta + len(children)) % len(children)
	m.activate(parent + "/" + children[next].ID)
}

func (m *EditorModel) jumpSub(i int) {
	parent, _, _ := strings.Cut(m.nav.ActivePath(), "/")
	children := m.nav.Tabs().Children(parent)
	if i < 0 || i >= len(children) {
		return
	}
	m.activate(parent + "/" + children[i].ID)
}

func (m *EditorModel) toggleTop() {
	parent, _, _ := strings.Cut(m.nav.ActivePath(), "/")
	tops := m.nav.Tabs().TopLevel()
	for i, t := range tops {
		if t.ID == parent {
			m.activate(tops[(i+1)%len(tops)].ID)
			return
		}
	}
}

func (m *EditorModel) activate(path string) {
	if err := m.nav.Activate(path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("tab activation failed")
		return
	}
	m.focus = 0
	m.viewport.GotoTop()
	m.updateFocus()
	m.refreshContent()
}

func (m *EditorModel) syncInputs() {
	rec := m.session.Record()
	for name, in := range m.inputs {
		f, ok := m.session.Schema().Lookup(name)
		if !ok {
			continue
		}
		if f.Kind == models.KindInt {
			in.SetValue(strconv.Itoa(rec.Int(name)))
		} else {
			in.SetValue(rec.String(name))
		}
	}
}

func (m *EditorModel) refreshContent() {
	leaf := models.Leaf(m.nav.ActivePath())

	var content strings.Builder
	if tab, ok := m.nav.Tabs().Find(leaf); ok {
		content.WriteString(SectionStyle.Render(strings.ToUpper(tab.Name)))
		content.WriteString("\n\n")
	}

	fields := m.activeFields()
	if len(fields) == 0 {
		content.WriteString(renderSettingsTree(m.session.Settings()))
		content.WriteString("\n")
		m.viewport.SetContent(content.String())
		return
	}

	res := m.session.Results()
	for i, f := range fields {
		content.WriteString(m.renderRow(f, i == m.focus))
		content.WriteString("\n")
		if rules.PlacementFor(f) != rules.PlacementFooter {
			for _, violation := range res.Messages(f.Name) {
				content.WriteString(ErrorStyle.Render("    ✗ " + violation))
				content.WriteString("\n")
			}
		}
		if f.Description != "" {
			content.WriteString(CommentStyle.Render("    # " + f.Description))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}
	m.viewport.SetContent(content.String())
}

func (m *EditorModel) renderRow(f models.Field, focused bool) string {
	label := LabelStyle.Render(f.Label + ":")

	var control string
	switch {
	case len(f.Options) > 0:
		control = m.renderChoice(f, focused)
	case f.Kind == models.KindBool:
		control = m.renderToggle(m.session.Record().Bool(f.Name))
	default:
		control = m.inputs[f.Name].View()
	}

	line := label + " " + control
	if focused {
		return FocusedStyle.Render("▸ ") + line
	}
	return "  " + line
}

func (m *EditorModel) renderToggle(on bool) string {
	if m.useToggle {
		return m.toggle.Render(on)
	}
	return renderCheckbox(on)
}

func (m *EditorModel) renderChoice(f models.Field, focused bool) string {
	current := m.session.Record().String(f.Name)
	parts := make([]string, 0, len(f.Options))
	for _, opt := range f.Options {
		marker := "( )"
		if opt == current {
			marker = "(•)"
		}
		part := marker + " " + opt
		if opt == current && focused {
			part = FocusedStyle.Render(part)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "  ")
}

// renderFooter fills the line under the viewport: in-flight progress
// first, then failures, then form-level violations, then outcomes
func (m *EditorModel) renderFooter() string {
	width := m.width - 10
	if width < 20 {
		width = 20
	}

	switch m.session.State() {
	case editor.StateLoading:
		return m.spinner.View() + " Loading settings…"
	case editor.StateSaving:
		return m.spinner.View() + " Saving…"
	}

	switch m.session.Outcome() {
	case editor.OutcomeLoadFailed:
		return ErrorStyle.Render(wordwrap.String("✗ Load failed: "+strings.Join(m.session.Messages(), "; "), width))
	case editor.OutcomeSaveFailed:
		return ErrorStyle.Render(wordwrap.String("✗ Save failed: "+strings.Join(m.session.Messages(), "; "), width))
	}

	if violations := m.footerViolations(); len(violations) > 0 {
		return ErrorStyle.Render(wordwrap.String("✗ "+strings.Join(violations, "; "), width))
	}

	switch m.session.Outcome() {
	case editor.OutcomeSaved:
		return SuccessStyle.Render("✓ Settings saved")
	case editor.OutcomeLoaded:
		return SuccessStyle.Render("✓ Settings loaded")
	}

	if m.session.Dirty() {
		return WarningStyle.Render("● Unsaved changes")
	}
	return ""
}

func (m *EditorModel) footerViolations() []string {
	var out []string
	res := m.session.Results()
	for _, f := range m.session.Schema().Fields() {
		if rules.PlacementFor(f) != rules.PlacementFooter {
			continue
		}
		out = append(out, res.Messages(f.Name)...)
	}
	return out
}
