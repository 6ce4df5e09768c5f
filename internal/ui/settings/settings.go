// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings provides the settings panel.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// APIKeyHint tells the user where keys come from.
const APIKeyHint = "Get your API key at Google AI Studio (https://makersuite.google.com/app/apikey)"

// SaveMsg asks the application to store Settings.
type SaveMsg struct {
	Settings model.EditorSettings
}

// Field identifies a row in the panel.
type Field int

const (
	FieldAPIKey Field = iota
	FieldModel
	FieldTheme
	FieldFontSize
	fieldCount
)

var fieldLabels = [...]string{
	FieldAPIKey:   "API key",
	FieldModel:    "Model",
	FieldTheme:    "Theme",
	FieldFontSize: "Font size",
}

var titleCaser = cases.Title(language.English)

// ModelLabel is the display name of m, e.g. "Gemini Pro Vision".
func ModelLabel(m model.ModelName) string {
	return titleCaser.String(strings.ReplaceAll(string(m), "-", " "))
}

// ThemeLabel is the display name of t.
func ThemeLabel(t model.Theme) string {
	return titleCaser.String(string(t))
}

// Model is the settings panel. It edits a copy of the stored settings.
type Model struct {
	keys  KeyMap
	theme *styles.Theme

	stored  model.EditorSettings
	draft   model.EditorSettings
	loaded  bool
	apiKey  textinput.Model
	field   Field
	binding string

	focused bool
	width   int
	height  int
}

// New creates a settings panel showing the defaults.
func New(theme *styles.Theme) Model {
	in := textinput.New()
	in.Placeholder = "Enter your Gemini API key"
	in.Prompt = ""
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.Width = 48

	m := Model{
		keys:    DefaultKeyMap(),
		theme:   theme,
		apiKey:  in,
		binding: "[not set]",
		width:   80,
		height:  24,
	}
	m.SetSettings(model.DefaultSettings(""))
	m.loaded = false
	return m
}

func (m *Model) SetTheme(theme *styles.Theme) { m.theme = theme }

func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	w := width - 20
	if w < 10 {
		w = 10
	}
	m.apiKey.Width = w
}

// SetSettings shows s. Local edits are discarded when s differs from the
// settings the draft started from.
func (m *Model) SetSettings(s model.EditorSettings) {
	s = s.Normalize()
	if m.loaded && s == m.stored {
		return
	}
	m.loaded = true
	m.stored = s
	m.draft = s
	m.apiKey.SetValue(s.APIKey)
	m.apiKey.CursorEnd()
}

// SetBinding shows the masked fingerprint of the key the client is using.
func (m *Model) SetBinding(masked string) { m.binding = masked }

func (m *Model) Focus() {
	m.focused = true
	m.syncFocus()
}

func (m *Model) Blur() {
	m.focused = false
	m.syncFocus()
}

func (m *Model) syncFocus() {
	if m.focused && m.field == FieldAPIKey {
		m.apiKey.Focus()
		return
	}
	m.apiKey.Blur()
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Keys() KeyMap { return m.keys }

// Field returns the selected row.
func (m Model) Field() Field { return m.field }

// Draft returns the edited settings.
func (m Model) Draft() model.EditorSettings {
	d := m.draft
	d.APIKey = m.apiKey.Value()
	return d
}

// Dirty reports unsaved edits.
func (m Model) Dirty() bool { return m.Draft() != m.stored }

// Revealed reports whether the key is shown in clear text.
func (m Model) Revealed() bool { return m.apiKey.EchoMode == textinput.EchoNormal }

// Update handles panel keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Save):
		s := m.Draft()
		s.APIKey = strings.TrimSpace(s.APIKey)
		return m, func() tea.Msg { return SaveMsg{Settings: s} }

	case key.Matches(keyMsg, m.keys.Revert):
		m.draft = m.stored
		m.apiKey.SetValue(m.stored.APIKey)
		m.apiKey.CursorEnd()
		return m, nil

	case key.Matches(keyMsg, m.keys.Reveal):
		if m.Revealed() {
			m.apiKey.EchoMode = textinput.EchoPassword
		} else {
			m.apiKey.EchoMode = textinput.EchoNormal
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		m.field = (m.field + fieldCount - 1) % fieldCount
		m.syncFocus()
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		m.field = (m.field + 1) % fieldCount
		m.syncFocus()
		return m, nil
	}

	if m.field == FieldAPIKey {
		var cmd tea.Cmd
		m.apiKey, cmd = m.apiKey.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Next), key.Matches(keyMsg, m.keys.Increase):
		m.step(1)
	case key.Matches(keyMsg, m.keys.Prev), key.Matches(keyMsg, m.keys.Decrease):
		m.step(-1)
	}
	return m, nil
}

// step moves the selected option by delta.
func (m *Model) step(delta int) {
	switch m.field {
	case FieldModel:
		m.draft.Model = cycle(model.Models(), m.draft.Model, delta)
	case FieldTheme:
		m.draft.Theme = cycle(model.Themes(), m.draft.Theme, delta)
	case FieldFontSize:
		m.draft.FontSize = model.ClampFontSize(m.draft.FontSize + delta)
	}
}

func cycle[T comparable](options []T, current T, delta int) T {
	for i, o := range options {
		if o == current {
			return options[(i+delta+len(options))%len(options)]
		}
	}
	return options[0]
}

// View renders the panel.
func (m Model) View() string {
	var b strings.Builder

	title := "Settings"
	if m.Dirty() {
		title += " " + m.theme.Unsaved.Render(styles.UnsavedMarker)
	}
	b.WriteString(m.theme.WelcomeTitle.Render(title))
	b.WriteString("\n\n")

	d := m.Draft()
	values := [...]string{
		FieldAPIKey:   m.apiKey.View(),
		FieldModel:    "< " + ModelLabel(d.Model) + " >",
		FieldTheme:    "< " + ThemeLabel(d.Theme) + " >",
		FieldFontSize: fmt.Sprintf("- %d +", d.FontSize),
	}
	for f := Field(0); f < fieldCount; f++ {
		value := m.theme.FieldValue
		marker := "  "
		if m.focused && f == m.field {
			value = m.theme.FieldFocused
			marker = m.theme.SidebarCursor.Render("> ")
		}
		b.WriteString(marker + m.theme.FieldLabel.Render(fieldLabels[f]) + value.Render(values[f]))
		b.WriteString("\n")
		if f == FieldAPIKey {
			b.WriteString("  " + m.theme.Muted.Render(APIKeyHint) + "\n")
			b.WriteString("  " + m.theme.Muted.Render("In use: "+m.binding) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("Font size sets the reading width (%d-%d).", model.MinFontSize, model.MaxFontSize)))

	return lipgloss.NewStyle().MaxWidth(m.width).Padding(1, 2).Render(b.String())
}
