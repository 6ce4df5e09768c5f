// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor provides the file editor panel.
//
// The editor keeps a local draft of the active file's name, language and
// content. Nothing reaches the file list until ctrl+s, which sends SaveMsg
// with the whole draft. A different file, or the same file after a save,
// replaces the draft.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/ui/components"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// SaveMsg carries the draft to store in the active file.
type SaveMsg struct {
	ID       string
	Name     string
	Language model.Language
	Content  string
}

type field int

const (
	fieldContent field = iota
	fieldName
)

// Model is the editor panel.
type Model struct {
	keys  KeyMap
	theme *styles.Theme
	md    *components.Markdown

	name    textinput.Model
	content textarea.Model
	preview viewport.Model

	file       model.FileItem
	hasFile    bool
	language   model.Language
	dirty      bool
	previewing bool
	focus      field
	fontSize   int

	focused bool
	width   int
	height  int
}

// New creates an editor with no file.
func New(theme *styles.Theme) Model {
	name := textinput.New()
	name.Placeholder = "File name..."
	name.Prompt = ""
	name.CharLimit = 255

	content := textarea.New()
	content.Placeholder = "Start typing..."
	content.CharLimit = 0
	content.MaxHeight = 0
	content.MaxWidth = 0
	content.ShowLineNumbers = true

	m := Model{
		keys:     DefaultKeyMap(),
		name:     name,
		content:  content,
		preview:  viewport.New(80, 20),
		language: model.LangText,
		fontSize: model.DefaultFontSize,
		width:    80,
		height:   24,
	}
	m.SetTheme(theme)
	return m
}

// SetTheme swaps styles and the markdown renderer.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.md = components.NewMarkdown(theme.GlamourStyle())
	m.refreshPreview()
}

// SetFontSize sets the size used for the preview wrap width.
func (m *Model) SetFontSize(size int) {
	m.fontSize = model.ClampFontSize(size)
	m.refreshPreview()
}

// SetSize sets the panel's outer size.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.name.Width = width - 30
	m.content.SetWidth(width)

	// Title row, separator, status row.
	h := height - 3
	if h < 3 {
		h = 3
	}
	m.content.SetHeight(h)
	m.preview.Width = width
	m.preview.Height = h
	m.refreshPreview()
}

// SetFile shows f. The draft is replaced when f is another file or a
// stored version of this file differs from the one the draft started from.
func (m *Model) SetFile(f model.FileItem, ok bool) {
	if !ok {
		m.file, m.hasFile = model.FileItem{}, false
		m.reset()
		return
	}
	if m.hasFile && f.ID == m.file.ID && sameVersion(f, m.file) {
		return
	}
	m.file, m.hasFile = f, true
	m.reset()
}

func sameVersion(a, b model.FileItem) bool {
	return a.Name == b.Name &&
		a.Language == b.Language &&
		a.Content == b.Content &&
		a.UpdatedAt.Equal(b.UpdatedAt)
}

// reset loads the draft from the stored file.
func (m *Model) reset() {
	m.name.SetValue(m.file.Name)
	m.name.CursorEnd()
	m.content.SetValue(m.file.Content)
	m.language = m.file.Language
	if !m.language.Valid() {
		m.language = model.LangText
	}
	m.dirty = false
	m.refreshPreview()
	m.applyFocus()
}

// Focus gives the editor the keyboard.
func (m *Model) Focus() {
	m.focused = true
	m.applyFocus()
}

// Blur releases the keyboard.
func (m *Model) Blur() {
	m.focused = false
	m.applyFocus()
}

func (m *Model) applyFocus() {
	m.name.Blur()
	m.content.Blur()
	if !m.focused || !m.hasFile || m.previewing {
		return
	}
	if m.focus == fieldName {
		m.name.Focus()
	} else {
		m.content.Focus()
	}
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Keys() KeyMap { return m.keys }

// Dirty reports unsaved edits.
func (m Model) Dirty() bool { return m.dirty }

// Previewing reports whether the preview is shown.
func (m Model) Previewing() bool { return m.previewing }

// Draft returns the current name, language and content.
func (m Model) Draft() (string, model.Language, string) {
	return m.name.Value(), m.language, m.content.Value()
}

func (m *Model) refreshPreview() {
	if !m.previewing || m.theme == nil {
		return
	}
	f := m.file
	f.Language = m.language
	f.Content = m.content.Value()
	width := components.WrapWidth(m.width-2, m.fontSize)
	m.preview.SetContent(components.RenderFile(m.theme, m.md, f, width))
}

// Update handles editing keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || !m.hasFile {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Save):
		draft := SaveMsg{
			ID:       m.file.ID,
			Name:     m.name.Value(),
			Language: m.language,
			Content:  m.content.Value(),
		}
		return m, func() tea.Msg { return draft }

	case key.Matches(keyMsg, m.keys.Preview):
		m.previewing = !m.previewing
		m.preview.GotoTop()
		m.refreshPreview()
		m.applyFocus()
		return m, nil

	case key.Matches(keyMsg, m.keys.Language):
		m.language = m.language.Next()
		m.dirty = true
		m.refreshPreview()
		return m, nil

	case key.Matches(keyMsg, m.keys.NextField):
		if m.focus == fieldName {
			m.focus = fieldContent
		} else {
			m.focus = fieldName
		}
		m.applyFocus()
		return m, nil

	case key.Matches(keyMsg, m.keys.Revert):
		m.reset()
		return m, nil
	}

	if m.previewing {
		switch {
		case key.Matches(keyMsg, m.keys.ScrollUp):
			m.preview.ViewUp()
		case key.Matches(keyMsg, m.keys.ScrollDown):
			m.preview.ViewDown()
		default:
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == fieldName {
		before := m.name.Value()
		m.name, cmd = m.name.Update(msg)
		if m.name.Value() != before {
			m.dirty = true
		}
		return m, cmd
	}
	before := m.content.Value()
	m.content, cmd = m.content.Update(msg)
	if m.content.Value() != before {
		m.dirty = true
	}
	return m, cmd
}

// View renders the editor.
func (m Model) View() string {
	if !m.hasFile {
		return m.theme.Welcome.Render(
			m.theme.WelcomeTitle.Render("No file open") + "\n\n" +
				"Press ctrl+n to create a file, or pick one from the sidebar.")
	}

	nameStyle := m.theme.FieldValue
	if m.focused && m.focus == fieldName && !m.previewing {
		nameStyle = m.theme.FieldFocused
	}
	marker := m.theme.Saved.Render(" ")
	if m.dirty {
		marker = m.theme.Unsaved.Render(styles.UnsavedMarker)
	}
	mode := "edit"
	if m.previewing {
		mode = "preview"
	}
	title := marker + " " + nameStyle.Render(m.name.View()) + "  " +
		m.theme.CodeLangBadge.Render(m.language.Label()) + "  " +
		m.theme.Muted.Render(mode)

	body := m.content.View()
	if m.previewing {
		body = m.preview.View()
	}

	sep := m.theme.Muted.Render(strings.Repeat("─", max(m.width, 0)))
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().MaxWidth(m.width).Render(title),
		sep,
		body,
	)
}
