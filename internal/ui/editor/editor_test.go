// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

func newEditor(t *testing.T, f model.FileItem) Model {
	t.Helper()
	m := New(styles.NewTheme(model.ThemeLight))
	m.SetSize(80, 24)
	m.SetFile(f, true)
	m.Focus()
	return m
}

func sampleFile() model.FileItem {
	f := model.NewFileItem("notes.txt")
	f.Content = "hello"
	return f
}

func press(m Model, t tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: t})
}

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestNoFilePlaceholder(t *testing.T) {
	m := New(styles.NewTheme(model.ThemeLight))
	m.SetSize(80, 24)
	m.Focus()

	assert.Contains(t, ansi.Strip(m.View()), "No file open")

	_, cmd := press(m, tea.KeyCtrlS)
	assert.Nil(t, cmd, "nothing to save")
}

func TestEditMarksDirtyAndSaveSendsDraft(t *testing.T) {
	f := sampleFile()
	m := newEditor(t, f)
	assert.False(t, m.Dirty())

	m = typeText(m, " world")
	assert.True(t, m.Dirty())
	assert.Contains(t, ansi.Strip(m.View()), styles.UnsavedMarker)

	m, cmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	assert.Equal(t, SaveMsg{
		ID:       f.ID,
		Name:     "notes.txt",
		Language: model.LangText,
		Content:  "hello world",
	}, cmd())
	assert.True(t, m.Dirty(), "dirty until the saved file comes back")
}

func TestSavedFileClearsDraft(t *testing.T) {
	f := sampleFile()
	m := newEditor(t, f)
	m = typeText(m, "!")

	saved := f
	saved.Content = "hello!"
	saved.UpdatedAt = f.UpdatedAt.Add(time.Second)
	m.SetFile(saved, true)

	assert.False(t, m.Dirty())
	_, _, content := m.Draft()
	assert.Equal(t, "hello!", content)
}

func TestSameFileKeepsDraft(t *testing.T) {
	f := sampleFile()
	m := newEditor(t, f)
	m = typeText(m, "!")

	m.SetFile(f, true)
	assert.True(t, m.Dirty())
	_, _, content := m.Draft()
	assert.Equal(t, "hello!", content)
}

func TestSwitchingFilesReplacesDraft(t *testing.T) {
	m := newEditor(t, sampleFile())
	m = typeText(m, "!")

	other := model.NewFileItem("main.py")
	other.Language = model.LangPython
	other.Content = "print(1)"
	m.SetFile(other, true)

	name, lang, content := m.Draft()
	assert.Equal(t, "main.py", name)
	assert.Equal(t, model.LangPython, lang)
	assert.Equal(t, "print(1)", content)
	assert.False(t, m.Dirty())
}

func TestLanguageCycles(t *testing.T) {
	m := newEditor(t, sampleFile())

	m, _ = press(m, tea.KeyCtrlL)
	_, lang, _ := m.Draft()
	assert.Equal(t, model.LangJavaScript, lang, "text wraps to the first language")
	assert.True(t, m.Dirty())

	m, _ = press(m, tea.KeyCtrlL)
	_, lang, _ = m.Draft()
	assert.Equal(t, model.LangTypeScript, lang)
	assert.Contains(t, ansi.Strip(m.View()), "TypeScript")
}

func TestRenameThroughNameField(t *testing.T) {
	m := newEditor(t, sampleFile())

	m, _ = press(m, tea.KeyCtrlO)
	m, _ = press(m, tea.KeyBackspace)
	m, _ = press(m, tea.KeyBackspace)
	m, _ = press(m, tea.KeyBackspace)
	m = typeText(m, "md")

	name, _, content := m.Draft()
	assert.Equal(t, "notes.md", name)
	assert.Equal(t, "hello", content, "content untouched")
	assert.True(t, m.Dirty())
}

func TestRevertRestoresStoredFile(t *testing.T) {
	m := newEditor(t, sampleFile())
	m = typeText(m, " there")
	m, _ = press(m, tea.KeyCtrlL)

	m, _ = press(m, tea.KeyCtrlZ)
	name, lang, content := m.Draft()
	assert.Equal(t, "notes.txt", name)
	assert.Equal(t, model.LangText, lang)
	assert.Equal(t, "hello", content)
	assert.False(t, m.Dirty())
}

func TestPreviewRendersMarkdown(t *testing.T) {
	f := model.NewFileItem("README.md")
	f.Language = model.LangMarkdown
	f.Content = "# Title\n\nSome **bold** text."
	m := newEditor(t, f)

	m, _ = press(m, tea.KeyCtrlP)
	require.True(t, m.Previewing())
	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
	assert.NotContains(t, out, "**bold**")

	before := m
	m = typeText(m, "x")
	_, _, content := m.Draft()
	assert.Equal(t, f.Content, content, "typing is ignored in preview")
	assert.Equal(t, before.Dirty(), m.Dirty())

	m, _ = press(m, tea.KeyCtrlP)
	assert.False(t, m.Previewing())
}

func TestBlurredEditorIgnoresKeys(t *testing.T) {
	m := newEditor(t, sampleFile())
	m.Blur()

	m = typeText(m, "zzz")
	_, cmd := press(m, tea.KeyCtrlS)
	assert.Nil(t, cmd)
	assert.False(t, m.Dirty())
}
