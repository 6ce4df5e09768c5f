// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func conversations(titles ...string) []model.Conversation {
	out := make([]model.Conversation, len(titles))
	for i, title := range titles {
		out[i] = model.NewConversation(title)
	}
	return out
}

func newFocused(t *testing.T) Model {
	t.Helper()
	m := New(styles.NewTheme(model.ThemeLight))
	m.SetSize(30, 20)
	m.Focus()
	return m
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestSetConversations(t *testing.T) {
	m := newFocused(t)
	convs := conversations("alpha", "beta")
	convs[0].Append(model.NewMessage(model.RoleUser, "hi"))
	m.SetConversations(convs, convs[1].ID)

	require.Len(t, m.Items(), 2)
	assert.Equal(t, "1 message", m.Items()[0].Meta)
	assert.Equal(t, "0 messages", m.Items()[1].Meta)
	assert.Equal(t, 1, m.Cursor(), "cursor starts on the active entry")
	assert.Equal(t, KindConversations, m.Kind())

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Conversations")
	assert.Contains(t, view, "alpha")
	assert.Contains(t, view, "> beta")
}

func TestSetFiles(t *testing.T) {
	m := newFocused(t)
	f := model.NewFileItem("main.py")
	f.Language = model.LangPython
	m.SetFiles([]model.FileItem{f}, "")

	require.Len(t, m.Items(), 1)
	assert.Equal(t, "Python", m.Items()[0].Meta)
	assert.Contains(t, ansi.Strip(m.View()), "main.py")
}

func TestNavigateAndSelect(t *testing.T) {
	m := newFocused(t)
	convs := conversations("a", "b", "c")
	m.SetConversations(convs, "")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("j"))
	assert.Equal(t, 2, m.Cursor(), "stops at the last entry")

	m, _ = m.Update(keyRunes("k"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, SelectMsg{Kind: KindConversations, ID: convs[1].ID}, run(t, cmd))
}

func TestNew(t *testing.T) {
	m := newFocused(t)
	m.SetFiles(nil, "")
	_, cmd := m.Update(keyRunes("n"))
	assert.Equal(t, NewMsg{Kind: KindFiles}, run(t, cmd))
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := newFocused(t)
	convs := conversations("keep", "drop")
	m.SetConversations(convs, "")

	m, _ = m.Update(keyRunes("j"))
	m, cmd := m.Update(keyRunes("d"))
	assert.Nil(t, cmd)
	assert.True(t, m.Confirming())
	assert.Contains(t, ansi.Strip(m.View()), "delete? y/n")

	m, cmd = m.Update(keyRunes("n"))
	assert.Nil(t, cmd, "n answers the question instead of creating")
	assert.False(t, m.Confirming())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	m, cmd = m.Update(keyRunes("y"))
	assert.Equal(t, DeleteMsg{Kind: KindConversations, ID: convs[1].ID}, run(t, cmd))
	assert.False(t, m.Confirming())
}

func TestIgnoresKeysWhenBlurred(t *testing.T) {
	m := newFocused(t)
	m.SetConversations(conversations("a", "b"), "")
	m.Blur()

	m, cmd := m.Update(keyRunes("j"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Cursor())
}

func TestCursorFollowsNewActiveEntry(t *testing.T) {
	m := newFocused(t)
	convs := conversations("a", "b")
	m.SetConversations(convs, convs[1].ID)
	require.Equal(t, 1, m.Cursor())

	fresh := model.NewConversation("c")
	m.SetConversations(append([]model.Conversation{fresh}, convs...), fresh.ID)
	assert.Equal(t, 0, m.Cursor())

	m.SetConversations(nil, "")
	assert.Equal(t, 0, m.Cursor())
	assert.Contains(t, ansi.Strip(m.View()), "Nothing yet")
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	m := New(styles.NewTheme(model.ThemeDark))
	m.SetSize(30, 9) // three entries fit
	m.Focus()

	titles := []string{"one", "two", "three", "four", "five"}
	m.SetConversations(conversations(titles...), "")
	for range titles {
		m, _ = m.Update(keyRunes("j"))
	}

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "> five")
	assert.NotContains(t, view, "one")
}

func TestClear(t *testing.T) {
	m := newFocused(t)
	m.SetConversations(conversations("a"), "")
	m.Clear()

	_, cmd := m.Update(keyRunes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, KindNone, m.Kind())
}
