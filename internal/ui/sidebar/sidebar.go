// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar lists the conversations or files of the active tab.
//
// The sidebar never changes application state itself. Selecting, creating
// and deleting are reported as messages for the root model to apply.
package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/ui/styles"
	"github.com/jeranaias/geminipad/internal/util"
)

// Kind is what the sidebar lists.
type Kind int

const (
	KindNone Kind = iota
	KindConversations
	KindFiles
)

func (k Kind) String() string {
	switch k {
	case KindConversations:
		return "Conversations"
	case KindFiles:
		return "Files"
	}
	return ""
}

// Item is one entry.
type Item struct {
	ID    string
	Title string
	Meta  string
}

// SelectMsg asks to make ID the active entry.
type SelectMsg struct {
	Kind Kind
	ID   string
}

// DeleteMsg asks to delete ID. It is sent only after confirmation.
type DeleteMsg struct {
	Kind Kind
	ID   string
}

// NewMsg asks to create an entry.
type NewMsg struct {
	Kind Kind
}

// linesPerItem is the title line plus the meta line.
const linesPerItem = 2

// Model is the sidebar.
type Model struct {
	keys  KeyMap
	theme *styles.Theme

	kind     Kind
	items    []Item
	activeID string
	cursor   int
	offset   int

	// confirmID is the entry waiting for a y/n answer.
	confirmID string

	focused bool
	width   int
	height  int
}

// New creates an empty sidebar.
func New(theme *styles.Theme) Model {
	return Model{
		keys:   DefaultKeyMap(),
		theme:  theme,
		width:  28,
		height: 20,
	}
}

// SetTheme swaps the styles.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
}

// SetSize sets the outer size.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.scrollToCursor()
}

// Focus gives the sidebar the keyboard.
func (m *Model) Focus() {
	m.focused = true
}

// Blur releases the keyboard and drops a pending delete confirmation.
func (m *Model) Blur() {
	m.focused = false
	m.confirmID = ""
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Kind() Kind { return m.kind }

func (m Model) Items() []Item { return m.items }

func (m Model) Cursor() int { return m.cursor }

// Confirming reports whether a delete waits for y/n.
func (m Model) Confirming() bool { return m.confirmID != "" }

// SetConversations lists conversations, most recent first.
func (m *Model) SetConversations(convs []model.Conversation, activeID string) {
	items := make([]Item, len(convs))
	for i, c := range convs {
		items[i] = Item{ID: c.ID, Title: c.Title, Meta: messageCount(len(c.Messages))}
	}
	m.setItems(KindConversations, items, activeID)
}

// SetFiles lists files, most recent first.
func (m *Model) SetFiles(files []model.FileItem, activeID string) {
	items := make([]Item, len(files))
	for i, f := range files {
		items[i] = Item{ID: f.ID, Title: f.Name, Meta: f.Language.Label()}
	}
	m.setItems(KindFiles, items, activeID)
}

// Clear shows no list, as on the settings tab.
func (m *Model) Clear() {
	m.setItems(KindNone, nil, "")
}

func (m *Model) setItems(kind Kind, items []Item, activeID string) {
	if kind != m.kind || activeID != m.activeID {
		m.cursor = indexOf(items, activeID)
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
	if m.confirmID != "" && indexOf(items, m.confirmID) < 0 {
		m.confirmID = ""
	}
	m.kind, m.items, m.activeID = kind, items, activeID
	m.clampCursor()
	m.scrollToCursor()
}

func messageCount(n int) string {
	if n == 1 {
		return "1 message"
	}
	return fmt.Sprintf("%d messages", n)
}

func indexOf(items []Item, id string) int {
	if id == "" {
		return -1
	}
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visibleItems is how many entries fit under the title.
func (m Model) visibleItems() int {
	n := (m.height - 3) / linesPerItem
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) scrollToCursor() {
	visible := m.visibleItems()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Update handles keys while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || m.kind == KindNone {
		return m, nil
	}

	if m.confirmID != "" {
		id := m.confirmID
		switch {
		case key.Matches(keyMsg, m.keys.Confirm):
			m.confirmID = ""
			kind := m.kind
			return m, func() tea.Msg { return DeleteMsg{Kind: kind, ID: id} }
		case key.Matches(keyMsg, m.keys.Abort):
			m.confirmID = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.scrollToCursor()
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.scrollToCursor()
		}
	case key.Matches(keyMsg, m.keys.Select):
		if len(m.items) > 0 {
			id, kind := m.items[m.cursor].ID, m.kind
			return m, func() tea.Msg { return SelectMsg{Kind: kind, ID: id} }
		}
	case key.Matches(keyMsg, m.keys.New):
		kind := m.kind
		return m, func() tea.Msg { return NewMsg{Kind: kind} }
	case key.Matches(keyMsg, m.keys.Delete):
		if len(m.items) > 0 {
			m.confirmID = m.items[m.cursor].ID
		}
	}
	return m, nil
}

// View renders the list.
func (m Model) View() string {
	inner := m.width - 2
	if inner < 8 {
		inner = 8
	}

	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render(m.kind.String()))
	b.WriteString("\n")

	switch {
	case m.kind == KindNone:
		b.WriteString(m.theme.SidebarMeta.Render("tab to switch panels"))
	case len(m.items) == 0:
		b.WriteString(m.theme.SidebarMeta.Render("Nothing yet. Press n."))
	default:
		end := m.offset + m.visibleItems()
		if end > len(m.items) {
			end = len(m.items)
		}
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderItem(i, inner))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	return m.theme.Sidebar.
		Width(m.width - 1).
		Height(m.height).
		MaxHeight(m.height).
		Render(b.String())
}

func (m Model) renderItem(i, width int) string {
	it := m.items[i]

	titleStyle := m.theme.SidebarItem
	if it.ID == m.activeID {
		titleStyle = m.theme.SidebarItemActive
	}
	marker := "  "
	if m.focused && i == m.cursor {
		marker = "> "
		titleStyle = titleStyle.Inherit(m.theme.SidebarCursor)
	}

	title := util.Truncate(util.OneLine(it.Title), width-2)
	meta := it.Meta
	if it.ID == m.confirmID {
		meta = "delete? y/n"
		return marker + titleStyle.Render(title) + "\n  " + m.theme.Unsaved.Render(meta)
	}
	return marker + titleStyle.Render(title) + "\n  " +
		m.theme.SidebarMeta.Render(util.Truncate(meta, width-2))
}
