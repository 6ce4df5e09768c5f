// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/ui/components"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// SendMsg carries a trimmed, non-blank prompt.
type SendMsg struct {
	Prompt string
}

// CancelMsg asks to stop the reply in flight.
type CancelMsg struct{}

// composerHeight is the composer's text rows.
const composerHeight = 3

// View is what the panel shows, taken from app.State.
type View struct {
	Conversation model.Conversation
	// HasConversation is false when nothing is selected.
	HasConversation bool
	Loading         bool
	HasAPIKey       bool
	FontSize        int
	// StreamingID is the reply still arriving, if it is in this conversation.
	StreamingID string
}

// Model is the chat panel.
type Model struct {
	keys  KeyMap
	theme *styles.Theme
	md    *components.Markdown

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	view View
	// rendered caches the last viewport content to skip no-op refreshes.
	rendered string

	focused bool
	width   int
	height  int
}

// New creates the chat panel.
func New(theme *styles.Theme) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask Gemini..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	ta.SetHeight(composerHeight)
	ta.KeyMap.InsertNewline = DefaultKeyMap().Newline

	m := Model{
		keys:     DefaultKeyMap(),
		viewport: viewport.New(80, 20),
		input:    ta,
		width:    80,
		height:   24,
		view:     View{FontSize: model.DefaultFontSize},
	}
	m.SetTheme(theme)
	return m
}

// SetTheme swaps styles and the markdown renderer.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.md = components.NewMarkdown(theme.GlamourStyle())
	m.spinner = spinner.New(
		spinner.WithSpinner(styles.ThinkingSpinner),
		spinner.WithStyle(theme.Spinner),
	)
	m.rendered = ""
	m.refresh(false)
}

// SetSize sets the panel's outer size.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.input.SetWidth(width - 2)

	// Composer frame is two rows, the status row one.
	vh := height - composerHeight - 2 - 1
	if vh < 3 {
		vh = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vh
	m.rendered = ""
	m.refresh(false)
}

// Focus gives the composer the keyboard.
func (m *Model) Focus() {
	m.focused = true
	if !m.view.Loading {
		m.input.Focus()
	}
}

// Blur releases the keyboard.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Keys() KeyMap { return m.keys }

// Input returns the composer text.
func (m Model) Input() string { return m.input.Value() }

// SetInput replaces the composer text.
func (m *Model) SetInput(s string) { m.input.SetValue(s) }

// SetView updates what the panel shows. The viewport follows new content
// when it was at the bottom or the conversation changed.
func (m *Model) SetView(v View) {
	switched := v.Conversation.ID != m.view.Conversation.ID
	wasLoading := m.view.Loading
	m.view = v

	switch {
	case v.Loading:
		m.input.Blur()
	case m.focused && wasLoading:
		m.input.Focus()
	}
	m.refresh(switched)
}

func (m *Model) refresh(forceBottom bool) {
	if m.theme == nil {
		return
	}
	follow := forceBottom || m.viewport.AtBottom() || m.rendered == ""

	content := m.renderConversation()
	if content == m.rendered {
		return
	}
	m.rendered = content
	m.viewport.SetContent(content)
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m Model) renderConversation() string {
	if !m.view.HasConversation || len(m.view.Conversation.Messages) == 0 {
		w := components.NewWelcome(m.theme)
		w.HasConversation = m.view.HasConversation
		w.HasAPIKey = m.view.HasAPIKey
		w.Width = m.width
		return w.View()
	}

	list := components.NewMessageList(m.theme, m.md)
	list.Messages = m.view.Conversation.Messages
	list.Width = m.width - 1
	list.FontSize = m.view.FontSize
	list.StreamingID = m.view.StreamingID
	return list.View()
}

// SpinnerTick starts the loading spinner.
func (m Model) SpinnerTick() tea.Cmd {
	return m.spinner.Tick
}
