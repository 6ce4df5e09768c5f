// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/geminipad/internal/app"
	"github.com/jeranaias/geminipad/internal/gemini"
	"github.com/jeranaias/geminipad/internal/ui/chat"
	"github.com/jeranaias/geminipad/internal/ui/components"
	"github.com/jeranaias/geminipad/internal/ui/editor"
	"github.com/jeranaias/geminipad/internal/ui/settings"
	"github.com/jeranaias/geminipad/internal/ui/sidebar"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// SidebarWidth is the sidebar's column count, border included.
const SidebarWidth = 28

// Focus is the component receiving keys.
type Focus int

const (
	FocusPanel Focus = iota
	FocusSidebar
)

// Model is the root bubbletea model.
type Model struct {
	ctx  context.Context
	ctrl *app.Controller

	theme *styles.Theme
	keys  KeyMap
	help  help.Model

	sidebar  sidebar.Model
	chat     chat.Model
	editor   editor.Model
	settings settings.Model

	focus Focus
	// status is a one-off note for the status bar, cleared on the next key.
	status string

	width    int
	height   int
	quitting bool

	// Last body size handed to the components.
	bodyWidth  int
	bodyHeight int
}

// New creates the root model. ctx bounds every reply stream.
func New(ctx context.Context, ctrl *app.Controller) Model {
	theme := styles.NewTheme(ctrl.State().Settings.Theme)

	h := help.New()
	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     h,
		sidebar:  sidebar.New(theme),
		chat:     chat.New(theme),
		editor:   editor.New(theme),
		settings: settings.New(theme),
		width:    80,
		height:   24,
	}
	m.applyHelpStyles()
	m.sync()
	return m
}

// Init sets the window title.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(components.AppName)
}

// Controller returns the application controller.
func (m Model) Controller() *app.Controller { return m.ctrl }

// Focus returns the component receiving keys.
func (m Model) Focus() Focus { return m.focus }

// Status returns the status bar note.
func (m Model) Status() string { return m.status }

func (m *Model) applyHelpStyles() {
	m.help.Styles.ShortKey = m.theme.HelpKey
	m.help.Styles.ShortDesc = m.theme.HelpDesc
	m.help.Styles.ShortSeparator = m.theme.Muted
	m.help.Styles.FullKey = m.theme.HelpKey
	m.help.Styles.FullDesc = m.theme.HelpDesc
	m.help.Styles.FullSeparator = m.theme.Muted
	m.help.Styles.Ellipsis = m.theme.Muted
}

// setTheme rebuilds the styles for name and hands them to every component.
func (m *Model) setTheme(theme *styles.Theme) {
	m.theme = theme
	m.sidebar.SetTheme(theme)
	m.chat.SetTheme(theme)
	m.editor.SetTheme(theme)
	m.settings.SetTheme(theme)
	m.applyHelpStyles()
}

// sync pushes the controller state into every component.
func (m *Model) sync() {
	st := m.ctrl.State()

	if st.Settings.Theme != m.theme.Name {
		m.setTheme(styles.NewTheme(st.Settings.Theme))
	}

	switch st.ActiveTab {
	case app.TabChat:
		m.sidebar.SetConversations(st.Conversations, st.ActiveConversationID)
	case app.TabFiles:
		m.sidebar.SetFiles(st.Files, st.ActiveFileID)
	default:
		m.sidebar.Clear()
	}

	conv, hasConv := st.ActiveConversation()
	view := chat.View{
		Conversation:    conv,
		HasConversation: hasConv,
		Loading:         st.Loading,
		HasAPIKey:       st.Settings.HasUsableAPIKey(),
		FontSize:        st.Settings.FontSize,
	}
	if ex := m.ctrl.Inflight(); ex != nil && ex.ConversationID == conv.ID {
		view.StreamingID = ex.AssistantMessageID()
	}
	m.chat.SetView(view)

	file, hasFile := st.ActiveFile()
	m.editor.SetFontSize(st.Settings.FontSize)
	m.editor.SetFile(file, hasFile)

	m.settings.SetSettings(st.Settings)
	m.settings.SetBinding(m.binding())

	m.layout()
	m.applyFocus()
}

// binding describes the key the client is bound to, never the key itself.
func (m Model) binding() string {
	if !m.ctrl.Generator().Initialized() {
		return gemini.MaskKey("")
	}
	return gemini.MaskKey(strings.TrimSpace(m.ctrl.State().Settings.APIKey))
}

func (m *Model) applyFocus() {
	tab := m.ctrl.State().ActiveTab
	if tab == app.TabSettings {
		m.focus = FocusPanel
	}

	m.sidebar.Blur()
	m.chat.Blur()
	m.editor.Blur()
	m.settings.Blur()

	if m.focus == FocusSidebar {
		m.sidebar.Focus()
		return
	}
	switch tab {
	case app.TabChat:
		m.chat.Focus()
	case app.TabFiles:
		m.editor.Focus()
	case app.TabSettings:
		m.settings.Focus()
	}
}

// layout sizes the components to the window.
func (m *Model) layout() {
	used := lipgloss.Height(m.headerView()) + 1 + lipgloss.Height(m.helpView())
	if banner := m.bannerView(); banner != "" {
		used += lipgloss.Height(banner)
	}
	bodyHeight := m.height - used
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	panelWidth := m.width - SidebarWidth - 1
	if panelWidth < 20 {
		panelWidth = 20
	}
	m.help.Width = m.width
	if panelWidth == m.bodyWidth && bodyHeight == m.bodyHeight {
		return
	}
	m.bodyWidth, m.bodyHeight = panelWidth, bodyHeight
	m.sidebar.SetSize(SidebarWidth, bodyHeight)
	m.chat.SetSize(panelWidth, bodyHeight)
	m.editor.SetSize(panelWidth, bodyHeight)
	m.settings.SetSize(panelWidth, bodyHeight)
}

// localKeys returns the focused component's bindings for the help line.
func (m Model) localKeys() help.KeyMap {
	if m.focus == FocusSidebar {
		return m.sidebar.Keys()
	}
	switch m.ctrl.State().ActiveTab {
	case app.TabChat:
		return m.chat.Keys()
	case app.TabFiles:
		return m.editor.Keys()
	case app.TabSettings:
		return m.settings.Keys()
	}
	return nil
}
