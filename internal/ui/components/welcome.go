// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// Welcome is the chat panel's empty state.
type Welcome struct {
	// HasConversation is false when nothing is selected.
	HasConversation bool
	// HasAPIKey is false until a usable key is saved.
	HasAPIKey bool
	Width     int
	theme     *styles.Theme
}

// NewWelcome creates the empty-state view.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{Width: 80, theme: theme}
}

// View renders the welcome text.
func (w Welcome) View() string {
	lines := []string{w.theme.WelcomeTitle.Render("Welcome to " + AppName)}
	if w.HasConversation {
		lines = append(lines, "", "Ask Gemini anything. Replies render as markdown with highlighted code.")
	} else {
		lines = append(lines, "", "Press ctrl+n to start a conversation, or pick one from the sidebar.")
	}
	if !w.HasAPIKey {
		lines = append(lines, "Add your Gemini API key on the Settings tab before sending.")
	}
	return w.theme.Welcome.MaxWidth(w.Width).Render(strings.Join(lines, "\n"))
}
