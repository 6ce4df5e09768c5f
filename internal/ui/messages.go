// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/geminipad/internal/app"
	"github.com/jeranaias/geminipad/internal/config"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamTokenMsg delivers one reply fragment.
type StreamTokenMsg struct {
	Exchange *app.Exchange
	Token    string
}

// StreamCompleteMsg signals the end of a reply. Err is nil when the reply
// completed normally.
type StreamCompleteMsg struct {
	Exchange *app.Exchange
	Err      error
}

// waitForToken pulls the next fragment of ex.
func waitForToken(ex *app.Exchange) tea.Cmd {
	return func() tea.Msg {
		token, ok := ex.Next()
		if !ok {
			return StreamCompleteMsg{Exchange: ex, Err: ex.Err()}
		}
		return StreamTokenMsg{Exchange: ex, Token: token}
	}
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a config file change seen by config.Watch.
// Config is nil and Err set when the new file did not load.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
