// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/geminipad/internal/ui/styles"
	"github.com/jeranaias/geminipad/internal/util"
)

// StatusBar is the bottom line: Left flush left, Right flush right. Left is
// truncated first when both do not fit.
type StatusBar struct {
	Left  string
	Right string
	Width int
	theme *styles.Theme
}

// NewStatusBar creates an empty status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// View renders the bar.
func (s *StatusBar) View() string {
	inner := s.Width - 2
	if inner < 1 {
		return ""
	}

	right := util.Truncate(s.Right, inner)
	room := inner - lipgloss.Width(right) - 1
	left := ""
	if room > 0 {
		left = util.Truncate(s.Left, room)
	}
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}
