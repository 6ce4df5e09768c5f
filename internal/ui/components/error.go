// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "github.com/jeranaias/geminipad/internal/ui/styles"

// ErrorIndicator prefixes the banner so it reads without color.
const ErrorIndicator = "[X]"

// ErrorBanner is the one-line error shown under the header.
type ErrorBanner struct {
	Message string
	Hint    string
	Width   int
	theme   *styles.Theme
}

// NewErrorBanner creates a banner for msg.
func NewErrorBanner(theme *styles.Theme, msg string) *ErrorBanner {
	return &ErrorBanner{Message: msg, Hint: "esc to dismiss", Width: 80, theme: theme}
}

// View renders nothing when there is no message.
func (e *ErrorBanner) View() string {
	if e.Message == "" {
		return ""
	}
	text := ErrorIndicator + " " + e.Message
	if e.Hint != "" {
		text += "  (" + e.Hint + ")"
	}
	return e.theme.ErrorBanner.Width(e.Width).MaxWidth(e.Width).Render(text)
}
