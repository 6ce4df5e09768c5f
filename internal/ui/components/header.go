// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/geminipad/internal/app"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// AppName is shown in the header.
const AppName = "geminipad"

// Header is the title bar: brand on the left, tabs after it.
type Header struct {
	Title  string
	Active app.Tab
	Width  int
	theme  *styles.Theme
}

// NewHeader creates a header on the chat tab.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:  AppName,
		Active: app.TabChat,
		Width:  80,
		theme:  theme,
	}
}

// View renders the header across Width.
func (h *Header) View() string {
	tabs := make([]string, 0, len(app.Tabs()))
	for _, tab := range app.Tabs() {
		style := h.theme.Tab
		if tab == h.Active {
			style = h.theme.TabActive
		}
		tabs = append(tabs, style.Render(tab.Label()))
	}

	line := h.theme.HeaderBrand.Render(h.Title) + "  " + strings.Join(tabs, " ")
	return h.theme.Header.Width(h.Width).MaxWidth(h.Width).Render(
		lipgloss.NewStyle().MaxWidth(h.Width - 2).Render(line),
	)
}
