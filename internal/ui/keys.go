// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global bindings. They are checked before the focused
// component sees a key.
type KeyMap struct {
	Quit         key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	New          key.Binding
	FocusSidebar key.Binding
	FocusPanel   key.Binding
	Dismiss      key.Binding
	Help         key.Binding
}

// DefaultKeyMap returns the default global bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous tab"),
		),
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new"),
		),
		FocusSidebar: key.NewBinding(
			key.WithKeys("ctrl+left", "alt+h"),
			key.WithHelp("C-←", "sidebar"),
		),
		FocusPanel: key.NewBinding(
			key.WithKeys("ctrl+right", "alt+l"),
			key.WithHelp("C-→", "panel"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss error"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
	}
}

// helpKeys joins the global bindings with the focused component's.
type helpKeys struct {
	global KeyMap
	local  help.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	out := []key.Binding{h.global.NextTab, h.global.New}
	if h.local != nil {
		out = append(out, h.local.ShortHelp()...)
	}
	return append(out, h.global.Help, h.global.Quit)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	g := h.global
	out := [][]key.Binding{
		{g.NextTab, g.PrevTab, g.New},
		{g.FocusSidebar, g.FocusPanel, g.Dismiss},
	}
	if h.local != nil {
		out = append(out, h.local.FullHelp()...)
	}
	return append(out, []key.Binding{g.Help, g.Quit})
}
