// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor bindings.
type KeyMap struct {
	Save       key.Binding
	Preview    key.Binding
	Language   key.Binding
	NextField  key.Binding
	Revert     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// DefaultKeyMap returns the default editor bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "preview"),
		),
		Language: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "language"),
		),
		NextField: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "name/content"),
		),
		Revert: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("C-z", "revert"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}

// ShortHelp returns the bindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Preview, k.Language, k.NextField}
}

// FullHelp returns all bindings in groups.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Revert},
		{k.Preview, k.Language, k.NextField},
		{k.ScrollUp, k.ScrollDown},
	}
}
