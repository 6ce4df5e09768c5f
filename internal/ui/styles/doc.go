// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the geminipad TUI.

# Color System (colors.go)

The palette is a set of lipgloss.AdaptiveColor tokens. Unlike a terminal
driven AdaptiveColor, geminipad resolves each token against the theme the
user picked in Settings, so a light theme stays light on a dark terminal.

	Purple  - assistant messages, selection
	Cyan    - brand, user highlights, keys in the help line
	Emerald - saved state
	Amber   - unsaved marker, warnings
	Rose    - error banner

# Theme System (theme.go)

	theme := styles.NewTheme(model.ThemeDark)
	theme.Header.Render("geminipad")
	theme.GlamourStyle() // "dark"
	theme.ChromaStyle()  // "monokai"

DetectTheme picks the default theme from the terminal background.
*/
package styles
