// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/geminipad/internal/model"
)

// Theme holds every styled component for one light/dark choice.
type Theme struct {
	Name         model.Theme
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// FRAME
	// ==========================================================================

	App         lipgloss.Style
	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	ErrorBanner lipgloss.Style
	StatusBar   lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style

	// ==========================================================================
	// SIDEBAR
	// ==========================================================================

	Sidebar           lipgloss.Style
	SidebarTitle      lipgloss.Style
	SidebarItem       lipgloss.Style
	SidebarItemActive lipgloss.Style
	SidebarCursor     lipgloss.Style
	SidebarMeta       lipgloss.Style

	// ==========================================================================
	// CHAT
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	UserName        lipgloss.Style
	AssistantName   lipgloss.Style
	Timestamp       lipgloss.Style
	Composer        lipgloss.Style
	ComposerFocused lipgloss.Style
	Spinner         lipgloss.Style
	ThinkingText    lipgloss.Style
	Welcome         lipgloss.Style
	WelcomeTitle    lipgloss.Style

	// ==========================================================================
	// CODE
	// ==========================================================================

	CodeBlock     lipgloss.Style
	CodeLangBadge lipgloss.Style
	InlineCode    lipgloss.Style

	// ==========================================================================
	// EDITOR AND SETTINGS
	// ==========================================================================

	FieldLabel   lipgloss.Style
	FieldValue   lipgloss.Style
	FieldFocused lipgloss.Style
	Unsaved      lipgloss.Style
	Saved        lipgloss.Style
	Muted        lipgloss.Style
	Pane         lipgloss.Style
}

// DetectTheme picks the theme matching the terminal background.
func DetectTheme() model.Theme {
	if termenv.HasDarkBackground() {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// NewTheme builds the styles for name. Unknown names fall back to light.
func NewTheme(name model.Theme) *Theme {
	if !name.Valid() {
		name = model.ThemeLight
	}
	t := &Theme{
		Name:         name,
		IsDark:       name == model.ThemeDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// GlamourStyle names the glamour standard style for markdown.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// ChromaStyle names the chroma style for code.
func (t *Theme) ChromaStyle() string {
	if t.IsDark {
		return "monokai"
	}
	return "github"
}

// Color resolves a palette token for this theme.
func (t *Theme) Color(c lipgloss.AdaptiveColor) lipgloss.Color {
	return Resolve(c, t.IsDark)
}

func (t *Theme) initStyles() {
	c := t.Color

	t.App = lipgloss.NewStyle().
		Foreground(c(TextPrimary))

	// Frame
	t.Header = lipgloss.NewStyle().
		Background(c(SurfaceDim)).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Cyan))

	t.Tab = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Padding(0, 1)

	t.TabActive = lipgloss.NewStyle().
		Foreground(c(TextInverse)).
		Background(c(Purple)).
		Bold(true).
		Padding(0, 1)

	t.ErrorBanner = lipgloss.NewStyle().
		Foreground(c(Rose)).
		Background(c(RoseDeep)).
		Bold(true).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Background(c(SurfaceDim)).
		Padding(0, 1)

	t.HelpKey = lipgloss.NewStyle().
		Foreground(c(Cyan)).
		Bold(true)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(c(TextMuted))

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(c(Overlay)).
		PaddingRight(1)

	t.SidebarTitle = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Bold(true).
		MarginTop(1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(c(TextPrimary))

	t.SidebarItemActive = lipgloss.NewStyle().
		Foreground(c(Purple)).
		Bold(true)

	t.SidebarCursor = lipgloss.NewStyle().
		Foreground(c(TextInverse)).
		Background(c(OverlayDim))

	t.SidebarMeta = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Italic(true)

	// Chat
	t.UserBubble = lipgloss.NewStyle().
		Foreground(c(UserBubbleFg)).
		Background(c(UserBubbleBg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(UserBubbleBorder)).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(c(AssistantBubbleFg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(AssistantBubbleBorder)).
		Padding(0, 1)

	t.UserName = lipgloss.NewStyle().
		Foreground(c(Cyan)).
		Bold(true)

	t.AssistantName = lipgloss.NewStyle().
		Foreground(c(Purple)).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(c(TextMuted))

	t.Composer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Overlay))

	t.ComposerFocused = t.Composer.
		BorderForeground(c(Purple))

	t.Spinner = lipgloss.NewStyle().
		Foreground(c(Purple))

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Italic(true)

	t.Welcome = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Padding(1, 2)

	t.WelcomeTitle = lipgloss.NewStyle().
		Foreground(c(Cyan)).
		Bold(true)

	// Code
	t.CodeBlock = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Overlay)).
		Padding(0, 1)

	t.CodeLangBadge = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Background(c(Overlay)).
		Padding(0, 1).
		Bold(true)

	t.InlineCode = lipgloss.NewStyle().
		Foreground(c(InlineCodeFg)).
		Background(c(SurfaceDim))

	// Editor and settings
	t.FieldLabel = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Width(12)

	t.FieldValue = lipgloss.NewStyle().
		Foreground(c(TextPrimary))

	t.FieldFocused = lipgloss.NewStyle().
		Foreground(c(Purple)).
		Bold(true)

	t.Unsaved = lipgloss.NewStyle().
		Foreground(c(Amber)).
		Bold(true)

	t.Saved = lipgloss.NewStyle().
		Foreground(c(Emerald))

	t.Muted = lipgloss.NewStyle().
		Foreground(c(TextMuted))

	t.Pane = lipgloss.NewStyle().
		PaddingLeft(1)
}
