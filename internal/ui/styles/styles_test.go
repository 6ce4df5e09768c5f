// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/geminipad/internal/model"
)

func TestNewTheme(t *testing.T) {
	tests := []struct {
		name    model.Theme
		want    model.Theme
		dark    bool
		glamour string
		chroma  string
	}{
		{model.ThemeLight, model.ThemeLight, false, "light", "github"},
		{model.ThemeDark, model.ThemeDark, true, "dark", "monokai"},
		{"solarized", model.ThemeLight, false, "light", "github"},
		{"", model.ThemeLight, false, "light", "github"},
	}

	for _, tt := range tests {
		theme := NewTheme(tt.name)
		if theme.Name != tt.want {
			t.Errorf("NewTheme(%q).Name = %q, want %q", tt.name, theme.Name, tt.want)
		}
		if theme.IsDark != tt.dark {
			t.Errorf("NewTheme(%q).IsDark = %v, want %v", tt.name, theme.IsDark, tt.dark)
		}
		if got := theme.GlamourStyle(); got != tt.glamour {
			t.Errorf("GlamourStyle() = %q, want %q", got, tt.glamour)
		}
		if got := theme.ChromaStyle(); got != tt.chroma {
			t.Errorf("ChromaStyle() = %q, want %q", got, tt.chroma)
		}
	}
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewTheme(model.ThemeDark)

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"TabActive", theme.TabActive},
		{"ErrorBanner", theme.ErrorBanner},
		{"UserBubble", theme.UserBubble},
		{"AssistantBubble", theme.AssistantBubble},
		{"CodeBlock", theme.CodeBlock},
		{"Sidebar", theme.Sidebar},
	}

	for _, s := range styles {
		if rendered := s.style.Render("test"); rendered == "" {
			t.Errorf("%s style rendered empty", s.name)
		}
	}
}

func TestResolve(t *testing.T) {
	c := lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}

	if got := Resolve(c, false); got != lipgloss.Color("#FFFFFF") {
		t.Errorf("Resolve(light) = %v", got)
	}
	if got := Resolve(c, true); got != lipgloss.Color("#000000") {
		t.Errorf("Resolve(dark) = %v", got)
	}
	if got := NewTheme(model.ThemeDark).Color(c); got != lipgloss.Color("#000000") {
		t.Errorf("Theme.Color = %v", got)
	}
}

func TestThinkingSpinner(t *testing.T) {
	if len(ThinkingSpinner.Frames) == 0 {
		t.Fatal("ThinkingSpinner has no frames")
	}
	if ThinkingSpinner.FPS <= 0 {
		t.Errorf("ThinkingSpinner.FPS = %v", ThinkingSpinner.FPS)
	}
}
