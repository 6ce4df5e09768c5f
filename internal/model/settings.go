// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// PlaceholderAPIKey marks settings that have no real key yet.
const PlaceholderAPIKey = "YOUR_API_KEY"

// Font size bounds enforced by the settings panel.
const (
	MinFontSize     = 12
	MaxFontSize     = 24
	DefaultFontSize = 14
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Themes returns the selectable themes.
func Themes() []Theme {
	return []Theme{ThemeLight, ThemeDark}
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ModelName identifies a Gemini model.
type ModelName string

const (
	ModelGeminiPro       ModelName = "gemini-pro"
	ModelGeminiProVision ModelName = "gemini-pro-vision"
)

// DefaultModel is used when settings name no model.
const DefaultModel = ModelGeminiPro

// Models returns the selectable models.
func Models() []ModelName {
	return []ModelName{ModelGeminiPro, ModelGeminiProVision}
}

// Valid reports whether m is a known model.
func (m ModelName) Valid() bool {
	return m == ModelGeminiPro || m == ModelGeminiProVision
}

// EditorSettings is the single, process-wide settings record.
type EditorSettings struct {
	Theme    Theme     `json:"theme"`
	FontSize int       `json:"fontSize"`
	APIKey   string    `json:"apiKey"`
	Model    ModelName `json:"model"`
}

// DefaultSettings returns the settings used before anything is saved.
// apiKey is the externally supplied initial key and may be empty.
func DefaultSettings(apiKey string) EditorSettings {
	return EditorSettings{
		Theme:    ThemeLight,
		FontSize: DefaultFontSize,
		APIKey:   apiKey,
		Model:    DefaultModel,
	}
}

// Normalize clamps the font size and replaces unknown enum values with
// defaults.
func (s EditorSettings) Normalize() EditorSettings {
	s.FontSize = ClampFontSize(s.FontSize)
	if !s.Theme.Valid() {
		s.Theme = ThemeLight
	}
	if !s.Model.Valid() {
		s.Model = DefaultModel
	}
	return s
}

// HasUsableAPIKey reports whether the settings carry a real key.
func (s EditorSettings) HasUsableAPIKey() bool {
	return HasUsableAPIKey(s.APIKey)
}

// HasUsableAPIKey reports whether key is non-blank and not the placeholder.
func HasUsableAPIKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderAPIKey
}

// ClampFontSize bounds size to [MinFontSize, MaxFontSize]. Zero means unset
// and maps to DefaultFontSize.
func ClampFontSize(size int) int {
	switch {
	case size == 0:
		return DefaultFontSize
	case size < MinFontSize:
		return MinFontSize
	case size > MaxFontSize:
		return MaxFontSize
	default:
		return size
	}
}
