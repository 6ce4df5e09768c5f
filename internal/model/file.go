// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// LANGUAGE
// =============================================================================

// Language tags a FileItem for highlighting and preview.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangMarkdown   Language = "markdown"
	LangJSON       Language = "json"
	LangText       Language = "text"
)

var languages = []Language{
	LangJavaScript, LangTypeScript, LangPython, LangJava, LangHTML,
	LangCSS, LangMarkdown, LangJSON, LangText,
}

var languageLabels = map[Language]string{
	LangJavaScript: "JavaScript",
	LangTypeScript: "TypeScript",
	LangPython:     "Python",
	LangJava:       "Java",
	LangHTML:       "HTML",
	LangCSS:        "CSS",
	LangMarkdown:   "Markdown",
	LangJSON:       "JSON",
	LangText:       "Plain Text",
}

// Languages returns every supported language in selector order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	_, ok := languageLabels[l]
	return ok
}

// Label is the name shown in the language selector.
func (l Language) Label() string {
	if label, ok := languageLabels[l]; ok {
		return label
	}
	return string(l)
}

// Next returns the language after l in selector order, wrapping around.
func (l Language) Next() Language {
	for i, lang := range languages {
		if lang == l {
			return languages[(i+1)%len(languages)]
		}
	}
	return languages[0]
}

// ParseLanguage maps a tag (case-insensitive) to a Language.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown language %q", s)
	}
	return l, nil
}

// =============================================================================
// FILE ITEM
// =============================================================================

// FileItem is a document edited in the file editor.
type FileItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewFileItem creates an empty plain-text file.
func NewFileItem(name string) FileItem {
	now := time.Now()
	return FileItem{
		ID:        NewID(),
		Name:      name,
		Language:  LangText,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultFileName is the name given to the n-th new file.
func DefaultFileName(n int) string {
	return fmt.Sprintf("file-%d.txt", n)
}
