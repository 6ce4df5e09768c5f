// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/geminipad/internal/logger"
	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// minWrap is the narrowest markdown wrap width.
const minWrap = 20

// Markdown renders markdown with glamour. The renderer is rebuilt only when
// the wrap width changes.
type Markdown struct {
	mu    sync.Mutex
	style string
	width int
	r     *glamour.TermRenderer
}

// NewMarkdown creates a renderer for a glamour standard style ("dark",
// "light").
func NewMarkdown(style string) *Markdown {
	return &Markdown{style: style}
}

// Style returns the glamour style name.
func (m *Markdown) Style() string {
	return m.style
}

// Render renders content wrapped at width. Content is returned as is when
// glamour fails.
func (m *Markdown) Render(content string, width int) string {
	if width < minWrap {
		width = minWrap
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.r == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logger.WithError(err).Warnf("markdown renderer unavailable")
			return content
		}
		m.r, m.width = r, width
	}

	out, err := m.r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// RenderContent renders a reply: prose through md, fenced code blocks
// through chroma keyed by the fence's language tag.
func RenderContent(theme *styles.Theme, md *Markdown, content string, width int) string {
	segments := SplitFences(content)
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Code {
			parts = append(parts, NewCodeBlock(seg.Language, seg.Text).Render(theme, width))
			continue
		}
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		parts = append(parts, md.Render(seg.Text, width))
	}
	return strings.Join(parts, "\n")
}

// WrapWidth narrows width for larger font sizes: two columns per point
// above the minimum.
func WrapWidth(width, fontSize int) int {
	fontSize = model.ClampFontSize(fontSize)
	w := width - 2*(fontSize-model.MinFontSize)
	if w < minWrap {
		return minWrap
	}
	return w
}

// RenderFile previews a file: markdown through glamour, everything else
// highlighted with line numbers.
func RenderFile(theme *styles.Theme, md *Markdown, f model.FileItem, width int) string {
	if f.Language == model.LangMarkdown {
		return md.Render(f.Content, width)
	}
	cb := NewCodeBlock(string(f.Language), f.Content)
	cb.LineNumbers = true
	return cb.Render(theme, width)
}
