// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock is one fenced block or a file preview.
type CodeBlock struct {
	Language    string
	Code        string
	LineNumbers bool
}

// NewCodeBlock creates a code block without line numbers.
func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{Language: language, Code: code}
}

// Render highlights the code and frames it, badge first, within width.
func (c CodeBlock) Render(theme *styles.Theme, width int) string {
	code := strings.TrimRight(c.Code, "\n")
	highlighted := Highlight(code, c.Language, theme.ChromaStyle(), theme.ColorProfile)

	if c.LineNumbers {
		lines := strings.Split(highlighted, "\n")
		gutter := lipgloss.NewStyle().
			Foreground(theme.Color(styles.TextMuted)).
			Width(len(strconv.Itoa(len(lines)))).
			Align(lipgloss.Right).
			MarginRight(1)
		for i, line := range lines {
			lines[i] = gutter.Render(strconv.Itoa(i+1)) + line
		}
		highlighted = strings.Join(lines, "\n")
	}

	body := highlighted
	if c.Language != "" {
		body = theme.CodeLangBadge.Render(c.Language) + "\n" + body
	}

	maxWidth := width
	if maxWidth < 20 {
		maxWidth = 20
	}
	return theme.CodeBlock.MaxWidth(maxWidth).Render(body)
}

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// Highlight colors code with chroma. An empty or unknown language is
// guessed from the code; the code is returned unchanged if formatting fails.
func Highlight(code, language, style string, profile termenv.Profile) string {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	s := chromaStyles.Get(style)
	if s == nil {
		s = chromaStyles.Fallback
	}

	formatter := formatters.Get(formatterName(profile))
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, s, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatterName(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI:
		return "terminal16"
	case termenv.Ascii:
		return "noop"
	default:
		return "terminal256"
	}
}

// =============================================================================
// FENCE PARSER
// =============================================================================

// Segment is a run of prose or one fenced code block.
type Segment struct {
	Code     bool
	Language string
	Text     string
}

// SplitFences cuts markdown into prose and fenced code segments. The
// language is the first word after the opening fence. A fence still open at
// the end (a reply mid-stream) is closed implicitly.
func SplitFences(text string) []Segment {
	var (
		out    []Segment
		buf    []string
		inCode bool
		lang   string
	)
	flush := func(code bool) {
		if len(buf) == 0 && !code {
			return
		}
		out = append(out, Segment{Code: code, Language: lang, Text: strings.Join(buf, "\n")})
		buf = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "```") {
			buf = append(buf, line)
			continue
		}
		if inCode {
			flush(true)
			inCode, lang = false, ""
			continue
		}
		flush(false)
		inCode = true
		lang = ""
		if fields := strings.Fields(strings.TrimPrefix(trimmed, "```")); len(fields) > 0 {
			lang = strings.ToLower(fields[0])
		}
	}
	if inCode {
		flush(true)
	} else {
		flush(false)
	}
	return out
}
