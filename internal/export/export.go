// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/util"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format names an export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat maps a flag value to a Format. "md" is accepted for Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown export format %q (want markdown or json)", s)
}

// ErrEmptyConversation is returned when exporting a conversation with no messages.
var ErrEmptyConversation = errors.New("conversation has no messages")

// Exporter converts a conversation to a document.
type Exporter interface {
	Export(conv model.Conversation) ([]byte, error)
	FileExtension() string
}

// Options controls export output.
type Options struct {
	// OutputDir is created if missing.
	OutputDir string

	// IncludeTimestamps adds the send time to each message heading.
	IncludeTimestamps bool

	// Now stamps the export; time.Now when nil.
	Now func() time.Time
}

// DefaultOptions exports to the working directory with timestamps.
func DefaultOptions() *Options {
	return &Options{OutputDir: ".", IncludeTimestamps: true}
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// New returns the exporter for format.
func New(format Format, opts *Options) (Exporter, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	switch format {
	case FormatMarkdown:
		return NewMarkdownExporter(opts), nil
	case FormatJSON:
		return NewJSONExporter(opts), nil
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// =============================================================================
// WRITING
// =============================================================================

// ToFile exports conv into opts.OutputDir and returns the written path. The
// file name is built from the title and the export time.
func ToFile(conv model.Conversation, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("conversation_%s_%s%s",
		sanitizeFilename(conv.Title, "conversation"),
		opts.now().Format("20060102_150405"),
		exporter.FileExtension(),
	)
	path := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// WriteFileItem writes f's content to dir under its own name. A name with
// no extension gets the one matching its language.
func WriteFileItem(f model.FileItem, dir string) (string, error) {
	name := sanitizeFilename(f.Name, "file")
	if filepath.Ext(name) == "" {
		name += Extension(f.Language)
	}
	path := filepath.Join(dir, name)
	if err := util.AtomicWriteFile(path, []byte(f.Content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", f.Name, err)
	}
	return path, nil
}

var extensions = map[model.Language]string{
	model.LangJavaScript: ".js",
	model.LangTypeScript: ".ts",
	model.LangPython:     ".py",
	model.LangJava:       ".java",
	model.LangHTML:       ".html",
	model.LangCSS:        ".css",
	model.LangMarkdown:   ".md",
	model.LangJSON:       ".json",
	model.LangText:       ".txt",
}

// Extension returns the usual file extension for lang.
func Extension(lang model.Language) string {
	if ext, ok := extensions[lang]; ok {
		return ext
	}
	return ".txt"
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

const maxFilenameRunes = 50

// sanitizeFilename replaces characters that are invalid in file names on
// any platform. fallback is used when nothing usable remains.
func sanitizeFilename(s, fallback string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) > maxFilenameRunes {
		runes = runes[:maxFilenameRunes]
	}

	var b strings.Builder
	for _, r := range runes {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('-')
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		case r < 32 || r == 127:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}

	out := strings.Trim(b.String(), ".")
	if out == "" {
		return fallback
	}
	return out
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
