// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes stored conversations and files to disk.
//
// # Key Types
//
//   - Format: export format enumeration (Markdown, JSON)
//   - Exporter: converts one conversation to bytes
//   - Options: output directory and rendering switches
//
// # Usage
//
//	exporter, _ := export.New(export.FormatMarkdown, nil)
//	path, err := export.ToFile(conv, exporter, &export.Options{OutputDir: "."})
//
// Files are written with their stored content untouched:
//
//	path, err := export.WriteFileItem(file, ".")
package export
