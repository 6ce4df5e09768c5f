// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by geminipad packages.
//
// File Operations:
//   - AtomicWriteFile: crash-safe replace of a file (temp + fsync + rename)
//   - WriteJSON: indent-marshal a value and write it atomically
//
// Text:
//   - Truncate: display-width aware truncation with an ellipsis
//   - FirstWords: leading whitespace-separated words of a string
//   - PadRight: pad to a display width
//
//	err := util.WriteJSON(path, records, 0600)
//	label := util.Truncate(title, 24)
package util
