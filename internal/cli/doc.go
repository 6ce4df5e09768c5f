// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the geminipad command line.
//
// Usage:
//
//	geminipad                      Start the TUI
//	geminipad ask "prompt"         One-shot question, answer on stdout
//	geminipad chat                 Line-based chat with history
//	geminipad config path|show|init|get|set
//	geminipad export [--files]     Write conversations or files to disk
//	geminipad version
//
// Global flags:
//
//	--config PATH     Config file (default ~/.geminipad/config.toml)
//	--store KIND      Storage backend: json, sqlite or memory
//	--data-dir DIR    Where records are stored
//	--log-level LVL   debug, info, warn or error
//	--ephemeral       Keep everything in memory for this run
package cli
