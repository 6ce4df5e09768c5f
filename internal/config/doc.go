// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads geminipad's TOML configuration.
//
// Configuration lives in ~/.geminipad/config.toml (GEMINIPAD_HOME moves the
// whole directory). A missing file is not an error: defaults apply.
// Environment variables override the file:
//
//	GEMINI_API_KEY        initial API key for the settings record
//	GEMINIPAD_MODEL       default model
//	GEMINIPAD_BASE_URL    API endpoint
//	GEMINIPAD_STORE       json, sqlite or memory
//	GEMINIPAD_DATA_DIR    where records are kept
//	GEMINIPAD_LOG_LEVEL   debug, info, warn, error
//
// The API key in config only seeds the settings record the first time the
// application runs; after that the Settings panel owns it.
//
//	cfg, err := config.Load("")
//	if err != nil { ... }
//	fmt.Println(cfg.Storage.Backend)
package config
