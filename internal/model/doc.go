// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the persisted data types of geminipad.
//
// # Key Types
//
//   - Conversation: a titled, append-only sequence of chat messages
//   - Message: one user prompt or assistant reply
//   - FileItem: a named text/code document with a language tag
//   - EditorSettings: theme, font size, API key and model selection
//   - Language, Theme, ModelName: the fixed enumerations the UI cycles through
//
// All types serialize to JSON with camelCase field names; they are the exact
// shape of the records kept by the storage package.
//
//	conv := model.NewConversation(model.DefaultConversationTitle(1))
//	conv.Append(model.NewMessage(model.RoleUser, "hello"))
package model
