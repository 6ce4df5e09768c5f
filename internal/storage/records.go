// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import "github.com/jeranaias/geminipad/internal/model"

// Record keys.
const (
	KeyConversations = "conversations"
	KeyFiles         = "files"
	KeySettings      = "settings"
)

// Records groups the three bindings the application persists.
type Records struct {
	Conversations *Binding[[]model.Conversation]
	Files         *Binding[[]model.FileItem]
	Settings      *Binding[model.EditorSettings]
}

// NewRecords binds the application records on backend. defaults is the
// settings record used until one has been saved.
func NewRecords(backend Backend, defaults model.EditorSettings) Records {
	return Records{
		Conversations: BindFunc(backend, KeyConversations, func() []model.Conversation {
			return []model.Conversation{}
		}),
		Files: BindFunc(backend, KeyFiles, func() []model.FileItem {
			return []model.FileItem{}
		}),
		Settings: Bind(backend, KeySettings, defaults),
	}
}
