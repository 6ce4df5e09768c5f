// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"

	"github.com/jeranaias/geminipad/internal/model"
)

// Tab is the panel shown next to the sidebar.
type Tab string

const (
	TabChat     Tab = "chat"
	TabFiles    Tab = "files"
	TabSettings Tab = "settings"
)

// Tabs returns the tabs in display order.
func Tabs() []Tab {
	return []Tab{TabChat, TabFiles, TabSettings}
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	switch t {
	case TabChat:
		return TabFiles
	case TabFiles:
		return TabSettings
	default:
		return TabChat
	}
}

// Prev returns the tab before t, wrapping around.
func (t Tab) Prev() Tab {
	switch t {
	case TabSettings:
		return TabFiles
	case TabFiles:
		return TabChat
	default:
		return TabSettings
	}
}

// Label is the tab title.
func (t Tab) Label() string {
	switch t {
	case TabChat:
		return "Chat"
	case TabFiles:
		return "Files"
	case TabSettings:
		return "Settings"
	}
	return string(t)
}

// User-visible banner texts.
const (
	MsgMissingAPIKey    = "Please add your Gemini API key in Settings."
	MsgGenerationFailed = "Something went wrong while talking to Gemini."
	MsgSaveFailed       = "Could not save your changes to disk."
)

var (
	// ErrNoActiveConversation is returned by BeginSend without a selection.
	ErrNoActiveConversation = errors.New("no active conversation")

	// ErrNoActiveFile is returned by file edits without a selection.
	ErrNoActiveFile = errors.New("no active file")

	// ErrMissingAPIKey is returned by BeginSend when no usable key is set.
	ErrMissingAPIKey = errors.New("missing Gemini API key")

	// ErrBusy is returned by BeginSend while a reply is streaming.
	ErrBusy = errors.New("a reply is already in progress")

	// ErrEmptyPrompt is returned by BeginSend for a blank prompt.
	ErrEmptyPrompt = errors.New("empty prompt")

	// ErrEmptyName is returned by UpdateFileName for a blank name.
	ErrEmptyName = errors.New("file name cannot be empty")

	// ErrInvalidLanguage is returned by UpdateFileLanguage.
	ErrInvalidLanguage = errors.New("unsupported language")

	// ErrNotFound is returned when selecting an unknown id.
	ErrNotFound = errors.New("not found")
)

// State is the complete application state. Slices are replaced, never
// modified in place, so a State value handed out by Controller.State stays
// consistent; callers must not modify it.
type State struct {
	Conversations []model.Conversation
	Files         []model.FileItem
	Settings      model.EditorSettings

	ActiveConversationID string
	ActiveFileID         string
	ActiveTab            Tab

	Loading bool
	Error   string
}

// ActiveConversation returns the selected conversation.
func (s State) ActiveConversation() (model.Conversation, bool) {
	if i := s.conversationIndex(s.ActiveConversationID); i >= 0 {
		return s.Conversations[i], true
	}
	return model.Conversation{}, false
}

// ActiveFile returns the selected file.
func (s State) ActiveFile() (model.FileItem, bool) {
	if i := s.fileIndex(s.ActiveFileID); i >= 0 {
		return s.Files[i], true
	}
	return model.FileItem{}, false
}

func (s State) conversationIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Conversations {
		if s.Conversations[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) fileIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Files {
		if s.Files[i].ID == id {
			return i
		}
	}
	return -1
}
