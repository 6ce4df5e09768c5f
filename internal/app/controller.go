// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/geminipad/internal/gemini"
	"github.com/jeranaias/geminipad/internal/logger"
	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/storage"
)

// Controller owns State and keeps storage in step with it.
type Controller struct {
	state    State
	records  storage.Records
	gen      gemini.Generator
	inflight *Exchange
}

// New loads the three records and binds the generator when the stored
// settings carry a usable API key.
func New(records storage.Records, gen gemini.Generator) *Controller {
	c := &Controller{
		records: records,
		gen:     gen,
		state: State{
			Conversations: records.Conversations.Read(),
			Files:         records.Files.Read(),
			Settings:      records.Settings.Read().Normalize(),
			ActiveTab:     TabChat,
		},
	}
	if c.state.Conversations == nil {
		c.state.Conversations = []model.Conversation{}
	}
	if c.state.Files == nil {
		c.state.Files = []model.FileItem{}
	}

	logger.WithFields(map[string]any{
		"conversations": len(c.state.Conversations),
		"files":         len(c.state.Files),
	}).Infof("state loaded")

	if c.state.Settings.HasUsableAPIKey() {
		c.initGenerator()
	}
	return c
}

// State returns the current state. See State for the sharing rules.
func (c *Controller) State() State {
	return c.state
}

// Generator returns the generator the controller drives.
func (c *Controller) Generator() gemini.Generator {
	return c.gen
}

func (c *Controller) initGenerator() error {
	s := c.state.Settings
	if err := c.gen.Initialize(s.APIKey, string(s.Model)); err != nil {
		logger.WithError(err).Warnf("could not initialize gemini client")
		return err
	}
	return nil
}

// =============================================================================
// PERSISTENCE
// =============================================================================

func (c *Controller) persistConversations() {
	if err := c.records.Conversations.Write(c.state.Conversations); err != nil {
		c.saveFailed(err)
	}
}

func (c *Controller) persistFiles() {
	if err := c.records.Files.Write(c.state.Files); err != nil {
		c.saveFailed(err)
	}
}

func (c *Controller) persistSettings() {
	if err := c.records.Settings.Write(c.state.Settings); err != nil {
		c.saveFailed(err)
	}
}

func (c *Controller) saveFailed(err error) {
	logger.WithError(err).Errorf("persist state")
	c.state.Error = MsgSaveFailed
}

// =============================================================================
// NAVIGATION
// =============================================================================

// SetTab switches the visible panel.
func (c *Controller) SetTab(tab Tab) {
	c.state.ActiveTab = tab
}

// DismissError clears the error banner.
func (c *Controller) DismissError() {
	c.state.Error = ""
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

// NewConversation creates an empty conversation at the top of the list and
// selects it.
func (c *Controller) NewConversation() model.Conversation {
	conv := model.NewConversation(model.DefaultConversationTitle(len(c.state.Conversations) + 1))

	list := make([]model.Conversation, 0, len(c.state.Conversations)+1)
	list = append(list, conv)
	list = append(list, c.state.Conversations...)
	c.state.Conversations = list
	c.state.ActiveConversationID = conv.ID

	c.persistConversations()
	return conv
}

// SelectConversation makes id the active conversation.
func (c *Controller) SelectConversation(id string) error {
	if c.state.conversationIndex(id) < 0 {
		return fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	c.state.ActiveConversationID = id
	return nil
}

// DeleteConversation removes id. A reply still streaming into it is
// cancelled. Unknown ids are ignored.
func (c *Controller) DeleteConversation(id string) {
	i := c.state.conversationIndex(id)
	if i < 0 {
		return
	}
	if c.inflight != nil && c.inflight.ConversationID == id {
		c.CancelSend()
	}

	list := make([]model.Conversation, 0, len(c.state.Conversations)-1)
	list = append(list, c.state.Conversations[:i]...)
	list = append(list, c.state.Conversations[i+1:]...)
	c.state.Conversations = list
	if c.state.ActiveConversationID == id {
		c.state.ActiveConversationID = ""
	}

	c.persistConversations()
}

// replaceConversation swaps in conv for the entry with the same ID.
func (c *Controller) replaceConversation(conv model.Conversation) bool {
	i := c.state.conversationIndex(conv.ID)
	if i < 0 {
		return false
	}
	list := make([]model.Conversation, len(c.state.Conversations))
	copy(list, c.state.Conversations)
	list[i] = conv
	c.state.Conversations = list
	return true
}

// =============================================================================
// FILES
// =============================================================================

// NewFile creates an empty plain-text file at the top of the list, selects
// it and switches to the files tab.
func (c *Controller) NewFile() model.FileItem {
	f := model.NewFileItem(model.DefaultFileName(len(c.state.Files) + 1))

	list := make([]model.FileItem, 0, len(c.state.Files)+1)
	list = append(list, f)
	list = append(list, c.state.Files...)
	c.state.Files = list
	c.state.ActiveFileID = f.ID
	c.state.ActiveTab = TabFiles

	c.persistFiles()
	return f
}

// SelectFile makes id the active file.
func (c *Controller) SelectFile(id string) error {
	if c.state.fileIndex(id) < 0 {
		return fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	c.state.ActiveFileID = id
	return nil
}

// DeleteFile removes id. Unknown ids are ignored.
func (c *Controller) DeleteFile(id string) {
	i := c.state.fileIndex(id)
	if i < 0 {
		return
	}
	list := make([]model.FileItem, 0, len(c.state.Files)-1)
	list = append(list, c.state.Files[:i]...)
	list = append(list, c.state.Files[i+1:]...)
	c.state.Files = list
	if c.state.ActiveFileID == id {
		c.state.ActiveFileID = ""
	}

	c.persistFiles()
}

// updateActiveFile applies edit to a copy of the active file and stores it.
func (c *Controller) updateActiveFile(edit func(*model.FileItem)) error {
	i := c.state.fileIndex(c.state.ActiveFileID)
	if i < 0 {
		return ErrNoActiveFile
	}
	list := make([]model.FileItem, len(c.state.Files))
	copy(list, c.state.Files)
	edit(&list[i])
	c.state.Files = list

	c.persistFiles()
	return nil
}

// SaveFile stores new content for the active file.
func (c *Controller) SaveFile(content string) error {
	return c.updateActiveFile(func(f *model.FileItem) {
		f.Content = content
		f.UpdatedAt = time.Now()
	})
}

// UpdateFileName renames the active file. Surrounding whitespace is dropped.
func (c *Controller) UpdateFileName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		if c.state.fileIndex(c.state.ActiveFileID) < 0 {
			return ErrNoActiveFile
		}
		return ErrEmptyName
	}
	return c.updateActiveFile(func(f *model.FileItem) {
		f.Name = name
	})
}

// UpdateFileLanguage changes the language tag of the active file.
func (c *Controller) UpdateFileLanguage(lang model.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	return c.updateActiveFile(func(f *model.FileItem) {
		f.Language = lang
	})
}

// =============================================================================
// SETTINGS
// =============================================================================

// SaveSettings replaces the settings record and clears the error banner.
// With a usable key the generator is rebound to the new key and model; the
// returned error reports a failed rebind, the settings are saved regardless.
func (c *Controller) SaveSettings(s model.EditorSettings) error {
	c.state.Settings = s.Normalize()
	c.state.Error = ""
	c.persistSettings()

	if c.state.Settings.HasUsableAPIKey() {
		return c.initGenerator()
	}
	return nil
}
