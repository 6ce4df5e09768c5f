// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"time"

	"github.com/jeranaias/geminipad/internal/util"
)

// TitleWords is how many leading prompt words become a conversation title.
const TitleWords = 5

// Conversation is an ordered chat history with a title.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewConversation creates an empty conversation.
func NewConversation(title string) Conversation {
	now := time.Now()
	return Conversation{
		ID:        NewID(),
		Title:     title,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultConversationTitle is the title of the n-th conversation before
// one is derived from its first prompt.
func DefaultConversationTitle(n int) string {
	return fmt.Sprintf("Conversation %d", n)
}

// DeriveTitle builds a title from the first TitleWords words of a prompt,
// ending in "..." when the prompt is longer.
func DeriveTitle(prompt string) string {
	words, more := util.FirstWords(prompt, TitleWords)
	if more {
		return words + util.Ellipsis
	}
	return words
}

// Append adds a message at the end and bumps UpdatedAt.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// MessageIndex returns the index of the message with the given ID, or -1.
func (c *Conversation) MessageIndex(id string) int {
	for i := range c.Messages {
		if c.Messages[i].ID == id {
			return i
		}
	}
	return -1
}

// LastMessage returns the most recent message, if any.
func (c *Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Clone returns a deep copy that shares no message storage with c.
func (c Conversation) Clone() Conversation {
	out := c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}
