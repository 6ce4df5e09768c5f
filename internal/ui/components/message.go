// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// TimestampFormat is the HH:MM clock shown next to each message.
const TimestampFormat = "15:04"

// StreamingCursor trails a reply that is still arriving.
const StreamingCursor = "_"

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// MessageBubble renders one message. User messages are plain text on the
// right; replies are markdown on the left.
type MessageBubble struct {
	Message   model.Message
	Width     int
	FontSize  int
	Streaming bool

	theme *styles.Theme
	md    *Markdown
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg model.Message, theme *styles.Theme, md *Markdown) *MessageBubble {
	return &MessageBubble{
		Message:  msg,
		Width:    80,
		FontSize: model.DefaultFontSize,
		theme:    theme,
		md:       md,
	}
}

// View renders the bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsUser() {
		return b.renderUser()
	}
	return b.renderAssistant()
}

func (b *MessageBubble) header(name lipgloss.Style) string {
	parts := []string{name.Render(b.Message.Role.DisplayName())}
	if !b.Message.Timestamp.IsZero() {
		parts = append(parts, b.theme.Timestamp.Render(b.Message.Timestamp.Format(TimestampFormat)))
	}
	return strings.Join(parts, " ")
}

func (b *MessageBubble) renderUser() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	// Bubble frame takes four columns; keep a quarter of the row free on the left.
	maxContent := b.Width*3/4 - 4
	if maxContent < 16 {
		maxContent = 16
	}
	contentWidth := lipgloss.Width(content)
	if contentWidth > maxContent {
		contentWidth = maxContent
	}

	bubble := b.theme.UserBubble.Width(contentWidth + 2).Render(content)
	block := lipgloss.JoinVertical(lipgloss.Right, b.header(b.theme.UserName), bubble)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, block)
}

func (b *MessageBubble) renderAssistant() string {
	width := WrapWidth(b.Width-4, b.FontSize)

	var body string
	switch {
	case b.Message.Content == "":
		body = b.theme.ThinkingText.Render("...")
	default:
		body = RenderContent(b.theme, b.md, b.Message.Content, width)
	}
	if b.Streaming {
		body += b.theme.Spinner.Render(StreamingCursor)
	}

	bubble := b.theme.AssistantBubble.Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, b.header(b.theme.AssistantName), bubble)
}

// =============================================================================
// MESSAGE LIST
// =============================================================================

// MessageList renders a conversation.
type MessageList struct {
	Messages []model.Message
	Width    int
	FontSize int
	// StreamingID marks the reply still arriving, if any.
	StreamingID string

	theme *styles.Theme
	md    *Markdown
}

// NewMessageList creates an empty list.
func NewMessageList(theme *styles.Theme, md *Markdown) *MessageList {
	return &MessageList{
		Width:    80,
		FontSize: model.DefaultFontSize,
		theme:    theme,
		md:       md,
	}
}

// View renders every message, one blank line apart.
func (ml *MessageList) View() string {
	bubbles := make([]string, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		b := NewMessageBubble(msg, ml.theme, ml.md)
		b.Width = ml.Width
		b.FontSize = ml.FontSize
		b.Streaming = ml.StreamingID != "" && msg.ID == ml.StreamingID
		bubbles = append(bubbles, b.View())
	}
	return strings.Join(bubbles, "\n\n")
}
