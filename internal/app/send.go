// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/geminipad/internal/gemini"
	"github.com/jeranaias/geminipad/internal/logger"
	"github.com/jeranaias/geminipad/internal/model"
)

// Exchange is one prompt and the reply streaming back for it.
type Exchange struct {
	// ConversationID is where the reply is written, whatever the selection
	// is by the time fragments arrive.
	ConversationID string
	Prompt         string
	// UserMessageID is the prompt's message.
	UserMessageID string

	first       bool // the conversation was empty before this prompt
	assistantID string
	buf         strings.Builder

	stream gemini.FragmentStream
	cancel context.CancelFunc

	mu       sync.Mutex
	err      error
	canceled bool
	finished bool
}

// Next pulls the next fragment from the generator. It blocks on the network
// and touches no controller state, so it may run on any goroutine.
func (ex *Exchange) Next() (string, bool) {
	if ex.stream.Next() {
		return ex.stream.Fragment(), true
	}
	ex.mu.Lock()
	ex.err = ex.stream.Err()
	ex.mu.Unlock()
	return "", false
}

// Err is the error that ended the stream, once Next has returned false.
func (ex *Exchange) Err() error {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	return ex.err
}

// Text is the reply received so far.
func (ex *Exchange) Text() string {
	return ex.buf.String()
}

// AssistantMessageID is the reply's message, empty before the first
// fragment.
func (ex *Exchange) AssistantMessageID() string {
	return ex.assistantID
}

// Canceled reports whether CancelSend stopped this exchange.
func (ex *Exchange) Canceled() bool {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	return ex.canceled
}

func (ex *Exchange) stop() {
	ex.mu.Lock()
	ex.canceled = true
	ex.mu.Unlock()
	ex.cancel()
}

// Inflight returns the exchange currently streaming, if any.
func (c *Controller) Inflight() *Exchange {
	return c.inflight
}

// BeginSend appends prompt as a user message to the active conversation,
// sets Loading and opens the reply stream. No request is made until the
// exchange's Next is called.
//
// Without a usable API key the error banner is set, the settings tab is
// shown and nothing else changes.
func (c *Controller) BeginSend(ctx context.Context, prompt string) (*Exchange, error) {
	i := c.state.conversationIndex(c.state.ActiveConversationID)
	if i < 0 {
		return nil, ErrNoActiveConversation
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if c.inflight != nil {
		return nil, ErrBusy
	}
	if !c.state.Settings.HasUsableAPIKey() {
		c.state.Error = MsgMissingAPIKey
		c.state.ActiveTab = TabSettings
		return nil, ErrMissingAPIKey
	}

	conv := c.state.Conversations[i].Clone()
	first := len(conv.Messages) == 0
	userMsg := model.NewMessage(model.RoleUser, prompt)
	conv.Append(userMsg)
	c.replaceConversation(conv)

	c.state.Loading = true
	c.state.Error = ""
	c.persistConversations()

	streamCtx, cancel := context.WithCancel(ctx)
	ex := &Exchange{
		ConversationID: conv.ID,
		Prompt:         prompt,
		UserMessageID:  userMsg.ID,
		first:          first,
		stream:         c.gen.Stream(streamCtx, prompt),
		cancel:         cancel,
	}
	c.inflight = ex

	logger.WithField("conversation", conv.ID).Debugf("send started")
	return ex, nil
}

// ApplyFragment adds text to the reply. The first fragment creates the
// assistant message; later ones replace its content with everything
// received so far. The conversation list is persisted every time.
func (c *Controller) ApplyFragment(ex *Exchange, text string) {
	if ex == nil || ex.finished {
		return
	}
	ex.buf.WriteString(text)

	i := c.state.conversationIndex(ex.ConversationID)
	if i < 0 {
		// Deleted while streaming; keep buffering, nowhere to write.
		return
	}
	conv := c.state.Conversations[i].Clone()

	if j := conv.MessageIndex(ex.assistantID); ex.assistantID != "" && j >= 0 {
		conv.Messages[j].Content = ex.buf.String()
		conv.UpdatedAt = time.Now()
	} else {
		reply := model.NewMessage(model.RoleAssistant, ex.buf.String())
		ex.assistantID = reply.ID
		conv.Append(reply)
	}

	c.replaceConversation(conv)
	c.persistConversations()
}

// FinishSend ends the exchange. err is the stream's error (nil when the
// reply completed). On success the first exchange of a conversation gives
// it a title derived from the prompt. On failure the banner is set and the
// partial reply is kept. A cancelled exchange sets no banner. Loading is
// cleared in every case.
func (c *Controller) FinishSend(ex *Exchange, err error) {
	if ex == nil || ex.finished {
		return
	}
	ex.finished = true
	ex.stream.Close()
	ex.cancel()
	if c.inflight == ex {
		c.inflight = nil
	}
	defer func() { c.state.Loading = false }()

	switch {
	case err == nil:
		i := c.state.conversationIndex(ex.ConversationID)
		if i < 0 {
			return
		}
		// Read the conversation as it is now, after the stream.
		if ex.first && len(c.state.Conversations[i].Messages) == 2 {
			conv := c.state.Conversations[i].Clone()
			conv.Title = model.DeriveTitle(ex.Prompt)
			c.replaceConversation(conv)
			c.persistConversations()
		}
		logger.WithField("conversation", ex.ConversationID).Debugf("send completed (%d bytes)", ex.buf.Len())

	case ex.Canceled() || errors.Is(err, context.Canceled):
		logger.WithField("conversation", ex.ConversationID).Infof("send cancelled after %d bytes", ex.buf.Len())

	default:
		logger.WithError(err).WithField("conversation", ex.ConversationID).Errorf("send failed")
		c.state.Error = MsgGenerationFailed
	}
}

// CancelSend stops the exchange in flight. The partial reply stays; the UI
// still calls FinishSend when the stream reports its end.
func (c *Controller) CancelSend() {
	if c.inflight != nil {
		c.inflight.stop()
	}
}

// SendMessage runs a complete exchange and blocks until the reply ends.
// onFragment, if not nil, sees each fragment after it has been applied.
// The returned error is the BeginSend error or the stream error.
func (c *Controller) SendMessage(ctx context.Context, prompt string, onFragment func(string)) error {
	ex, err := c.BeginSend(ctx, prompt)
	if err != nil {
		return err
	}
	for {
		frag, ok := ex.Next()
		if !ok {
			break
		}
		c.ApplyFragment(ex, frag)
		if onFragment != nil {
			onFragment(frag)
		}
	}
	err = ex.Err()
	c.FinishSend(ex, err)
	return err
}
