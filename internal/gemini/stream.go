// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"iter"
	"sync"

	"google.golang.org/genai"

	"github.com/jeranaias/geminipad/internal/logger"
)

// Stream returns the reply to prompt as fragments. The request is sent on
// the first call to Next.
func (c *Client) Stream(ctx context.Context, prompt string) FragmentStream {
	ctx, cancel := context.WithCancel(ctx)
	return &sdkStream{client: c, ctx: ctx, cancel: cancel, prompt: prompt}
}

type sdkStream struct {
	client *Client
	ctx    context.Context
	cancel context.CancelFunc
	prompt string

	mu       sync.Mutex
	started  bool
	done     bool
	next     func() (*genai.GenerateContentResponse, error, bool)
	stop     func()
	fragment string
	pending  error // reported on the Next after the current fragment
	err      error
}

func (s *sdkStream) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return false
	}
	if s.pending != nil {
		s.finish(s.pending)
		return false
	}
	if !s.started {
		s.started = true
		if err := s.open(); err != nil {
			s.finish(err)
			return false
		}
	}

	for {
		resp, err, ok := s.next()
		if !ok {
			// The SDK ends iteration silently when the body read fails.
			s.finish(s.ctx.Err())
			return false
		}
		if err != nil {
			if ctxErr := s.ctx.Err(); ctxErr != nil {
				err = ctxErr
			} else {
				err = convertError(err)
			}
			s.finish(err)
			return false
		}

		text := responseText(resp)
		blocked := responseBlocked(resp)
		if text == "" {
			if blocked {
				s.finish(ErrBlocked)
				return false
			}
			continue
		}
		s.fragment = text
		if blocked {
			s.pending = ErrBlocked
		}
		return true
	}
}

func (s *sdkStream) open() error {
	b, err := s.client.bound()
	if err != nil {
		return err
	}
	if err := b.wait(s.ctx); err != nil {
		return err
	}
	seq := b.sdk.Models.GenerateContentStream(s.ctx, b.model, genai.Text(s.prompt), nil)
	s.next, s.stop = iter.Pull2(seq)
	return nil
}

// finish ends the stream with err (nil for a clean end). Caller holds mu.
func (s *sdkStream) finish(err error) {
	s.done = true
	s.err = err
	s.fragment = ""
	s.release()
	if err != nil && !isCancel(err) {
		logger.WithError(err).Errorf("gemini streamGenerateContent failed")
	}
}

// release stops the iterator, which closes the response body. Caller holds mu.
func (s *sdkStream) release() {
	s.cancel()
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *sdkStream) Fragment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fragment
}

func (s *sdkStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *sdkStream) Close() error {
	// Cancel before locking so a Next blocked on the network returns.
	s.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	s.release()
	return nil
}
