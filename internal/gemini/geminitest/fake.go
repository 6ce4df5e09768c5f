// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package geminitest provides a scripted gemini.Generator for tests.
package geminitest

import (
	"context"
	"strings"
	"sync"

	"github.com/jeranaias/geminipad/internal/gemini"
)

// Fake replays scripted fragments. The zero value is usable and unbound.
type Fake struct {
	mu sync.Mutex

	// Fragments are streamed in order by every Stream call.
	Fragments []string
	// Err ends each stream after all Fragments have been delivered, and is
	// returned by GenerateContent.
	Err error
	// InitErr is returned by Initialize.
	InitErr error
	// Gate, when set, must receive a value before each fragment is
	// delivered, letting a test observe state mid-stream.
	Gate chan struct{}

	apiKey  string
	model   string
	prompts []string
	inits   int
}

var _ gemini.Generator = (*Fake)(nil)

// NewFake returns a Fake that streams fragments.
func NewFake(fragments ...string) *Fake {
	return &Fake{Fragments: fragments}
}

func (f *Fake) Initialize(apiKey, model string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inits++
	if f.InitErr != nil {
		return f.InitErr
	}
	if strings.TrimSpace(apiKey) == "" {
		return gemini.ErrInvalidAPIKey
	}
	f.apiKey, f.model = apiKey, model
	return nil
}

func (f *Fake) Initialized() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apiKey != ""
}

// Binding returns the key and model of the last successful Initialize.
func (f *Fake) Binding() (apiKey, model string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apiKey, f.model
}

// InitCalls counts Initialize calls.
func (f *Fake) InitCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inits
}

// Prompts returns every prompt received, in order.
func (f *Fake) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func (f *Fake) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.apiKey == "" {
		return "", gemini.ErrNotInitialized
	}
	f.prompts = append(f.prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	return strings.Join(f.Fragments, ""), nil
}

func (f *Fake) Stream(ctx context.Context, prompt string) gemini.FragmentStream {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &stream{ctx: ctx, gate: f.Gate}
	if f.apiKey == "" {
		s.err = gemini.ErrNotInitialized
		s.done = true
		return s
	}
	f.prompts = append(f.prompts, prompt)
	s.fragments = append([]string(nil), f.Fragments...)
	s.tailErr = f.Err
	return s
}

func (f *Fake) StreamGenerateContent(ctx context.Context, prompt string, onChunk func(string) error) error {
	return gemini.Consume(f.Stream(ctx, prompt), onChunk)
}

type stream struct {
	ctx       context.Context
	gate      chan struct{}
	fragments []string
	tailErr   error

	mu      sync.Mutex
	current string
	err     error
	done    bool
}

func (s *stream) Next() bool {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return false
	}
	if len(s.fragments) == 0 {
		s.done, s.err = true, s.tailErr
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	if s.gate != nil {
		select {
		case <-s.gate:
		case <-s.ctx.Done():
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctx.Err(); err != nil {
		s.done, s.err = true, err
		return false
	}
	if s.done {
		return false
	}
	s.current, s.fragments = s.fragments[0], s.fragments[1:]
	return true
}

func (s *stream) Fragment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	return nil
}
