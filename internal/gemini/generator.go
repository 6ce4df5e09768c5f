// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import "context"

// Generator is the capability the application needs from a generative
// model. Client implements it over HTTP; geminitest.Fake implements it for
// tests.
type Generator interface {
	// Initialize binds credentials and model, replacing any previous
	// binding. Calling it again with the same values is harmless.
	Initialize(apiKey, model string) error

	// Initialized reports whether Initialize has succeeded.
	Initialized() bool

	// GenerateContent returns the full reply to prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// Stream returns the reply to prompt as a lazy fragment sequence.
	Stream(ctx context.Context, prompt string) FragmentStream

	// StreamGenerateContent calls onChunk with each fragment in arrival
	// order and returns when the reply ends. A non-nil error from onChunk
	// stops the stream and is returned.
	StreamGenerateContent(ctx context.Context, prompt string, onChunk func(string) error) error
}

// FragmentStream is a pull-based sequence of reply fragments.
type FragmentStream interface {
	// Next advances to the next fragment. It returns false at the end of
	// the reply or on error; see Err.
	Next() bool
	// Fragment is the text made current by the last successful Next.
	Fragment() string
	// Err is the error that ended the stream, nil after a clean end.
	Err() error
	// Close releases the stream. It is safe to call more than once.
	Close() error
}

// Consume drives s to the end, passing each fragment to onChunk before the
// next one is requested, then closes it.
func Consume(s FragmentStream, onChunk func(string) error) error {
	defer s.Close()
	for s.Next() {
		if err := onChunk(s.Fragment()); err != nil {
			return err
		}
	}
	return s.Err()
}
