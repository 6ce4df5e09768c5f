// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini wraps the google.golang.org/genai SDK behind the small
// Generator interface the rest of geminipad depends on.
//
// Callers depend on the Generator interface:
//
//	gen := gemini.NewClient()
//	if err := gen.Initialize(apiKey, "gemini-pro"); err != nil { ... }
//
//	// single shot
//	text, err := gen.GenerateContent(ctx, "hello")
//
//	// fragments, pulled one at a time
//	s := gen.Stream(ctx, "explain recursion")
//	defer s.Close()
//	for s.Next() {
//	    fmt.Print(s.Fragment())
//	}
//	err = s.Err()
//
// Streams are lazy (no request until the first Next), finite and cannot be
// restarted. Cancelling the context or calling Close ends them early.
//
// Vendor failures are logged and returned as *APIError, which carries the
// HTTP status and the message from Google's error envelope. Requests share
// an optional rate.Limiter.
package gemini
