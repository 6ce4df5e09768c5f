// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app owns geminipad's application state.
//
// A Controller holds the conversation list, the file list, the settings
// record and the transient selection (active conversation, active file,
// active tab, loading flag, error banner). Every operation mutates State and
// then rewrites the affected storage record before returning.
//
// Controllers are not safe for concurrent use. The TUI calls them only from
// its Update loop; the line-mode chat calls them from its REPL goroutine.
//
// Sending a message is split in steps so a UI loop can interleave them with
// input events:
//
//	ex, err := ctrl.BeginSend(ctx, prompt) // user message appended, Loading=true
//	for {
//	    frag, ok := ex.Next()               // may block: run off the UI loop
//	    if !ok { break }
//	    ctrl.ApplyFragment(ex, frag)        // assistant message grows
//	}
//	ctrl.FinishSend(ex, ex.Err())           // title, error banner, Loading=false
//
// SendMessage runs the same steps in one blocking call.
package app
