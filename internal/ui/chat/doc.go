// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel of the TUI.
//
// The panel shows the active conversation in a scrolling viewport above a
// composer. It renders whatever conversation it is given and reports user
// intent as messages:
//
//	SendMsg   - enter pressed with a non-blank composer, not while loading
//	CancelMsg - esc pressed while a reply is streaming
//
// The root model turns those into Controller calls. While Loading is set the
// composer is disabled and a spinner runs under the conversation.
package chat
