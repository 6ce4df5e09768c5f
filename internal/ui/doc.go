// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui is the root bubbletea model.
//
// It lays out the header, sidebar, active panel, error banner and status
// bar, owns keyboard focus, and applies the panels' intent messages through
// app.Controller. Panels never touch application state; after every
// controller call the root pushes the new app.State back into them.
//
// A chat reply streams one fragment per tea.Cmd: the command blocks on
// Exchange.Next off the event loop and returns a StreamTokenMsg, which the
// root applies before asking for the next fragment.
package ui
