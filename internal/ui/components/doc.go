// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the rendering building blocks of the geminipad TUI.

Components are plain structs with a View or Render method. They hold no
application state of their own; panels build them from app.State on every
render.

# Display Components

Header (header.go) - Brand and tab bar.
StatusBar (statusbar.go) - Store, model and key fingerprint on one line.
ErrorBanner (error.go) - The dismissable error line.
Welcome (welcome.go) - Empty-state text of the chat panel.

# Content Rendering

MessageBubble, MessageList (message.go) - Chat messages with role and HH:MM.
Markdown (markdown.go) - glamour renderer cached per style and width.
CodeBlock (codeblock.go) - chroma highlighted code.

RenderContent splits a reply into prose and fenced code. Prose goes through
glamour, fenced blocks through chroma keyed by the fence's language tag:

	md := components.NewMarkdown(theme.GlamourStyle())
	out := components.RenderContent(theme, md, reply, width)
*/
package components
