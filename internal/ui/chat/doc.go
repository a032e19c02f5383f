// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the codechat TUI.
//
// The view is a Bubble Tea model wrapping the conversation store: a
// scrollable message viewport, a single-line input, a status bar, and a
// snippet panel for browsing code blocks extracted from assistant replies.
// Streaming itself runs outside this package; the view reacts to stream
// messages and re-renders from store state.
package chat
