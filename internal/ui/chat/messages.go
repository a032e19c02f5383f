// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines all Bubble Tea message types used by the chat interface.
// Streaming messages originate outside the view: the program's stream
// goroutine delivers chunks, completion, and errors here.

package chat

import (
	"github.com/mhollis/codechat-tui/internal/api"
	"github.com/mhollis/codechat-tui/internal/config"
	"github.com/mhollis/codechat-tui/internal/stream"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamRequestMsg asks the program to start streaming an assistant reply.
// Sent by the chat view after the user submits a query; handled by the
// top-level model which owns the HTTP client.
type StreamRequestMsg struct {
	ChatID    string
	MessageID string
	Query     string
}

// StreamChunkMsg delivers one applied chunk from the active stream.
// The store already reflects the chunk; the view only needs to redraw.
type StreamChunkMsg struct {
	MessageID string
	Chunk     stream.Chunk
}

// StreamCompleteMsg signals that streaming finished successfully.
type StreamCompleteMsg struct {
	MessageID string
}

// StreamErrorMsg signals that the stream failed or was aborted in-band.
type StreamErrorMsg struct {
	MessageID string
	Err       error
}

// CancelStreamMsg asks the program to cancel the active stream.
type CancelStreamMsg struct{}

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers past turns fetched from the server at startup.
type HistoryLoadedMsg struct {
	ChatID string
	Turns  []api.HistoryTurn
	Err    error
}

// =============================================================================
// CONFIGURATION MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a live-reloaded configuration.
type ConfigReloadedMsg struct {
	Config *config.Config
}
