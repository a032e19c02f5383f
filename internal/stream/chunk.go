// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import "github.com/mhollis/codechat-tui/internal/chat"

// Chunk is one wire-level unit of a streamed assistant response.
type Chunk struct {
	// Text is the content delta to append; may be empty.
	Text string `json:"text"`

	// Model identifies the serving model; constant across a stream in
	// practice, last non-empty value wins.
	Model string `json:"model"`

	// Done marks the terminal chunk of a successful stream.
	Done bool `json:"done"`

	// Error, when non-empty, aborts the stream; no further chunks are
	// processed.
	Error string `json:"error,omitempty"`

	// Usage carries token totals; present only alongside Done.
	Usage *chat.Usage `json:"usage,omitempty"`
}

// HasError reports whether the chunk carries an in-band error.
func (c Chunk) HasError() bool {
	return c.Error != ""
}
