// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream reassembles a server-pushed event stream into one growing
// assistant message.
package stream

import (
	"context"
	"io"
	"strings"

	"github.com/mhollis/codechat-tui/internal/chat"
)

// =============================================================================
// ERROR TYPE
// =============================================================================

// Error is a fatal in-band stream error. The Reason is the error field of
// the chunk that carried it, surfaced as the failure cause.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "stream error: " + e.Reason
}

// =============================================================================
// INGESTOR
// =============================================================================

// MessageUpdater is the slice of the chat store the ingestor posts to.
type MessageUpdater interface {
	UpdateMessage(chatID, messageID string, patch chat.MessagePatch) bool
}

// Callback observes each applied chunk; used by the UI to schedule redraws.
type Callback func(Chunk)

// Ingestor folds a chunk stream into one target message, updating the store
// after every chunk in strict arrival order.
type Ingestor struct {
	store     MessageUpdater
	chatID    string
	messageID string

	// strings.Builder keeps per-chunk concatenation linear
	accumulated strings.Builder
	model       string
	usage       *chat.Usage
	done        bool
}

// NewIngestor creates an ingestor targeting one message of one chat.
func NewIngestor(store MessageUpdater, chatID, messageID string) *Ingestor {
	return &Ingestor{
		store:     store,
		chatID:    chatID,
		messageID: messageID,
	}
}

// Run consumes the stream until the terminal chunk, an in-band error, end
// of input, or context cancellation. The callback, when non-nil, is invoked
// after each applied chunk.
func (in *Ingestor) Run(ctx context.Context, r io.Reader, callback Callback) error {
	reader := NewReader(r)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		chunk, err := reader.Next()
		if err != nil {
			if err == io.EOF {
				// Stream closed without a terminal chunk; accumulated
				// content stands.
				return nil
			}
			return err
		}
		if chunk == nil {
			continue
		}

		done, err := in.Apply(*chunk)
		if err != nil {
			return err
		}
		if callback != nil {
			callback(*chunk)
		}
		if done {
			return nil
		}
	}
}

// Apply folds one chunk into the ingestor state and posts the resulting
// patch to the store. It returns true when the terminal chunk has been
// applied, or an error for an in-band error chunk (which is not applied).
func (in *Ingestor) Apply(chunk Chunk) (bool, error) {
	if in.done {
		return true, nil
	}

	if chunk.HasError() {
		in.done = true
		return true, &Error{Reason: chunk.Error}
	}

	if chunk.Text != "" {
		in.accumulated.WriteString(chunk.Text)
	}
	if chunk.Model != "" {
		in.model = chunk.Model
	}
	if chunk.Usage != nil {
		u := *chunk.Usage
		in.usage = &u
	}

	content := in.accumulated.String()
	streaming := !chunk.Done
	patch := chat.MessagePatch{
		Content:     &content,
		IsStreaming: &streaming,
	}
	if in.model != "" {
		patch.Model = &in.model
	}
	if in.usage != nil {
		patch.Usage = in.usage
	}
	in.store.UpdateMessage(in.chatID, in.messageID, patch)

	if chunk.Done {
		in.done = true
	}
	return in.done, nil
}

// Content returns the accumulated content so far.
func (in *Ingestor) Content() string {
	return in.accumulated.String()
}

// Model returns the last non-empty model seen.
func (in *Ingestor) Model() string {
	return in.model
}

// Usage returns the usage totals, or nil if none arrived.
func (in *Ingestor) Usage() *chat.Usage {
	return in.usage
}

// Done reports whether the stream has terminated.
func (in *Ingestor) Done() bool {
	return in.done
}
