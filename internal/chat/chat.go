// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns all conversation state for the client.
package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/mhollis/codechat-tui/internal/util"
)

// TitleWidth is the maximum display width of a derived chat title,
// including the ellipsis marker.
const TitleWidth = 50

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat is one conversation thread: an ordered, append-only message history
// plus metadata. Owned exclusively by the Store.
type Chat struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Messages  []*Message `json:"messages"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewChatID generates a fresh chat id.
func NewChatID() string {
	return uuid.NewString()
}

// DeriveTitle builds a chat title from the first user message, truncated to
// TitleWidth display columns with an ellipsis marker.
func DeriveTitle(firstMessage string) string {
	return util.TruncateWidth(firstMessage, TitleWidth)
}

// LastMessage returns the most recent message, or nil if the chat is empty.
func (c *Chat) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// MessageByID returns the first message with the given id, or nil.
func (c *Chat) MessageByID(id string) *Message {
	for _, m := range c.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (c *Chat) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if the chat has no messages.
func (c *Chat) IsEmpty() bool {
	return len(c.Messages) == 0
}

// clone returns a deep copy of the chat.
func (c *Chat) clone() *Chat {
	cp := &Chat{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]*Message, len(c.Messages)),
	}
	for i, m := range c.Messages {
		cp.Messages[i] = m.clone()
	}
	return cp
}
