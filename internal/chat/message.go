// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns all conversation state for the client.
package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/mhollis/codechat-tui/internal/markdown"
	"github.com/mhollis/codechat-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// USAGE TYPE
// =============================================================================

// Usage holds token totals reported on the terminal chunk of a stream.
// All counts are non-negative; set at most once per message.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single message in a chat. Content is mutable only while
// IsStreaming is true; once the terminal chunk is observed the message is
// frozen.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Set from stream metadata (assistant messages only)
	Model string `json:"model,omitempty"`
	Usage *Usage `json:"usage,omitempty"`

	// True only on the in-flight assistant message
	IsStreaming bool `json:"-"`

	// Derived from Content, computed lazily and cached once frozen.
	// Owned by the Store; not authoritative state.
	snippets         []markdown.CodeSnippet
	snippetsComputed bool
}

// NewUserMessage creates a user message with a generated id.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates an empty streaming placeholder for an
// assistant reply about to arrive.
func NewAssistantMessage() *Message {
	return &Message{
		ID:          uuid.NewString(),
		Role:        RoleAssistant,
		Timestamp:   time.Now(),
		IsStreaming: true,
	}
}

// NewAssistantReply creates a frozen assistant message with the given
// content. Used when loading past turns from the server.
func NewAssistantReply(content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantError creates a frozen assistant message carrying a
// user-visible failure notice. Used when a stream aborts.
func NewAssistantError(content string) *Message {
	return NewAssistantReply(content)
}

// Preview returns the content truncated to maxWidth display columns.
func (m *Message) Preview(maxWidth int) string {
	return util.TruncateWidth(m.Content, maxWidth)
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return m.Content == ""
}

// clone returns a deep copy of the message.
func (m *Message) clone() *Message {
	cp := *m
	if m.Usage != nil {
		u := *m.Usage
		cp.Usage = &u
	}
	if m.snippets != nil {
		cp.snippets = append([]markdown.CodeSnippet(nil), m.snippets...)
	}
	return &cp
}

// =============================================================================
// MESSAGE PATCH
// =============================================================================

// MessagePatch is an explicit merge operation over a message's optional
// fields. Nil fields are left untouched; the patch is applied atomically
// under the store lock.
type MessagePatch struct {
	Content     *string
	Model       *string
	Usage       *Usage
	IsStreaming *bool
}

// apply merges the patch into a message. Invalidates the snippet cache when
// content changes.
func (p MessagePatch) apply(m *Message) {
	if p.Content != nil && *p.Content != m.Content {
		m.Content = *p.Content
		m.snippets = nil
		m.snippetsComputed = false
	}
	if p.Model != nil {
		m.Model = *p.Model
	}
	if p.Usage != nil {
		u := *p.Usage
		m.Usage = &u
	}
	if p.IsStreaming != nil {
		m.IsStreaming = *p.IsStreaming
	}
}
