// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns all conversation state for the client.
package chat

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mhollis/codechat-tui/internal/markdown"
)

// ErrChatExists is returned by CreateChat when the chat id is already taken.
// Overwriting an existing chat is disallowed.
var ErrChatExists = errors.New("chat id already exists")

// =============================================================================
// STORE
// =============================================================================

// Store is the session state machine: it owns every chat, the active-chat
// pointer, and the global streaming flag. All mutation goes through the
// action methods below; reads return deep copies.
type Store struct {
	mu sync.RWMutex

	chats     map[string]*Chat
	currentID string
	streaming bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		chats: make(map[string]*Chat),
	}
}

// =============================================================================
// ACTIONS
// =============================================================================

// CreateChat creates a new empty chat with the given id and title.
// Returns ErrChatExists if the id is already present; state is unchanged.
func (s *Store) CreateChat(chatID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[chatID]; ok {
		return ErrChatExists
	}

	now := time.Now()
	s.chats[chatID] = &Chat{
		ID:        chatID,
		Title:     title,
		Messages:  make([]*Message, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

// SetCurrentChat sets the active-chat pointer unconditionally. Existence is
// not validated; callers check via ChatByID or CurrentChat.
func (s *Store) SetCurrentChat(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = chatID
}

// ClearCurrentChat clears the active-chat pointer.
func (s *Store) ClearCurrentChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = ""
}

// AddMessage appends a message to the target chat and bumps UpdatedAt.
// A no-op if the chat is unknown: navigation races an in-flight stream, and
// a late append must never fail. Returns true if the message was added.
func (s *Store) AddMessage(chatID string, msg *Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[chatID]
	if !ok {
		return false
	}

	c.Messages = append(c.Messages, msg.clone())
	c.UpdatedAt = time.Now()
	return true
}

// UpdateMessage merges a patch into the first message matching messageID
// within the chat, leaving every other message and chat untouched, and
// bumps the chat's UpdatedAt. A no-op if the chat or message is unknown.
// Returns true if a message was patched.
func (s *Store) UpdateMessage(chatID, messageID string, patch MessagePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[chatID]
	if !ok {
		return false
	}

	m := c.MessageByID(messageID)
	if m == nil {
		return false
	}

	patch.apply(m)
	c.UpdatedAt = time.Now()
	return true
}

// SetStreaming sets the global "assistant is streaming" flag. The flag is
// independent of any specific chat; single-stream-at-a-time is guaranteed
// by the calling protocol, not the store.
func (s *Store) SetStreaming(streaming bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaming = streaming
}

// =============================================================================
// READ ACCESSORS
// =============================================================================

// IsStreaming reports the global streaming flag.
func (s *Store) IsStreaming() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streaming
}

// CurrentChatID returns the active-chat pointer ("" if unset).
func (s *Store) CurrentChatID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// CurrentChat returns a copy of the active chat. The second return is false
// if no chat is active or the active id is stale.
func (s *Store) CurrentChat() (*Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentID == "" {
		return nil, false
	}
	c, ok := s.chats[s.currentID]
	if !ok {
		return nil, false
	}
	return c.clone(), true
}

// ChatByID returns a copy of the chat with the given id.
func (s *Store) ChatByID(chatID string) (*Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chats[chatID]
	if !ok {
		return nil, false
	}
	return c.clone(), true
}

// Chats returns copies of all chats, most recently updated first.
func (s *Store) Chats() []*Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chats := make([]*Chat, 0, len(s.chats))
	for _, c := range s.chats {
		chats = append(chats, c.clone())
	}
	sort.Slice(chats, func(i, j int) bool {
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
	})
	return chats
}

// ChatCount returns the number of chats in the store.
func (s *Store) ChatCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chats)
}

// =============================================================================
// DERIVED DATA
// =============================================================================

// Snippets returns the code snippets of a message, computing them from its
// content on first access. The result is cached once the message is frozen;
// while the message is still streaming the snippets are recomputed each
// call. Extraction over identical content is idempotent, so recomputing is
// always safe. The second return is false if the chat or message is unknown.
func (s *Store) Snippets(chatID, messageID string) ([]markdown.CodeSnippet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[chatID]
	if !ok {
		return nil, false
	}
	m := c.MessageByID(messageID)
	if m == nil {
		return nil, false
	}

	if m.snippetsComputed {
		return append([]markdown.CodeSnippet(nil), m.snippets...), true
	}

	// Cheap scan before the full extraction pass; most replies have no code.
	if !markdown.HasSnippets(m.Content) {
		if !m.IsStreaming {
			m.snippetsComputed = true
		}
		return nil, true
	}

	snippets := markdown.ExtractSnippets(m.Content)
	if !m.IsStreaming {
		m.snippets = snippets
		m.snippetsComputed = true
	}
	return append([]markdown.CodeSnippet(nil), snippets...), true
}
