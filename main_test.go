// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"strings"
	"testing"

	store "github.com/mhollis/codechat-tui/internal/chat"
	"github.com/mhollis/codechat-tui/internal/stream"
)

func seedStreamingReply(t *testing.T) (*store.Store, string, string) {
	t.Helper()
	st := store.NewStore()
	chatID := store.NewChatID()
	if err := st.CreateChat(chatID, "t"); err != nil {
		t.Fatal(err)
	}
	st.AddMessage(chatID, store.NewUserMessage("q"))
	reply := store.NewAssistantMessage()
	st.AddMessage(chatID, reply)
	return st, chatID, reply.ID
}

func TestApplyFallbackKeepsPartialContent(t *testing.T) {
	st, chatID, replyID := seedStreamingReply(t)

	partial := "partial answer before the failure"
	st.UpdateMessage(chatID, replyID, store.MessagePatch{Content: &partial})

	applyFallback(st, chatID, replyID)

	c, ok := st.ChatByID(chatID)
	if !ok {
		t.Fatal("chat disappeared")
	}
	if c.MessageCount() != 3 {
		t.Fatalf("expected user + partial reply + notice, got %d messages", c.MessageCount())
	}

	reply := c.MessageByID(replyID)
	if reply == nil {
		t.Fatal("partial reply is gone")
	}
	if reply.Content != partial {
		t.Errorf("partial content was replaced: %q", reply.Content)
	}
	if reply.IsStreaming {
		t.Error("partial reply should be frozen")
	}

	notice := c.Messages[2]
	if notice.Role != store.RoleAssistant {
		t.Errorf("notice role = %s, want assistant", notice.Role)
	}
	if notice.Content != fallbackNotice {
		t.Errorf("notice content = %q", notice.Content)
	}
	if notice.IsStreaming {
		t.Error("notice must not be streaming")
	}
}

func TestApplyFallbackBeforeFirstChunk(t *testing.T) {
	st, chatID, replyID := seedStreamingReply(t)

	applyFallback(st, chatID, replyID)

	c, _ := st.ChatByID(chatID)
	if c.MessageCount() != 3 {
		t.Fatalf("expected 3 messages, got %d", c.MessageCount())
	}
	if c.Messages[2].Content != fallbackNotice {
		t.Errorf("notice content = %q", c.Messages[2].Content)
	}
	if c.MessageByID(replyID).IsStreaming {
		t.Error("placeholder should be frozen")
	}
}

func TestMidStreamErrorKeepsAppliedChunks(t *testing.T) {
	st, chatID, replyID := seedStreamingReply(t)

	body := strings.NewReader(
		`{"text":"partial answer ","done":false}` + "\n" +
			`{"text":"before the error","done":false}` + "\n" +
			`{"text":"","done":false,"error":"boom"}` + "\n")

	ing := stream.NewIngestor(st, chatID, replyID)
	if err := ing.Run(context.Background(), body, nil); err == nil {
		t.Fatal("expected the error chunk to abort the stream")
	}
	applyFallback(st, chatID, replyID)

	c, _ := st.ChatByID(chatID)
	if c.MessageCount() != 3 {
		t.Fatalf("expected user + partial reply + notice, got %d messages", c.MessageCount())
	}
	reply := c.MessageByID(replyID)
	if reply.Content != "partial answer before the error" {
		t.Errorf("partial content = %q", reply.Content)
	}
	if reply.IsStreaming {
		t.Error("partial reply should be frozen")
	}
	if c.Messages[2].Content != fallbackNotice {
		t.Errorf("notice content = %q", c.Messages[2].Content)
	}
}

func TestFinishMessageKeepsContent(t *testing.T) {
	st, chatID, replyID := seedStreamingReply(t)

	partial := "answer cut short by cancel"
	st.UpdateMessage(chatID, replyID, store.MessagePatch{Content: &partial})

	finishMessage(st, chatID, replyID)

	c, _ := st.ChatByID(chatID)
	if c.MessageCount() != 2 {
		t.Fatalf("cancel must not append messages, got %d", c.MessageCount())
	}
	reply := c.MessageByID(replyID)
	if reply.Content != partial {
		t.Errorf("content = %q, want %q", reply.Content, partial)
	}
	if reply.IsStreaming {
		t.Error("reply should be frozen")
	}
}
