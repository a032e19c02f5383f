// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mhollis/codechat-tui/internal/api"
	store "github.com/mhollis/codechat-tui/internal/chat"
	"github.com/mhollis/codechat-tui/internal/config"
	"github.com/mhollis/codechat-tui/internal/markdown"
	"github.com/mhollis/codechat-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(styles.NewTheme("dark"), store.NewStore(), config.Default())
	m = m.handleResize(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestSubmitCreatesChatAndMessages(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("how do I reverse a list in Python?")

	m, cmd := m.handleSubmit()
	if cmd == nil {
		t.Fatal("expected a command to start streaming")
	}
	if m.state != StateStreaming {
		t.Errorf("expected StateStreaming, got %d", m.state)
	}

	if m.store.ChatCount() != 1 {
		t.Fatalf("expected 1 chat, got %d", m.store.ChatCount())
	}
	current, ok := m.store.CurrentChat()
	if !ok {
		t.Fatal("expected a current chat")
	}
	if current.MessageCount() != 2 {
		t.Fatalf("expected user + assistant placeholder, got %d messages", current.MessageCount())
	}
	if current.Messages[0].Role != store.RoleUser {
		t.Error("first message should be the user query")
	}
	if !current.Messages[1].IsStreaming {
		t.Error("assistant placeholder should be streaming")
	}
	if !m.store.IsStreaming() {
		t.Error("store streaming flag should be set")
	}
	if current.Title != "how do I reverse a list in Python?" {
		t.Errorf("unexpected derived title %q", current.Title)
	}
}

func TestSubmitEmptyInputIgnored(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("   ")

	m, cmd := m.handleSubmit()
	if cmd != nil {
		t.Error("whitespace input should not submit")
	}
	if m.store.ChatCount() != 0 {
		t.Error("no chat should be created")
	}
}

func TestSubmitWhileStreamingIgnored(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("first")
	m, _ = m.handleSubmit()

	m.input.SetValue("second")
	m, cmd := m.handleSubmit()
	if cmd != nil {
		t.Error("second submit during streaming should be ignored")
	}
	current, _ := m.store.CurrentChat()
	if current.MessageCount() != 2 {
		t.Errorf("expected 2 messages, got %d", current.MessageCount())
	}
}

func TestSubmitReusesCurrentChat(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("first")
	m, _ = m.handleSubmit()
	m = m.handleStreamComplete(StreamCompleteMsg{MessageID: m.streamingMsgID})
	m.store.SetStreaming(false)

	m.input.SetValue("second")
	m, _ = m.handleSubmit()

	if m.store.ChatCount() != 1 {
		t.Fatalf("expected followup in same chat, got %d chats", m.store.ChatCount())
	}
	current, _ := m.store.CurrentChat()
	if current.MessageCount() != 4 {
		t.Errorf("expected 4 messages, got %d", current.MessageCount())
	}
}

func TestUnknownSlashCommand(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.handleCommand("/frobnicate")
	if m.lastError == "" {
		t.Error("unknown command should set an error")
	}
	if m.store.ChatCount() != 0 {
		t.Error("command must not create a chat")
	}
}

func TestNewChatClearsSelection(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("hello")
	m, _ = m.handleSubmit()
	m = m.handleStreamComplete(StreamCompleteMsg{MessageID: m.streamingMsgID})
	m.store.SetStreaming(false)

	m = m.startNewChat()
	if m.store.CurrentChatID() != "" {
		t.Error("new chat should clear the current selection")
	}
	if m.store.ChatCount() != 1 {
		t.Error("previous chat should be retained")
	}
}

func TestStreamErrorFreezesView(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("hello")
	m, _ = m.handleSubmit()

	id := m.streamingMsgID
	m = m.handleStreamError(StreamErrorMsg{MessageID: id, Err: errors.New("rate limited")})

	if m.state != StateIdle {
		t.Error("stream error should return to idle")
	}
	if m.streamingMsgID != "" {
		t.Error("streaming message id should be cleared")
	}
	if m.lastError != "rate limited" {
		t.Errorf("unexpected error text %q", m.lastError)
	}
}

func TestStreamMessagesForOtherIDsIgnored(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("hello")
	m, _ = m.handleSubmit()

	m = m.handleStreamComplete(StreamCompleteMsg{MessageID: "someone-else"})
	if m.state != StateStreaming {
		t.Error("completion for another message must not end the active stream")
	}
}

func TestHistoryLoadedBuildsChat(t *testing.T) {
	m := newTestModel(t)
	m = m.handleHistoryLoaded(HistoryLoadedMsg{
		ChatID: "conv-1",
		Turns: []api.HistoryTurn{
			{Query: "q1", Response: "a1"},
			{Query: "q2", Response: "a2"},
		},
	})

	current, ok := m.store.CurrentChat()
	if !ok {
		t.Fatal("expected history chat to be current")
	}
	if current.ID != "conv-1" {
		t.Errorf("expected chat id conv-1, got %s", current.ID)
	}
	if current.MessageCount() != 4 {
		t.Fatalf("expected 4 messages, got %d", current.MessageCount())
	}
	if current.Messages[3].Content != "a2" {
		t.Errorf("unexpected last message %q", current.Messages[3].Content)
	}
	if current.Messages[3].IsStreaming {
		t.Error("history messages must be frozen")
	}
}

func TestHistoryLoadedErrorReported(t *testing.T) {
	m := newTestModel(t)
	m = m.handleHistoryLoaded(HistoryLoadedMsg{ChatID: "conv-1", Err: errors.New("boom")})
	if m.lastError == "" {
		t.Error("history error should surface in the status bar")
	}
	if m.store.ChatCount() != 0 {
		t.Error("failed history load must not create a chat")
	}
}

func TestOpenSnippets(t *testing.T) {
	m := newTestModel(t)

	chatID := store.NewChatID()
	if err := m.store.CreateChat(chatID, "t"); err != nil {
		t.Fatal(err)
	}
	m.store.SetCurrentChat(chatID)
	m.store.AddMessage(chatID, store.NewUserMessage("q"))
	m.store.AddMessage(chatID, store.NewAssistantReply("pre\n```py\nx=1\n```\npost"))

	if !m.openSnippets() {
		t.Fatal("expected snippets to open")
	}
	if m.state != StateSnippets {
		t.Error("expected snippet panel state")
	}
	if len(m.snippets) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(m.snippets))
	}
	if m.snippets[0].Language != "python" {
		t.Errorf("expected normalized language, got %s", m.snippets[0].Language)
	}
}

func TestSnippetViewHeaderIsSummary(t *testing.T) {
	m := newTestModel(t)

	chatID := store.NewChatID()
	if err := m.store.CreateChat(chatID, "t"); err != nil {
		t.Fatal(err)
	}
	m.store.SetCurrentChat(chatID)
	m.store.AddMessage(chatID, store.NewAssistantReply(
		"```py\nx=1\ny=2\n```\nand\n```go\nz := 3\n```"))

	if !m.openSnippets() {
		t.Fatal("expected snippets to open")
	}

	want := markdown.SnippetSummary(m.snippets)
	if !strings.Contains(m.View(), want) {
		t.Errorf("snippet panel header should be %q", want)
	}
}

func TestOpenSnippetsNoCode(t *testing.T) {
	m := newTestModel(t)

	chatID := store.NewChatID()
	if err := m.store.CreateChat(chatID, "t"); err != nil {
		t.Fatal(err)
	}
	m.store.SetCurrentChat(chatID)
	m.store.AddMessage(chatID, store.NewAssistantReply("plain text only"))

	if m.openSnippets() {
		t.Error("expected no snippet panel for plain reply")
	}
	if m.state != StateIdle {
		t.Error("state should stay idle")
	}
}

func TestConfigReloadedUpdatesSettings(t *testing.T) {
	m := newTestModel(t)

	cfg := config.Default()
	cfg.UI.ShowTokens = false
	cfg.UI.SyntaxStyle = "dracula"
	cfg.UI.CompactMode = true

	m = m.handleConfigReloaded(ConfigReloadedMsg{Config: cfg})
	if m.showTokens {
		t.Error("show_tokens should be off after reload")
	}
	if m.syntaxStyle != "dracula" {
		t.Errorf("expected dracula style, got %s", m.syntaxStyle)
	}
	if !m.compact {
		t.Error("compact mode should be on after reload")
	}
}
