// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	store "github.com/mhollis/codechat-tui/internal/chat"
	"github.com/mhollis/codechat-tui/internal/ui/styles"
)

// Update handles incoming messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != StateStreaming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StreamChunkMsg:
		return m.handleStreamChunk(msg), nil

	case StreamCompleteMsg:
		return m.handleStreamComplete(msg), nil

	case StreamErrorMsg:
		return m.handleStreamError(msg), nil

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg), nil

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg), nil
	}

	return m, nil
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	headerHeight := 1
	inputHeight := 2
	statusHeight := 1
	viewportHeight := msg.Height - headerHeight - inputHeight - statusHeight
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
	}
	m.input.Width = msg.Width - 4

	m.refreshViewport(true)
	return m
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Quit always wins, even mid-stream.
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	// Snippet panel has its own navigation.
	if m.state == StateSnippets {
		return m.handleSnippetKey(msg)
	}
	if m.state == StateHelp {
		m.state = StateIdle
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.Cancel):
		if m.state == StateStreaming {
			return m, func() tea.Msg { return CancelStreamMsg{} }
		}
		m.lastError = ""
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		return m.startNewChat(), nil

	case key.Matches(msg, m.keyMap.Snippets):
		if !m.openSnippets() {
			m.lastError = "no code snippets in the latest reply"
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSnippetKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.state = StateIdle
		m.snippets = nil

	case key.Matches(msg, m.keyMap.Up):
		if m.snippetIndex > 0 {
			m.snippetIndex--
		}

	case key.Matches(msg, m.keyMap.Down):
		if m.snippetIndex < len(m.snippets)-1 {
			m.snippetIndex++
		}
	}
	return m, nil
}

// =============================================================================
// SUBMIT
// =============================================================================

func (m Model) handleSubmit() (Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}

	if strings.HasPrefix(content, "/") {
		m.input.Reset()
		return m.handleCommand(content)
	}

	// One stream at a time.
	if m.store.IsStreaming() {
		return m, nil
	}

	m.input.Reset()
	m.lastError = ""

	chatID := m.store.CurrentChatID()
	if chatID == "" {
		chatID = store.NewChatID()
		if err := m.store.CreateChat(chatID, store.DeriveTitle(content)); err != nil {
			m.lastError = err.Error()
			return m, nil
		}
		m.store.SetCurrentChat(chatID)
	}

	m.store.AddMessage(chatID, store.NewUserMessage(content))
	reply := store.NewAssistantMessage()
	m.store.AddMessage(chatID, reply)
	m.store.SetStreaming(true)

	m.streamingMsgID = reply.ID
	m.state = StateStreaming
	m.refreshViewport(true)

	req := StreamRequestMsg{ChatID: chatID, MessageID: reply.ID, Query: content}
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return req },
	)
}

func (m Model) startNewChat() Model {
	if m.state == StateStreaming {
		return m
	}
	m.store.ClearCurrentChat()
	m.lastError = ""
	m.refreshViewport(false)
	return m
}

// =============================================================================
// STREAMING
// =============================================================================

func (m Model) handleStreamChunk(msg StreamChunkMsg) Model {
	if msg.MessageID != m.streamingMsgID {
		return m
	}
	// The store already holds the new content; throttle repaints so fast
	// streams do not saturate the render loop.
	if msg.Chunk.Done || m.redraw.Allow() {
		m.refreshViewport(true)
	}
	return m
}

func (m Model) handleStreamComplete(msg StreamCompleteMsg) Model {
	if msg.MessageID != m.streamingMsgID {
		return m
	}
	m.streamingMsgID = ""
	m.state = StateIdle
	m.refreshViewport(true)
	return m
}

func (m Model) handleStreamError(msg StreamErrorMsg) Model {
	if msg.MessageID != m.streamingMsgID {
		return m
	}
	m.streamingMsgID = ""
	m.state = StateIdle
	if msg.Err != nil {
		m.lastError = msg.Err.Error()
	}
	m.refreshViewport(true)
	return m
}

// =============================================================================
// HISTORY AND CONFIG
// =============================================================================

func (m Model) handleHistoryLoaded(msg HistoryLoadedMsg) Model {
	if msg.Err != nil {
		m.lastError = "could not load history: " + msg.Err.Error()
		return m
	}
	if len(msg.Turns) == 0 {
		return m
	}

	if err := m.store.CreateChat(msg.ChatID, store.DeriveTitle(msg.Turns[0].Query)); err != nil {
		m.lastError = err.Error()
		return m
	}
	m.store.SetCurrentChat(msg.ChatID)
	for _, turn := range msg.Turns {
		m.store.AddMessage(msg.ChatID, store.NewUserMessage(turn.Query))
		m.store.AddMessage(msg.ChatID, store.NewAssistantReply(turn.Response))
	}

	m.refreshViewport(true)
	return m
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) Model {
	cfg := msg.Config
	m.showTokens = cfg.UI.ShowTokens
	m.syntaxStyle = cfg.UI.SyntaxStyle
	m.lineNumbers = cfg.UI.ShowLineNumbers
	m.compact = cfg.UI.CompactMode
	m.theme = styles.NewTheme(cfg.UI.Theme)
	m.theme.SetSize(m.width, m.height)
	m.refreshViewport(false)
	return m
}
