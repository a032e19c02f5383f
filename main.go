// codechat - a terminal chat client for a code assistant backend.
//
// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mhollis/codechat-tui/internal/api"
	"github.com/mhollis/codechat-tui/internal/cli"
	store "github.com/mhollis/codechat-tui/internal/chat"
	"github.com/mhollis/codechat-tui/internal/config"
	"github.com/mhollis/codechat-tui/internal/stream"
	"github.com/mhollis/codechat-tui/internal/ui/chat"
	"github.com/mhollis/codechat-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// fallbackNotice replaces a reply the server could not deliver.
const fallbackNotice = "Sorry, I'm having trouble connecting to the server. Please try again later."

// Global program reference for async streaming
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.Usage()
	}
}

// =============================================================================
// TUI STARTUP
// =============================================================================

func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config
	if args.ServerURL != "" {
		cfg.Server.BaseURL = args.ServerURL
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}

	theme := styles.NewTheme(cfg.UI.Theme)

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:       cfg.Server.BaseURL,
		Timeout:       time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		StreamTimeout: time.Duration(cfg.Server.StreamTimeoutSecs) * time.Second,
	})

	m := newModel(theme, store.NewStore(), client, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Live-reload the config file while the TUI runs.
	if path, err := config.ConfigPath(); err == nil {
		watcher, err := config.NewWatcher(path, func(cfg *config.Config) {
			send(chat.ConfigReloadedMsg{Config: cfg})
		})
		if err == nil {
			if err := watcher.Watch(); err != nil {
				log.Printf("config: watch unavailable: %v", err)
			}
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running codechat: %v\n", err)
		os.Exit(1)
	}
}

// send delivers a message to the running program, if any.
func send(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Model is the top-level Bubble Tea model. It owns the HTTP client and the
// active stream; the chat view owns everything visual.
type Model struct {
	chatView chat.Model

	store  *store.Store
	client *api.Client
	config *config.Config

	cancelStream context.CancelFunc
}

func newModel(theme *styles.Theme, st *store.Store, client *api.Client, cfg *config.Config) Model {
	return Model{
		chatView: chat.New(theme, st, cfg),
		store:    st,
		client:   client,
		config:   cfg,
	}
}

// Init kicks off the chat view and, when configured, the history bootstrap.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.chatView.Init()}
	if id := m.config.Server.ConversationID; id != "" {
		cmds = append(cmds, m.loadHistoryCmd(id))
	}
	return tea.Batch(cmds...)
}

// Update routes messages: stream lifecycle here, everything else to the view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chat.StreamRequestMsg:
		ctx, cancel := context.WithCancel(context.Background())
		m.cancelStream = cancel
		return m, m.streamCmd(ctx, msg)

	case chat.CancelStreamMsg:
		if m.cancelStream != nil {
			m.cancelStream()
			m.cancelStream = nil
		}
		return m, nil

	case chat.StreamCompleteMsg, chat.StreamErrorMsg:
		m.cancelStream = nil
	}

	var cmd tea.Cmd
	m.chatView, cmd = m.chatView.Update(msg)
	return m, cmd
}

// View renders the chat view.
func (m Model) View() string {
	return m.chatView.View()
}

// =============================================================================
// STREAMING
// =============================================================================

// streamCmd opens the stream and pumps it through the ingestor. Chunks are
// posted to the store by the ingestor itself; the program only learns about
// redraw points and the final outcome.
func (m Model) streamCmd(ctx context.Context, req chat.StreamRequestMsg) tea.Cmd {
	client := m.client
	st := m.store
	conversationID := m.config.Server.ConversationID

	return func() tea.Msg {
		defer st.SetStreaming(false)

		body, err := client.StreamQuery(ctx, req.Query, conversationID)
		if err != nil {
			applyFallback(st, req.ChatID, req.MessageID)
			return chat.StreamErrorMsg{MessageID: req.MessageID, Err: err}
		}
		defer body.Close()

		ing := stream.NewIngestor(st, req.ChatID, req.MessageID)
		err = ing.Run(ctx, body, func(chunk stream.Chunk) {
			send(chat.StreamChunkMsg{MessageID: req.MessageID, Chunk: chunk})
		})

		switch {
		case err == nil:
			// A stream that ended without a terminal chunk still freezes
			// the message with whatever content arrived.
			finishMessage(st, req.ChatID, req.MessageID)
			return chat.StreamCompleteMsg{MessageID: req.MessageID}

		case errors.Is(err, context.Canceled):
			// User cancel: keep partial content, freeze the message.
			finishMessage(st, req.ChatID, req.MessageID)
			return chat.StreamCompleteMsg{MessageID: req.MessageID}

		default:
			applyFallback(st, req.ChatID, req.MessageID)
			return chat.StreamErrorMsg{MessageID: req.MessageID, Err: err}
		}
	}
}

// finishMessage clears the streaming flag without touching content.
func finishMessage(st *store.Store, chatID, messageID string) {
	done := false
	st.UpdateMessage(chatID, messageID, store.MessagePatch{IsStreaming: &done})
}

// applyFallback freezes the partial reply as it stands and appends the
// user-facing failure notice as its own assistant message. Content that
// already streamed in is kept, not replaced.
func applyFallback(st *store.Store, chatID, messageID string) {
	finishMessage(st, chatID, messageID)
	st.AddMessage(chatID, store.NewAssistantError(fallbackNotice))
}

// =============================================================================
// HISTORY BOOTSTRAP
// =============================================================================

// loadHistoryCmd fetches past turns for the configured conversation.
func (m Model) loadHistoryCmd(conversationID string) tea.Cmd {
	client := m.client
	timeout := time.Duration(m.config.Server.TimeoutSecs) * time.Second

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		turns, err := client.History(ctx, conversationID)
		return chat.HistoryLoadedMsg{ChatID: conversationID, Turns: turns, Err: err}
	}
}
