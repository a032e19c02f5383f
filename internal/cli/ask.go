// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/mhollis/codechat-tui/internal/api"
	"github.com/mhollis/codechat-tui/internal/chat"
	"github.com/mhollis/codechat-tui/internal/config"
	"github.com/mhollis/codechat-tui/internal/markdown"
	"github.com/mhollis/codechat-tui/internal/stream"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for ask output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails.
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// IsStdoutTTY reports whether stdout is attached to a terminal.
func IsStdoutTTY() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk streams a single reply for the given query and prints it.
// Markdown rendering is applied only when stdout is a TTY, so piped output
// stays clean.
func HandleAsk(args Args) {
	if args.Query == "" {
		fmt.Fprintln(os.Stderr, "Error: ask requires a question")
		Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if args.ServerURL != "" {
		cfg.Server.BaseURL = args.ServerURL
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:       cfg.Server.BaseURL,
		Timeout:       time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		StreamTimeout: time.Duration(cfg.Server.StreamTimeoutSecs) * time.Second,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	body, err := client.StreamQuery(ctx, args.Query, cfg.Server.ConversationID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer body.Close()

	// A throwaway store keeps the ingestor contract intact for one reply.
	st := chat.NewStore()
	chatID := chat.NewChatID()
	if err := st.CreateChat(chatID, chat.DeriveTitle(args.Query)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	reply := chat.NewAssistantMessage()
	st.AddMessage(chatID, reply)

	ing := stream.NewIngestor(st, chatID, reply.ID)
	if err := ing.Run(ctx, body, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	content := ing.Content()
	if IsStdoutTTY() && !args.Plain {
		fmt.Print(renderMarkdown(content))
	} else {
		fmt.Println(content)
	}

	// Snippet summary goes to stderr so it never pollutes piped output.
	if snippets := markdown.ExtractSnippets(content); len(snippets) > 0 && IsStdoutTTY() {
		fmt.Fprintf(os.Stderr, "\n%s\n", markdown.SnippetSummary(snippets))
	}
}
