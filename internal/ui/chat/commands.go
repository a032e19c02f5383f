// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file implements slash commands typed into the chat input.

package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// CommandHandler processes a slash command with its arguments.
type CommandHandler func(m Model, args []string) (Model, tea.Cmd)

// commandEntry pairs a handler with its help text.
type commandEntry struct {
	handler CommandHandler
	help    string
}

var commandRegistry = map[string]commandEntry{
	"help":     {handleHelpCommand, "Show available commands and shortcuts"},
	"new":      {handleNewCommand, "Start a new chat"},
	"clear":    {handleNewCommand, "Alias for /new"},
	"snippets": {handleSnippetsCommand, "Browse code snippets from the latest reply"},
	"quit":     {handleQuitCommand, "Exit codechat"},
}

// handleCommand dispatches a slash command.
func (m Model) handleCommand(content string) (Model, tea.Cmd) {
	fields := strings.Fields(strings.TrimPrefix(content, "/"))
	if len(fields) == 0 {
		return m, nil
	}

	name := strings.ToLower(fields[0])
	entry, ok := commandRegistry[name]
	if !ok {
		m.lastError = "unknown command: /" + name + " (try /help)"
		return m, nil
	}
	return entry.handler(m, fields[1:])
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

func handleHelpCommand(m Model, args []string) (Model, tea.Cmd) {
	m.state = StateHelp
	return m, nil
}

func handleNewCommand(m Model, args []string) (Model, tea.Cmd) {
	return m.startNewChat(), nil
}

func handleSnippetsCommand(m Model, args []string) (Model, tea.Cmd) {
	if !m.openSnippets() {
		m.lastError = "no code snippets in the latest reply"
	}
	return m, nil
}

func handleQuitCommand(m Model, args []string) (Model, tea.Cmd) {
	return m, tea.Quit
}
