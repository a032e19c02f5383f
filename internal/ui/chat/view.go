// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	store "github.com/mhollis/codechat-tui/internal/chat"
	"github.com/mhollis/codechat-tui/internal/markdown"
	"github.com/mhollis/codechat-tui/internal/ui/components"
)

// View renders the chat interface.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.state {
	case StateSnippets:
		return m.snippetView()
	case StateHelp:
		return m.helpView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.viewport.View(),
		m.inputView(),
		m.statusView(),
	)
}

// =============================================================================
// LAYOUT SECTIONS
// =============================================================================

func (m Model) headerView() string {
	title := "codechat"
	if current, ok := m.store.CurrentChat(); ok {
		title = current.Title
	}
	return m.theme.Header.Width(m.width).Render(title)
}

func (m Model) inputView() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

func (m Model) statusView() string {
	var left string
	switch {
	case m.lastError != "":
		left = m.theme.ErrorTitle.Render(m.lastError)
	case m.state == StateStreaming:
		left = m.spinner.View() + m.theme.Streaming.Render(" streaming")
	default:
		left = m.shortcutHints()
	}

	right := m.usageSummary()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) shortcutHints() string {
	var parts []string
	for _, binding := range m.keyMap.ShortHelp() {
		h := binding.Help()
		parts = append(parts,
			m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

// usageSummary reports token totals for the newest completed reply.
func (m Model) usageSummary() string {
	if !m.showTokens {
		return ""
	}
	current, ok := m.store.CurrentChat()
	if !ok {
		return ""
	}
	for i := len(current.Messages) - 1; i >= 0; i-- {
		msg := current.Messages[i]
		if msg.Role == store.RoleAssistant && msg.Usage != nil {
			return m.theme.TokenUsage.Render(
				fmt.Sprintf("%d tokens", msg.Usage.TotalTokens))
		}
	}
	return ""
}

// =============================================================================
// SNIPPET PANEL
// =============================================================================

func (m Model) snippetView() string {
	title := m.theme.SnippetTitle.Render(markdown.SnippetSummary(m.snippets))

	var items []string
	for i, snippet := range m.snippets {
		line := fmt.Sprintf("%s  %s  lines %d-%d",
			snippet.ID, snippet.Language, snippet.StartLine, snippet.EndLine)
		if i == m.snippetIndex {
			items = append(items, m.theme.SnippetItemSelected.Render("> "+line))
		} else {
			items = append(items, m.theme.SnippetItem.Render("  "+line))
		}
	}

	var preview string
	if m.snippetIndex < len(m.snippets) {
		block := components.NewSnippetBlock(m.snippets[m.snippetIndex])
		block.MaxWidth = m.width - 8
		block.SyntaxStyle = m.syntaxStyle
		block.LineNumbers = m.lineNumbers
		preview = block.Render(m.theme)
	}

	hint := m.theme.SnippetMeta.Render("up/down select · Esc close")

	panel := m.theme.SnippetPanel.Width(m.width - 4).Render(
		title + "\n\n" + strings.Join(items, "\n") + "\n\n" + preview + "\n" + hint)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

func (m Model) helpView() string {
	title := m.theme.SnippetTitle.Render("Help")

	names := make([]string, 0, len(commandRegistry))
	for name := range commandRegistry {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	lines = append(lines, m.theme.HeaderSubtitle.Render("Commands"))
	for _, name := range names {
		lines = append(lines,
			m.theme.ShortcutKey.Render("/"+name)+"  "+m.theme.ShortcutDesc.Render(commandRegistry[name].help))
	}

	lines = append(lines, "", m.theme.HeaderSubtitle.Render("Keys"))
	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			lines = append(lines,
				m.theme.ShortcutKey.Render(h.Key)+"  "+m.theme.ShortcutDesc.Render(h.Desc))
		}
	}

	lines = append(lines, "", m.theme.SnippetMeta.Render("Press any key to close"))

	panel := m.theme.SnippetPanel.Width(m.width - 4).Render(
		title + "\n\n" + strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
