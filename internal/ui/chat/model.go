// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	store "github.com/mhollis/codechat-tui/internal/chat"
	"github.com/mhollis/codechat-tui/internal/config"
	"github.com/mhollis/codechat-tui/internal/markdown"
	"github.com/mhollis/codechat-tui/internal/ui/components"
	"github.com/mhollis/codechat-tui/internal/ui/styles"
)

// redrawRate caps viewport refreshes during streaming. Chunks can arrive far
// faster than the terminal can usefully repaint.
const redrawRate = 30

// State represents the current chat view state.
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateSnippets
	StateHelp
)

// Model is the Bubble Tea model for the chat view.
type Model struct {
	state State
	theme *styles.Theme

	width  int
	height int
	ready  bool

	// Conversation state
	store          *store.Store
	streamingMsgID string
	lastError      string

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	// Streaming redraw throttle
	redraw *rate.Limiter

	// Snippet panel
	snippets     []markdown.CodeSnippet
	snippetIndex int

	// UI settings from config
	showTokens  bool
	syntaxStyle string
	lineNumbers bool
	compact     bool
}

// New creates a chat view over the given store and configuration.
func New(theme *styles.Theme, st *store.Store, cfg *config.Config) Model {
	input := textinput.New()
	input.Placeholder = "Ask about your code..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.PlaceholderStyle = theme.InputPlaceholder
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Streaming

	return Model{
		state:       StateIdle,
		theme:       theme,
		store:       st,
		input:       input,
		spinner:     sp,
		keyMap:      DefaultKeyMap(),
		redraw:      rate.NewLimiter(rate.Limit(redrawRate), 1),
		showTokens:  cfg.UI.ShowTokens,
		syntaxStyle: cfg.UI.SyntaxStyle,
		lineNumbers: cfg.UI.ShowLineNumbers,
		compact:     cfg.UI.CompactMode,
	}
}

// Init returns the initial command for the chat view.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Store exposes the underlying conversation store.
func (m Model) Store() *store.Store {
	return m.store
}

// =============================================================================
// VIEWPORT CONTENT
// =============================================================================

// refreshViewport rebuilds the viewport content from store state.
// When follow is true the viewport scrolls to the bottom afterwards.
func (m *Model) refreshViewport(follow bool) {
	if !m.ready {
		return
	}

	current, ok := m.store.CurrentChat()
	if !ok {
		m.viewport.SetContent(m.emptyState())
		return
	}

	gap := "\n\n"
	if m.compact {
		gap = "\n"
	}

	var parts []string
	for _, msg := range current.Messages {
		parts = append(parts, components.RenderMessage(m.theme, msg, m.viewport.Width))
	}

	m.viewport.SetContent(strings.Join(parts, gap))
	if follow {
		m.viewport.GotoBottom()
	}
}

// emptyState is shown before the first message of a session.
func (m *Model) emptyState() string {
	title := m.theme.HeaderTitle.Render("codechat")
	hint := m.theme.HeaderSubtitle.Render("Type a question and press Enter to start a chat.")
	return "\n" + title + "\n\n" + hint
}

// openSnippets loads the snippet panel from the newest frozen assistant
// message of the current chat. Returns false when there is nothing to show.
func (m *Model) openSnippets() bool {
	current, ok := m.store.CurrentChat()
	if !ok {
		return false
	}

	// Walk backwards to the newest assistant message that is not mid-stream.
	for i := len(current.Messages) - 1; i >= 0; i-- {
		msg := current.Messages[i]
		if msg.Role != store.RoleAssistant || msg.IsStreaming {
			continue
		}
		snippets, ok := m.store.Snippets(current.ID, msg.ID)
		if !ok || len(snippets) == 0 {
			return false
		}
		m.snippets = snippets
		m.snippetIndex = 0
		m.state = StateSnippets
		return true
	}
	return false
}
