// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/mhollis/codechat-tui/internal/markdown"
	"github.com/mhollis/codechat-tui/internal/ui/styles"
)

// =============================================================================
// SNIPPET BLOCK RENDERER
// =============================================================================

// SnippetBlock renders an extracted code snippet with syntax highlighting,
// a language badge, and line numbers anchored at the snippet's position in
// the source message.
type SnippetBlock struct {
	Snippet     markdown.CodeSnippet
	MaxWidth    int
	SyntaxStyle string
	LineNumbers bool
}

// NewSnippetBlock creates a snippet block with default settings.
func NewSnippetBlock(snippet markdown.CodeSnippet) SnippetBlock {
	return SnippetBlock{
		Snippet:     snippet,
		MaxWidth:    80,
		SyntaxStyle: "monokai",
		LineNumbers: true,
	}
}

// Render renders the snippet with styling.
func (b SnippetBlock) Render(theme *styles.Theme) string {
	highlighted := highlightCode(b.Snippet.Content, b.Snippet.Language, b.SyntaxStyle)
	lines := strings.Split(highlighted, "\n")

	var rendered []string
	if b.LineNumbers {
		// Gutter width follows the largest line number so columns stay aligned.
		first := b.Snippet.StartLine + 1
		gutter := len(strconv.Itoa(first + len(lines) - 1))
		numStyle := theme.CodeLineNum.Width(gutter)
		for i, line := range lines {
			num := numStyle.Render(strconv.Itoa(first + i))
			rendered = append(rendered, num+line)
		}
	} else {
		rendered = lines
	}

	content := strings.Join(rendered, "\n")
	badge := theme.CodeLangBadge.Render(b.Snippet.Language)

	maxWidth := b.MaxWidth - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	return theme.CodeBlock.MaxWidth(maxWidth).Render(badge + "\n" + content)
}

// RenderCodeBlock renders a formatter code block (fence interior plus
// language) without line anchoring, for inline display in the chat view.
func RenderCodeBlock(theme *styles.Theme, language, code string, maxWidth int) string {
	highlighted := highlightCode(code, language, "monokai")

	badge := theme.CodeLangBadge.Render(language)
	if maxWidth < 20 {
		maxWidth = 20
	}
	return theme.CodeBlock.MaxWidth(maxWidth).Render(badge + "\n" + highlighted)
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightCode applies syntax highlighting to code using the chroma library.
// Returns the input unchanged when highlighting fails.
func highlightCode(code, language, styleName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	// Chroma emits a trailing newline; the caller joins lines itself.
	return strings.TrimSuffix(buf.String(), "\n")
}

// RenderInlineCode renders inline code with a subtle background.
func RenderInlineCode(theme *styles.Theme, code string) string {
	return theme.InlineCode.Render(code)
}
