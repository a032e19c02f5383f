// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/mhollis/codechat-tui/internal/chat"
	"github.com/mhollis/codechat-tui/internal/markdown"
	"github.com/mhollis/codechat-tui/internal/ui/styles"
)

// streamCursor marks the insertion point of an in-flight response.
const streamCursor = "▌"

// =============================================================================
// MESSAGE RENDERER
// =============================================================================

// RenderMessage renders a chat message as a styled bubble with the role
// label above it. Assistant content is segmented into markdown blocks;
// user content is rendered verbatim.
func RenderMessage(theme *styles.Theme, msg *chat.Message, maxWidth int) string {
	label := theme.RoleLabel.Render(msg.Role.DisplayName())
	ts := theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	header := label + " " + ts

	innerWidth := maxWidth - 8
	if innerWidth < 20 {
		innerWidth = 20
	}

	var body string
	if msg.Role == chat.RoleAssistant {
		body = RenderMarkdown(theme, msg.Content, innerWidth)
	} else {
		body = msg.Content
	}

	if msg.IsStreaming {
		body += streamCursor
	}

	bubble := theme.AssistantBubble
	if msg.Role == chat.RoleUser {
		bubble = theme.UserBubble
	}

	return header + "\n" + bubble.MaxWidth(maxWidth).Render(body)
}

// RenderMarkdown renders message text block by block: headings, lists,
// paragraphs with inline emphasis, and syntax-highlighted code blocks.
func RenderMarkdown(theme *styles.Theme, text string, maxWidth int) string {
	blocks := markdown.Format(text)
	if len(blocks) == 0 {
		return text
	}

	var out []string
	for _, block := range blocks {
		switch block.Type {
		case markdown.BlockHeading:
			out = append(out, renderHeading(theme, block))
		case markdown.BlockParagraph:
			out = append(out, renderSpans(theme, block.Spans))
		case markdown.BlockList:
			out = append(out, renderList(theme, block))
		case markdown.BlockCode:
			out = append(out, RenderCodeBlock(theme, block.Language, block.Code, maxWidth))
		case markdown.BlockBreak:
			out = append(out, "")
		}
	}

	return strings.Join(out, "\n")
}

func renderHeading(theme *styles.Theme, block markdown.Block) string {
	switch block.Level {
	case 1:
		return theme.Heading1.Render(block.Text)
	case 2:
		return theme.Heading2.Render(block.Text)
	default:
		return theme.Heading3.Render(block.Text)
	}
}

func renderList(theme *styles.Theme, block markdown.Block) string {
	var lines []string
	for i, item := range block.Items {
		marker := theme.ListBullet.Render("•")
		if block.Ordered {
			marker = theme.ListBullet.Render(fmt.Sprintf("%d.", i+1))
		}
		lines = append(lines, "  "+marker+" "+renderSpans(theme, item.Spans))
	}
	return strings.Join(lines, "\n")
}

// renderSpans applies inline emphasis styling to a parsed span sequence.
func renderSpans(theme *styles.Theme, spans []markdown.Span) string {
	var b strings.Builder
	for _, span := range spans {
		switch span.Style {
		case markdown.SpanCode:
			b.WriteString(theme.InlineCode.Render(span.Text))
		case markdown.SpanBold:
			b.WriteString(theme.BoldText.Render(span.Text))
		case markdown.SpanItalic:
			b.WriteString(theme.ItalicText.Render(span.Text))
		default:
			b.WriteString(span.Text)
		}
	}
	return b.String()
}
