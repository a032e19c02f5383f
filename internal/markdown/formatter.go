// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown segments assistant message text into structural blocks
// and extracts addressable code snippets.
package markdown

import "strings"

// =============================================================================
// BLOCK TYPES
// =============================================================================

// BlockType identifies the structural kind of a block.
type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockHeading
	BlockList
	BlockCode
	BlockBreak
)

// String returns the block type name, mainly for test failure output.
func (t BlockType) String() string {
	switch t {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockList:
		return "list"
	case BlockCode:
		return "code"
	case BlockBreak:
		return "break"
	default:
		return "unknown"
	}
}

// ListItem is one item of a list block.
type ListItem struct {
	Text  string // marker-stripped item text
	Spans []Span // inline formatting of the item text
}

// Block is one structural unit of formatted message text.
type Block struct {
	Type BlockType

	// Heading fields
	Level int    // 1-3
	Text  string // heading or raw paragraph text, marker stripped

	// Paragraph fields
	Spans []Span

	// List fields
	Items   []ListItem
	Ordered bool

	// Code fields
	Language string // normalized language tag
	Code     string // interior lines joined by newline, verbatim
}

// =============================================================================
// FORMATTER
// =============================================================================

// Format segments text into an ordered block sequence. It runs a single
// line-oriented scan with explicit fence state (shared with ExtractSnippets),
// then an inline span pass over paragraph and list-item text.
//
// Outside a fence, per-line precedence is: fence toggle, heading, list item,
// blank line, paragraph. Consecutive list items accumulate into one list
// block, flushed by the first non-list, non-blank line or end of input; a
// blank line inside a pending list neither flushes it nor emits a break.
// A fence left open at end of input is implicitly closed and emitted as a
// code block.
func Format(text string) []Block {
	if text == "" {
		return nil
	}

	var blocks []Block
	var pending *Block // open list block

	flushList := func() {
		if pending != nil {
			blocks = append(blocks, *pending)
			pending = nil
		}
	}

	for _, seg := range splitSegments(text) {
		if seg.fence != nil {
			flushList()
			blocks = append(blocks, Block{
				Type:     BlockCode,
				Language: NormalizeLanguage(seg.fence.info),
				Code:     strings.Join(seg.fence.lines, "\n"),
			})
			continue
		}

		for _, line := range seg.lines {
			if level, rest, ok := headingLine(line); ok {
				flushList()
				blocks = append(blocks, Block{Type: BlockHeading, Level: level, Text: rest})
				continue
			}

			if rest, ordered, ok := listItemLine(line); ok {
				if pending == nil {
					pending = &Block{Type: BlockList, Ordered: ordered}
				}
				// List-kind continuity is not enforced; the block takes the
				// kind of the most recent item.
				pending.Ordered = ordered
				pending.Items = append(pending.Items, ListItem{Text: rest, Spans: ParseInline(rest)})
				continue
			}

			if strings.TrimSpace(line) == "" {
				if pending == nil {
					blocks = append(blocks, Block{Type: BlockBreak})
				}
				continue
			}

			flushList()
			blocks = append(blocks, Block{Type: BlockParagraph, Text: line, Spans: ParseInline(line)})
		}
	}

	flushList()
	return blocks
}

// headingLine matches "# ", "## ", "### " prefixes.
func headingLine(line string) (level int, text string, ok bool) {
	switch {
	case strings.HasPrefix(line, "### "):
		return 3, line[4:], true
	case strings.HasPrefix(line, "## "):
		return 2, line[3:], true
	case strings.HasPrefix(line, "# "):
		return 1, line[2:], true
	}
	return 0, "", false
}

// listItemLine matches unordered ("* ", "- ", "+ ") and ordered ("1. ")
// markers, returning the marker-stripped text.
func listItemLine(line string) (text string, ordered, ok bool) {
	if len(line) >= 2 && (line[0] == '*' || line[0] == '-' || line[0] == '+') && line[1] == ' ' {
		return line[2:], false, true
	}

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && line[i] == '.' && line[i+1] == ' ' {
		return line[i+2:], true, true
	}
	return "", false, false
}
