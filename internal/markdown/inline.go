// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown segments assistant message text into structural blocks
// and extracts addressable code snippets.
package markdown

import "strings"

// =============================================================================
// INLINE SPANS
// =============================================================================

// SpanStyle identifies the formatting of one inline span.
type SpanStyle int

const (
	SpanPlain SpanStyle = iota
	SpanCode            // `code`
	SpanBold            // **bold**
	SpanItalic          // *italic*
)

// Span is one run of text with a single style. Spans are non-overlapping
// and non-nested; a paragraph's text is the concatenation of its spans'
// text with the markers removed.
type Span struct {
	Style SpanStyle
	Text  string
}

// ParseInline splits text into styled spans. Markers are resolved by
// sequential replacement in priority order: code spans first, then bold,
// then italic. An unmatched marker is kept as literal text.
func ParseInline(text string) []Span {
	var spans []Span

	rest := text
	for {
		open := strings.Index(rest, "`")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open+1:], "`")
		if end < 0 {
			break
		}

		spans = append(spans, emphasisSpans(rest[:open])...)
		code := rest[open+1 : open+1+end]
		if code == "" {
			// `` carries no content; keep the markers literal
			spans = appendPlain(spans, "``")
		} else {
			spans = append(spans, Span{Style: SpanCode, Text: code})
		}
		rest = rest[open+end+2:]
	}
	return append(spans, emphasisSpans(rest)...)
}

// emphasisSpans resolves bold then italic markers in text already known to
// contain no code spans.
func emphasisSpans(text string) []Span {
	var spans []Span

	rest := text
	for {
		open := strings.Index(rest, "**")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open+2:], "**")
		if end < 0 {
			break
		}

		spans = append(spans, italicSpans(rest[:open])...)
		spans = append(spans, Span{Style: SpanBold, Text: rest[open+2 : open+2+end]})
		rest = rest[open+end+4:]
	}
	return append(spans, italicSpans(rest)...)
}

// italicSpans resolves single-asterisk markers in text already stripped of
// code and bold spans.
func italicSpans(text string) []Span {
	var spans []Span

	rest := text
	for {
		open := strings.Index(rest, "*")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open+1:], "*")
		if end < 0 {
			break
		}

		spans = appendPlain(spans, rest[:open])
		spans = append(spans, Span{Style: SpanItalic, Text: rest[open+1 : open+1+end]})
		rest = rest[open+end+2:]
	}
	return appendPlain(spans, rest)
}

// appendPlain appends a plain span, dropping empty text.
func appendPlain(spans []Span, text string) []Span {
	if text == "" {
		return spans
	}
	return append(spans, Span{Style: SpanPlain, Text: text})
}

// SpanText returns the concatenated text of a span list with markers removed.
func SpanText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
