// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown segments assistant message text into structural blocks
// and extracts addressable code snippets.
package markdown

import (
	"strconv"
	"strings"
)

// =============================================================================
// CODE SNIPPET TYPE
// =============================================================================

// CodeSnippet is one extracted code region, addressable by its 1-based,
// inclusive source line span within the message it came from.
type CodeSnippet struct {
	ID        string `json:"id"`
	Language  string `json:"language"`
	Content   string `json:"content"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// LineCount returns the number of lines in the snippet content.
func (s CodeSnippet) LineCount() int {
	if s.Content == "" {
		return 0
	}
	return strings.Count(s.Content, "\n") + 1
}

// =============================================================================
// EXTRACTION
// =============================================================================

// ExtractSnippets locates every fenced code region in text and returns the
// non-empty ones as snippets. Regions whose interior is whitespace-only are
// discarded. Snippet IDs are assigned sequentially per extraction pass, so
// extracting the same text twice yields identical snippets.
//
// StartLine is the source line of the opening fence; EndLine is the last
// source line of the region's interior. A fence left open at end of input is
// treated as implicitly closed and its interior is still extracted.
func ExtractSnippets(text string) []CodeSnippet {
	if text == "" {
		return nil
	}

	var snippets []CodeSnippet
	counter := 0

	for _, seg := range splitSegments(text) {
		if seg.fence == nil {
			continue
		}
		f := seg.fence

		content := trimBlankEdges(f.lines)
		if strings.TrimSpace(content) == "" {
			continue
		}

		counter++
		snippets = append(snippets, CodeSnippet{
			ID:        "snippet_" + strconv.Itoa(counter),
			Language:  NormalizeLanguage(f.info),
			Content:   content,
			StartLine: f.start,
			EndLine:   f.start + len(f.lines),
		})
	}

	return snippets
}

// HasSnippets is a fast check for whether text contains any fence marker.
func HasSnippets(text string) bool {
	return strings.Contains(text, fenceMarker)
}

// SnippetSummary returns a short human-readable summary of a snippet list,
// used as the artifact panel header.
func SnippetSummary(snippets []CodeSnippet) string {
	if len(snippets) == 0 {
		return "No code snippets"
	}

	if len(snippets) == 1 {
		s := snippets[0]
		return "1 " + s.Language + " snippet (" + strconv.Itoa(s.LineCount()) + " lines)"
	}

	seen := make(map[string]bool)
	var languages []string
	totalLines := 0
	for _, s := range snippets {
		if !seen[s.Language] {
			seen[s.Language] = true
			languages = append(languages, s.Language)
		}
		totalLines += s.LineCount()
	}

	return strconv.Itoa(len(snippets)) + " snippets (" +
		strings.Join(languages, ", ") + ") - " +
		strconv.Itoa(totalLines) + " lines total"
}
