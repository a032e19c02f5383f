// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown segments assistant message text into structural blocks
// and extracts addressable code snippets.
package markdown

import (
	"reflect"
	"testing"
)

// =============================================================================
// EXTRACTION TESTS
// =============================================================================

func TestExtractSnippets_Single(t *testing.T) {
	text := "pre\n```py\nx=1\n```\npost"

	snippets := ExtractSnippets(text)
	if len(snippets) != 1 {
		t.Fatalf("got %d snippets, want 1", len(snippets))
	}

	s := snippets[0]
	if s.Language != "python" {
		t.Errorf("Language = %q, want 'python'", s.Language)
	}
	if s.Content != "x=1" {
		t.Errorf("Content = %q, want 'x=1'", s.Content)
	}
	if s.StartLine != 2 {
		t.Errorf("StartLine = %d, want 2", s.StartLine)
	}
	if s.EndLine != 3 {
		t.Errorf("EndLine = %d, want 3", s.EndLine)
	}
}

func TestExtractSnippets_Empty(t *testing.T) {
	if got := ExtractSnippets(""); got != nil {
		t.Errorf("empty text should yield nil, got %v", got)
	}
	if got := ExtractSnippets("no code here"); got != nil {
		t.Errorf("fence-free text should yield nil, got %v", got)
	}
}

func TestExtractSnippets_WhitespaceOnlyDiscarded(t *testing.T) {
	text := "before\n```\n   \n```\nafter"
	if got := ExtractSnippets(text); len(got) != 0 {
		t.Errorf("whitespace-only fenced block should yield 0 snippets, got %d", len(got))
	}
}

func TestExtractSnippets_Multiple(t *testing.T) {
	text := "```go\na := 1\nb := 2\n```\nmiddle\n```js\nlet x;\n```"

	snippets := ExtractSnippets(text)
	if len(snippets) != 2 {
		t.Fatalf("got %d snippets, want 2", len(snippets))
	}

	if snippets[0].Language != "go" || snippets[0].Content != "a := 1\nb := 2" {
		t.Errorf("first snippet = %+v", snippets[0])
	}
	if snippets[0].StartLine != 1 || snippets[0].EndLine != 3 {
		t.Errorf("first span = %d-%d, want 1-3", snippets[0].StartLine, snippets[0].EndLine)
	}

	if snippets[1].Language != "javascript" || snippets[1].Content != "let x;" {
		t.Errorf("second snippet = %+v", snippets[1])
	}
	if snippets[1].StartLine != 6 || snippets[1].EndLine != 7 {
		t.Errorf("second span = %d-%d, want 6-7", snippets[1].StartLine, snippets[1].EndLine)
	}
}

func TestExtractSnippets_DefaultLanguage(t *testing.T) {
	snippets := ExtractSnippets("```\nplain\n```")
	if len(snippets) != 1 {
		t.Fatalf("got %d snippets, want 1", len(snippets))
	}
	if snippets[0].Language != "text" {
		t.Errorf("Language = %q, want 'text'", snippets[0].Language)
	}
}

func TestExtractSnippets_UnterminatedFence(t *testing.T) {
	// An open fence at end of input is implicitly closed; content is kept.
	snippets := ExtractSnippets("intro\n```go\nx := 1")
	if len(snippets) != 1 {
		t.Fatalf("got %d snippets, want 1", len(snippets))
	}
	if snippets[0].Content != "x := 1" {
		t.Errorf("Content = %q, want 'x := 1'", snippets[0].Content)
	}
	if snippets[0].StartLine != 2 || snippets[0].EndLine != 3 {
		t.Errorf("span = %d-%d, want 2-3", snippets[0].StartLine, snippets[0].EndLine)
	}
}

func TestExtractSnippets_BlankEdgeTrimmed(t *testing.T) {
	snippets := ExtractSnippets("```py\n\nx=1\n\n```")
	if len(snippets) != 1 {
		t.Fatalf("got %d snippets, want 1", len(snippets))
	}
	if snippets[0].Content != "x=1" {
		t.Errorf("Content = %q, want 'x=1'", snippets[0].Content)
	}
}

func TestExtractSnippets_Idempotent(t *testing.T) {
	text := "a\n```go\nx := 1\n```\nb\n```py\ny = 2\n```"
	first := ExtractSnippets(text)
	second := ExtractSnippets(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// =============================================================================
// LANGUAGE NORMALIZATION TESTS
// =============================================================================

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"py", "python"},
		{"python3", "python"},
		{"js", "javascript"},
		{"jsx", "javascript"},
		{"node", "javascript"},
		{"ts", "typescript"},
		{"tsx", "typescript"},
		{"sh", "shell"},
		{"bash", "shell"},
		{"zsh", "shell"},
		{"fish", "shell"},
		{"rb", "ruby"},
		{"rs", "rust"},
		{"kt", "kotlin"},
		{"yml", "yaml"},
		{"md", "markdown"},
		{"c++", "cpp"},
		{"", "text"},
		{"   ", "text"},
		{"Go", "go"},
		{"COBOL", "cobol"}, // unrecognized: lower-cased passthrough
	}

	for _, tt := range tests {
		if got := NormalizeLanguage(tt.in); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// SUMMARY TESTS
// =============================================================================

func TestSnippetSummary(t *testing.T) {
	if got := SnippetSummary(nil); got != "No code snippets" {
		t.Errorf("empty summary = %q", got)
	}

	one := ExtractSnippets("```go\na\nb\n```")
	if got := SnippetSummary(one); got != "1 go snippet (2 lines)" {
		t.Errorf("single summary = %q", got)
	}

	two := ExtractSnippets("```go\na\n```\n```py\nb\nc\n```")
	if got := SnippetSummary(two); got != "2 snippets (go, python) - 3 lines total" {
		t.Errorf("multi summary = %q", got)
	}
}

func TestHasSnippets(t *testing.T) {
	if HasSnippets("plain text") {
		t.Error("plain text should have no snippets")
	}
	if !HasSnippets("see ```go\nx\n```") {
		t.Error("fenced text should report snippets")
	}
}
