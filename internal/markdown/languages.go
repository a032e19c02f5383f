// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown segments assistant message text into structural blocks
// and extracts addressable code snippets.
package markdown

import "strings"

// DefaultLanguage is used when a fence carries no recognizable tag.
const DefaultLanguage = "text"

// languageAliases maps common fence tags to canonical language identifiers
// understood by the code display widget.
var languageAliases = map[string]string{
	// JavaScript variants
	"js":     "javascript",
	"jsx":    "javascript",
	"node":   "javascript",
	"nodejs": "javascript",

	// TypeScript variants
	"ts":  "typescript",
	"tsx": "typescript",

	// Python variants
	"py":      "python",
	"python3": "python",

	// Web technologies
	"htm":  "html",
	"html": "html",
	"scss": "scss",
	"sass": "sass",
	"less": "less",

	// Shell
	"sh":   "shell",
	"bash": "shell",
	"zsh":  "shell",
	"fish": "shell",

	// Database
	"mysql":      "sql",
	"postgres":   "sql",
	"postgresql": "sql",

	// Configuration
	"yml": "yaml",

	// Other languages
	"c++":    "cpp",
	"cs":     "csharp",
	"rb":     "ruby",
	"rs":     "rust",
	"kt":     "kotlin",
	"md":     "markdown",
	"tex":    "latex",
	"make":   "makefile",
}

// NormalizeLanguage maps a raw fence tag to a canonical lower-case language
// identifier. Unrecognized tags pass through lower-cased; an empty tag maps
// to DefaultLanguage.
func NormalizeLanguage(tag string) string {
	lang := strings.ToLower(strings.TrimSpace(tag))
	if lang == "" {
		return DefaultLanguage
	}
	if canonical, ok := languageAliases[lang]; ok {
		return canonical
	}
	return lang
}
