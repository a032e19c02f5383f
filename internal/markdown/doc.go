// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown segments assistant message text into structural blocks
// and extracts addressable code snippets.
//
// The package has two consumers-facing entry points built on one shared
// fence scanner:
//
//   - Format: single-pass, line-oriented block segmentation producing an
//     ordered sequence of typed blocks (headings, lists, paragraphs, code
//     blocks, line breaks) with an inline span pass over non-code text.
//   - ExtractSnippets: derives code snippets with language tags and 1-based
//     source line spans directly from raw text, for the artifact panel.
//
// Both run over the same fence-state tracking, so a region the formatter
// renders as code is always the region the extractor indexes. A fence opened
// but never closed before end of input is implicitly closed: the collected
// interior is emitted as a code block (and snippet) rather than dropped.
//
// All functions are pure: formatting or extracting the same text twice
// yields identical results.
package markdown
