// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown segments assistant message text into structural blocks
// and extracts addressable code snippets.
package markdown

import "strings"

// fenceMarker delimits code regions. A line beginning with the marker
// toggles fence state; the remainder of the opening line is the info string.
const fenceMarker = "```"

// region is one fenced code region located by the scanner.
type region struct {
	info   string   // trimmed text after the opening marker ("py", "go", "")
	lines  []string // interior lines, verbatim
	start  int      // 1-based source line of the opening fence
	closed bool     // false if the fence was still open at end of input
}

// segment is one slice of the source: either a fenced region or a run of
// prose lines between regions. Exactly one of fence/lines is set.
type segment struct {
	fence *region
	lines []string
	start int // 1-based source line of the first line in the segment
}

// isFenceLine reports whether a line toggles fence state.
func isFenceLine(line string) bool {
	return strings.HasPrefix(line, fenceMarker)
}

// fenceInfo returns the trimmed info string of an opening fence line.
func fenceInfo(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, fenceMarker))
}

// splitSegments scans text once, tracking fence state explicitly, and
// returns prose and fenced segments in source order. This is the single
// fence-matching routine shared by Format and ExtractSnippets.
func splitSegments(text string) []segment {
	lines := strings.Split(text, "\n")

	var segs []segment
	var prose []string
	proseStart := 1
	var cur *region

	flushProse := func() {
		if len(prose) > 0 {
			segs = append(segs, segment{lines: prose, start: proseStart})
			prose = nil
		}
	}

	for i, line := range lines {
		n := i + 1

		if isFenceLine(line) {
			if cur == nil {
				flushProse()
				cur = &region{info: fenceInfo(line), start: n}
			} else {
				cur.closed = true
				segs = append(segs, segment{fence: cur, start: cur.start})
				cur = nil
			}
			continue
		}

		if cur != nil {
			cur.lines = append(cur.lines, line)
			continue
		}
		if len(prose) == 0 {
			proseStart = n
		}
		prose = append(prose, line)
	}

	// A fence still open at end of input is implicitly closed; its interior
	// is kept rather than dropped.
	if cur != nil {
		segs = append(segs, segment{fence: cur, start: cur.start})
	} else {
		flushProse()
	}

	return segs
}

// trimBlankEdges removes at most one leading and one trailing blank line
// from a fenced interior and joins the rest with newlines.
func trimBlankEdges(lines []string) string {
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
