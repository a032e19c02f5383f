// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateWidth(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := TruncateWidth(long, 50)
	if runewidth.StringWidth(got) != 50 {
		t.Errorf("truncated width = %d, want 50", runewidth.StringWidth(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated string should end with ellipsis, got %q", got)
	}

	// CJK characters are 2 columns wide.
	cjk := strings.Repeat("日", 40)
	got = TruncateWidth(cjk, 50)
	if runewidth.StringWidth(got) > 50 {
		t.Errorf("CJK truncated width = %d, want <= 50", runewidth.StringWidth(got))
	}

	// Short strings pass through verbatim.
	if got := TruncateWidth("short", 50); got != "short" {
		t.Errorf("TruncateWidth short = %q, want 'short'", got)
	}
	if got := TruncateWidth("hello", 0); got != "" {
		t.Errorf("TruncateWidth zero max = %q, want empty", got)
	}
	if got := TruncateWidth("hello", 2); got != "he" {
		t.Errorf("TruncateWidth tiny max = %q, want 'he'", got)
	}
}
