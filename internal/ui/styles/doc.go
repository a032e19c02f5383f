// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the codechat TUI.
//
// All colors use Lip Gloss AdaptiveColor so the palette adjusts to light and
// dark terminal backgrounds automatically. The Theme type bundles the styled
// components used across the application and detects the terminal's color
// capability at startup.
package styles
