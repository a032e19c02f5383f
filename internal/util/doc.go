// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small string helpers shared across the application.
//
// String Utilities:
//   - TruncateWidth: display-width truncation with ellipsis (CJK aware)
package util
