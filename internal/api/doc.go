// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the assistant backend.
//
// Two endpoints are consumed: the streaming query endpoint, which answers a
// POST with a line-oriented event stream of chunks, and the conversation
// history endpoint, where a 404 means "no history", not an error. The
// client returns the raw stream body; parsing belongs to the stream
// package.
package api
