// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream reassembles a server-pushed event stream into one growing
// assistant message.
//
// The wire format is line-oriented: each event frame is a JSON Chunk,
// optionally prefixed with an SSE "data:" marker. Blank frames are
// discarded and malformed frames are logged and skipped: transport noise
// must not abort a stream.
//
// The Ingestor is the per-stream state machine (OPEN -> chunk* -> DONE or
// ERROR): it folds chunks into an accumulated content string in strict
// arrival order and posts a message patch to the chat store after every
// chunk. An in-band error chunk aborts the stream; no chunk after it is
// applied. The final content of a cleanly terminated stream is exactly the
// concatenation of every text delta, in order, nothing dropped or
// duplicated.
package stream
