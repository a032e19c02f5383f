// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream reassembles a server-pushed event stream into one growing
// assistant message.
package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log"
)

// ssePrefix marks an event frame in SSE transport. The prefix is stripped
// before parsing; frames without it are parsed as-is.
var ssePrefix = []byte("data:")

// Reader parses a line-oriented chunk stream frame by frame.
type Reader struct {
	reader *bufio.Reader
}

// NewReader creates a Reader over a raw byte stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReader(r)}
}

// Next reads and parses the next frame. It returns (nil, nil) for frames
// that carry no chunk: blank lines and malformed JSON (logged and skipped).
// io.EOF signals a cleanly exhausted stream.
func (r *Reader) Next() (*Chunk, error) {
	line, err := r.reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			// Process a final unterminated line before reporting EOF.
			return r.parseFrame(line), nil
		}
		return nil, err
	}
	return r.parseFrame(line), nil
}

// parseFrame strips the SSE marker and decodes one frame.
func (r *Reader) parseFrame(line []byte) *Chunk {
	frame := bytes.TrimSpace(line)
	if len(frame) == 0 {
		return nil
	}

	if bytes.HasPrefix(frame, ssePrefix) {
		frame = bytes.TrimSpace(frame[len(ssePrefix):])
		if len(frame) == 0 {
			return nil
		}
	}

	var chunk Chunk
	if err := json.Unmarshal(frame, &chunk); err != nil {
		// Transport noise: skip the frame, keep the stream alive.
		log.Printf("stream: skipping malformed frame: %v", err)
		return nil
	}
	return &chunk
}
