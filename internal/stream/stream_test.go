// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream reassembles a server-pushed event stream into one growing
// assistant message.
package stream

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhollis/codechat-tui/internal/chat"
)

// =============================================================================
// READER TESTS
// =============================================================================

func TestReader_PlainFrames(t *testing.T) {
	input := `{"text":"Hel","model":"m1","done":false}
{"text":"lo","model":"m1","done":true}
`
	r := NewReader(strings.NewReader(input))

	first, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Hel", first.Text)
	assert.False(t, first.Done)

	second, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "lo", second.Text)
	assert.True(t, second.Done)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_SSEPrefixStripped(t *testing.T) {
	input := "data: {\"text\":\"hi\",\"done\":true}\n"
	r := NewReader(strings.NewReader(input))

	chunk, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, chunk)
	assert.Equal(t, "hi", chunk.Text)
}

func TestReader_BlankFramesDiscarded(t *testing.T) {
	input := "\n\n{\"text\":\"x\",\"done\":true}\n"
	r := NewReader(strings.NewReader(input))

	for i := 0; i < 2; i++ {
		chunk, err := r.Next()
		require.NoError(t, err)
		assert.Nil(t, chunk, "blank frame should yield no chunk")
	}

	chunk, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, chunk)
	assert.Equal(t, "x", chunk.Text)
}

func TestReader_MalformedFrameSkipped(t *testing.T) {
	input := "not json at all\n{\"text\":\"ok\",\"done\":true}\n"
	r := NewReader(strings.NewReader(input))

	chunk, err := r.Next()
	require.NoError(t, err)
	assert.Nil(t, chunk, "malformed frame should be skipped, not fatal")

	chunk, err = r.Next()
	require.NoError(t, err)
	require.NotNil(t, chunk)
	assert.Equal(t, "ok", chunk.Text)
}

func TestReader_FinalUnterminatedLine(t *testing.T) {
	input := `{"text":"tail","done":true}` // no trailing newline
	r := NewReader(strings.NewReader(input))

	chunk, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, chunk)
	assert.Equal(t, "tail", chunk.Text)
}

// =============================================================================
// INGESTOR TESTS
// =============================================================================

// recordingStore captures every patch posted by the ingestor.
type recordingStore struct {
	patches []chat.MessagePatch
}

func (r *recordingStore) UpdateMessage(chatID, messageID string, patch chat.MessagePatch) bool {
	r.patches = append(r.patches, patch)
	return true
}

func TestIngestor_FoldsChunks(t *testing.T) {
	store := &recordingStore{}
	in := NewIngestor(store, "c1", "m1")

	done, err := in.Apply(Chunk{Text: "Hel", Model: "m1"})
	require.NoError(t, err)
	assert.False(t, done)

	done, err = in.Apply(Chunk{
		Text: "lo",
		Done: true,
		Usage: &chat.Usage{
			PromptTokens:     10,
			CompletionTokens: 2,
			TotalTokens:      12,
		},
	})
	require.NoError(t, err)
	assert.True(t, done)

	assert.Equal(t, "Hello", in.Content())
	assert.Equal(t, "m1", in.Model())
	require.NotNil(t, in.Usage())
	assert.Equal(t, 12, in.Usage().TotalTokens)

	// Every chunk posted a patch; the last one freezes the message.
	require.Len(t, store.patches, 2)
	last := store.patches[1]
	assert.Equal(t, "Hello", *last.Content)
	assert.False(t, *last.IsStreaming)
	require.NotNil(t, last.Usage)
	assert.Equal(t, 12, last.Usage.TotalTokens)

	first := store.patches[0]
	assert.Equal(t, "Hel", *first.Content)
	assert.True(t, *first.IsStreaming)
	assert.Nil(t, first.Usage)
}

func TestIngestor_ErrorChunkAborts(t *testing.T) {
	store := &recordingStore{}
	in := NewIngestor(store, "c1", "m1")

	_, err := in.Apply(Chunk{Text: "partial"})
	require.NoError(t, err)

	done, err := in.Apply(Chunk{Error: "boom"})
	assert.True(t, done)
	require.Error(t, err)

	var streamErr *Error
	require.ErrorAs(t, err, &streamErr)
	assert.Equal(t, "boom", streamErr.Reason)

	// The error chunk itself posts no patch, and later chunks are ignored.
	patchesAtError := len(store.patches)
	done, err = in.Apply(Chunk{Text: "after"})
	assert.True(t, done)
	assert.NoError(t, err)
	assert.Len(t, store.patches, patchesAtError)
	assert.Equal(t, "partial", in.Content())
}

func TestIngestor_Run_RoundTrip(t *testing.T) {
	// Final content equals the exact concatenation of every text delta.
	input := `{"text":"one ","model":"m","done":false}
{"text":"","done":false}
{"text":"two ","done":false}
{"text":"three","done":true,"usage":{"prompt_tokens":1,"completion_tokens":3,"total_tokens":4}}
`
	store := &recordingStore{}
	in := NewIngestor(store, "c1", "m1")

	var seen []Chunk
	err := in.Run(context.Background(), strings.NewReader(input), func(c Chunk) {
		seen = append(seen, c)
	})
	require.NoError(t, err)

	assert.Equal(t, "one two three", in.Content())
	assert.True(t, in.Done())
	assert.Len(t, seen, 4)

	// Patches applied strictly in arrival order.
	require.Len(t, store.patches, 4)
	assert.Equal(t, "one ", *store.patches[0].Content)
	assert.Equal(t, "one ", *store.patches[1].Content)
	assert.Equal(t, "one two ", *store.patches[2].Content)
	assert.Equal(t, "one two three", *store.patches[3].Content)
}

func TestIngestor_Run_ErrorMidStream(t *testing.T) {
	input := `{"text":"a","done":false}
{"error":"backend overloaded"}
{"text":"never","done":true}
`
	store := &recordingStore{}
	in := NewIngestor(store, "c1", "m1")

	err := in.Run(context.Background(), strings.NewReader(input), nil)
	require.Error(t, err)

	var streamErr *Error
	require.ErrorAs(t, err, &streamErr)
	assert.Equal(t, "backend overloaded", streamErr.Reason)
	assert.Equal(t, "a", in.Content(), "no chunk after the error is applied")
}

func TestIngestor_Run_EOFWithoutDone(t *testing.T) {
	// A dropped connection: accumulated content stands, no error from the
	// fold itself (the transport layer reports the drop).
	input := `{"text":"partial","done":false}
`
	store := &recordingStore{}
	in := NewIngestor(store, "c1", "m1")

	err := in.Run(context.Background(), strings.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, "partial", in.Content())
	assert.False(t, in.Done())
}

func TestIngestor_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := NewIngestor(&recordingStore{}, "c1", "m1")
	err := in.Run(ctx, strings.NewReader("{\"text\":\"x\",\"done\":false}\n"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIngestor_ModelLastNonEmptyWins(t *testing.T) {
	store := &recordingStore{}
	in := NewIngestor(store, "c1", "m1")

	in.Apply(Chunk{Text: "a", Model: "first"})
	in.Apply(Chunk{Text: "b"}) // empty model leaves the value alone
	in.Apply(Chunk{Text: "c", Model: "second", Done: true})

	assert.Equal(t, "second", in.Model())
}
