// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the assistant backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeBadStatus
	ErrTypeInvalidResponse
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL of the assistant backend (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration

	// StreamTimeout for establishing a streaming connection (default: 10s).
	// Once established, the stream itself is unbounded; it ends with the
	// terminal chunk or context cancellation.
	StreamTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:8000",
		Timeout:       30 * time.Second,
		StreamTimeout: 10 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the assistant backend.
// Safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	// separate client without a global timeout: streams are long-lived
	streamClient *http.Client
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client, filling defaults for zero values.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.StreamTimeout == 0 {
		config.StreamTimeout = 10 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		streamClient: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: config.StreamTimeout,
			},
		},
	}
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// STREAMING QUERY
// =============================================================================

// streamRequest is the body of the streaming query endpoint.
type streamRequest struct {
	Query          string `json:"query"`
	ConversationID string `json:"conversation_id"`
}

// StreamQuery opens a streaming response for a query within a conversation.
// The returned body is a line-oriented chunk stream; the caller owns it and
// must close it. Cancelling ctx aborts the stream.
func (c *Client) StreamQuery(ctx context.Context, query, conversationID string) (io.ReadCloser, error) {
	body, err := json.Marshal(streamRequest{
		Query:          query,
		ConversationID: conversationID,
	})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "encoding stream request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/api/v1/query/stream", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "building stream request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "connecting to backend", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "stream request failed with status " + strconv.Itoa(resp.StatusCode),
		}
	}

	return resp.Body, nil
}

// =============================================================================
// HISTORY FETCH
// =============================================================================

// HistoryTurn is one persisted exchange: the user's query and the
// assistant's full response.
type HistoryTurn struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// historyResponse is the body of the history endpoint.
type historyResponse struct {
	Messages []HistoryTurn `json:"messages"`
}

// History fetches the stored turns of a conversation. A 404 means the
// conversation has no history and returns (nil, nil).
func (c *Client) History(ctx context.Context, conversationID string) ([]HistoryTurn, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"/api/v1/conversations/"+conversationID+"/history", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "building history request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "connecting to backend", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "history request failed with status " + strconv.Itoa(resp.StatusCode),
		}
	}

	var parsed historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "decoding history response", Cause: err}
	}
	return parsed.Messages, nil
}
