// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the planrun plan API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jeranaias/planrun-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the plan API client.
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

// ErrorType categorizes client errors for handling. The state-machine
// layers above treat every one of these the same way (state unchanged,
// failure signalled); the distinction only matters for status display.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeNotFound
	ErrTypeServer
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "plan server is unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrNotFound    = &ClientError{Type: ErrTypeNotFound, Message: "plan not found"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the plan API client.
type ClientConfig struct {
	// BaseURL is the plan server base URL (default: http://127.0.0.1:8787).
	BaseURL string

	// Timeout for requests (default: 10s). Suggestion requests use their
	// own, longer timeout because the model is slow.
	Timeout time.Duration

	// SuggestTimeout for /suggest requests (default: 150s).
	SuggestTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:        "http://127.0.0.1:8787",
		Timeout:        10 * time.Second,
		SuggestTimeout: 150 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client speaks the planrun REST API. It satisfies planstore.Backend and
// is safe for concurrent use.
type Client struct {
	config      *ClientConfig
	httpClient  *http.Client
	suggestHTTP *http.Client
}

// NewClient creates a plan API client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a plan API client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8787"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.SuggestTimeout == 0 {
		config.SuggestTimeout = 150 * time.Second
	}

	return &Client{
		config:      config,
		httpClient:  &http.Client{Timeout: config.Timeout},
		suggestHTTP: &http.Client{Timeout: config.SuggestTimeout},
	}
}

// =============================================================================
// PLAN OPERATIONS
// =============================================================================

// ListPlans returns all plans in backend order.
func (c *Client) ListPlans(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreatePlan persists a new plan and returns it with its assigned id.
func (c *Client) CreatePlan(ctx context.Context, plan model.Plan) (model.Plan, error) {
	var created model.Plan
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/plans", &plan, &created); err != nil {
		return model.Plan{}, err
	}
	return created, nil
}

// GetPlan fetches a single plan by id.
func (c *Client) GetPlan(ctx context.Context, id int64) (model.Plan, error) {
	var plan model.Plan
	if err := c.do(ctx, c.httpClient, http.MethodGet, fmt.Sprintf("/plans/%d", id), nil, &plan); err != nil {
		return model.Plan{}, err
	}
	return plan, nil
}

// UpdatePlan replaces the stored plan and returns the stored representation.
func (c *Client) UpdatePlan(ctx context.Context, id int64, plan model.Plan) (model.Plan, error) {
	var updated model.Plan
	if err := c.do(ctx, c.httpClient, http.MethodPut, fmt.Sprintf("/plans/%d", id), &plan, &updated); err != nil {
		return model.Plan{}, err
	}
	return updated, nil
}

// DeletePlan removes the plan with the given id.
func (c *Client) DeletePlan(ctx context.Context, id int64) error {
	return c.do(ctx, c.httpClient, http.MethodDelete, fmt.Sprintf("/plans/%d", id), nil, nil)
}

// =============================================================================
// SUGGESTION OPERATION
// =============================================================================

// suggestRequest is the request body for POST /suggest.
type suggestRequest struct {
	Document string `json:"document"`
}

// Suggest asks the server to generate a draft plan from document text.
// This is the remote variant of the suggestion collaborator, used when the
// TUI talks to a planrun server instead of Ollama directly.
func (c *Client) Suggest(ctx context.Context, document string) (model.SuggestionResult, error) {
	var result model.SuggestionResult
	req := suggestRequest{Document: document}
	if err := c.do(ctx, c.suggestHTTP, http.MethodPost, "/suggest", &req, &result); err != nil {
		return model.SuggestionResult{}, err
	}
	return result, nil
}

// =============================================================================
// HEALTH
// =============================================================================

// CheckHealth verifies that the plan server is reachable.
func (c *Client) CheckHealth(ctx context.Context) error {
	return c.do(ctx, c.httpClient, http.MethodGet, "/health", nil, nil)
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do performs one JSON round trip. A nil in means no request body; a nil
// out discards the response body.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		return &ClientError{Type: ErrTypeServer, Message: "server error: " + resp.Status}
	case resp.StatusCode >= 400:
		return &ClientError{Type: ErrTypeServer, Message: "request rejected: " + resp.Status}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}
