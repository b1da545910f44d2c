// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package taxapi provides the HTTP client for the tax assistant backend.
package taxapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
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

// Is matches any ClientError of the same type, so callers can write
// errors.Is(err, taxapi.ErrUnreachable).
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// ErrorType categorizes client errors. The UI treats all of them the same
// way; the type only feeds the diagnostic log.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeInvalidResponse
	ErrTypeCanceled
)

// String returns a short name for logging.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrUnreachable     = &ClientError{Type: ErrTypeConnection, Message: "backend is unreachable"}
	ErrInvalidResponse = &ClientError{Type: ErrTypeInvalidResponse, Message: "invalid response from backend"}
	ErrCanceled        = &ClientError{Type: ErrTypeCanceled, Message: "request canceled"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultBaseURL is used when no base URL is configured. A terminal has no
// page origin, so "same origin" resolves to a local backend.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Endpoint paths, relative to the base URL.
const (
	ChatPath = "/api/chat"
	CalcPath = "/api/calc"
)

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: DefaultBaseURL)
	BaseURL string

	// UserAgent is sent with every request (default: "taxchat")
	UserAgent string

	// HTTPClient overrides the transport. The default client has no timeout:
	// a call either resolves, fails, or the user waits.
	HTTPClient *http.Client

	// Logger receives diagnostic events (default: disabled)
	Logger *zerolog.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   DefaultBaseURL,
		UserAgent: "taxchat",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends single-shot JSON requests to the tax backend. There is no
// retry and no timeout; cancellation only happens through ctx.
//
// The Client is safe for concurrent use.
//
// Example:
//
//	client := taxapi.NewClientWithConfig(&taxapi.ClientConfig{BaseURL: url})
//	resp, err := client.Chat(ctx, "What are the new regime slab rates?")
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	cfg := *config
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "taxchat"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Client{
		config:     &cfg,
		httpClient: httpClient,
		log:        logger.With().Str("component", "taxapi").Logger(),
	}
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Chat posts a question to /api/chat and returns the server reply. A body
// without a string "reply" field is an ErrTypeInvalidResponse error.
func (c *Client) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	// NFC so composed and decomposed Devanagari reach the server identically
	reqBody := ChatRequest{Message: norm.NFC.String(message)}

	var wire chatWire
	status, err := c.postJSON(ctx, ChatPath, reqBody, &wire)
	if err != nil {
		return nil, err
	}
	if wire.Reply == nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "response has no reply field"}
	}

	return &ChatResponse{Reply: *wire.Reply, StatusCode: status}, nil
}

// Calc posts a calculator input to /api/calc and returns the server result.
// All five result fields must be present.
func (c *Client) Calc(ctx context.Context, req CalcRequest) (*CalcResult, error) {
	var wire calcWire
	status, err := c.postJSON(ctx, CalcPath, req, &wire)
	if err != nil {
		return nil, err
	}
	if missing := wire.missing(); len(missing) > 0 {
		return nil, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "response is missing " + strings.Join(missing, ", "),
		}
	}

	return &CalcResult{
		TaxableIncome: *wire.TaxableIncome,
		Tax:           *wire.Tax,
		Cess:          *wire.Cess,
		TotalTax:      *wire.TotalTax,
		Regime:        *wire.Regime,
		StatusCode:    status,
	}, nil
}

// postJSON sends body to path and decodes the response into out. The HTTP
// status is not checked: a parseable body counts as an answer, whatever the
// status. Non-2xx answers are logged as warnings.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, &ClientError{Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
	}

	url := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	c.log.Debug().Str("url", url).Int("bytes", len(data)).Msg("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, &ClientError{Type: ErrTypeCanceled, Message: "request canceled", Cause: err}
		}
		return 0, &ClientError{Type: ErrTypeConnection, Message: "backend is unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to decode response (" + resp.Status + ")",
			Cause:   err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Str("url", url).Int("status", resp.StatusCode).
			Msg("non-2xx response accepted because the body parsed")
	}

	return resp.StatusCode, nil
}
