// Package client is a typed HTTP client for the Solscan explorer API.
//
// Every endpoint answers with the envelope {"success": bool, "data": ...}.
// Transport problems (network errors, non-2xx statuses, malformed bodies) are
// reported as errors matching ErrTransport; a well-formed envelope carrying
// success=false is reported as an *APIError matching ErrUnsuccessful.
// The client never retries.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brojonat/soldungen/service/metrics"
)

const (
	// DefaultBaseURL is the pro API root used by every endpoint except chain info.
	DefaultBaseURL = "https://pro-api.solscan.io/v2.0"

	// DefaultPublicBaseURL serves the chain info endpoint.
	DefaultPublicBaseURL = "https://public-api.solscan.io"

	// maxErrorBody bounds how much of a failed response body we keep for messages.
	maxErrorBody = 4 << 10
)

var (
	// ErrTransport matches network failures, non-2xx responses and undecodable bodies.
	ErrTransport = errors.New("explorer request failed")

	// ErrUnsuccessful matches responses whose envelope reported success=false.
	ErrUnsuccessful = errors.New("explorer reported failure")
)

// APIError carries the explorer's own error payload.
type APIError struct {
	Endpoint   string
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: explorer reported failure (status %d)", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

// Is reports ErrUnsuccessful for every APIError and ErrTransport when the
// payload arrived with a non-2xx status.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnsuccessful:
		return true
	case ErrTransport:
		return e.StatusCode < 200 || e.StatusCode > 299
	}
	return false
}

// Config is the explicit client configuration injected at startup.
type Config struct {
	BaseURL       string
	PublicBaseURL string
	APIKey        string
	HTTPClient    *http.Client
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
}

// Client is the HTTP client for the explorer API.
type Client struct {
	baseURL       string
	publicBaseURL string
	apiKey        string
	httpClient    *http.Client
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

// New creates a new explorer client. Zero-valued fields fall back to defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = DefaultPublicBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		apiKey:        cfg.APIKey,
		httpClient:    cfg.HTTPClient,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
	}
}

// envelope is the response wrapper shared by every endpoint.
type envelope[T any] struct {
	Success bool          `json:"success"`
	Data    T             `json:"data"`
	Errors  *errorPayload `json:"errors,omitempty"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type errorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *envelope[T]) apiError(endpoint string, status int) *APIError {
	apiErr := &APIError{Endpoint: endpoint, StatusCode: status}
	switch {
	case e.Errors != nil && e.Errors.Message != "":
		apiErr.Code = e.Errors.Code
		apiErr.Message = e.Errors.Message
	case e.Message != "":
		apiErr.Message = e.Message
	case e.Error != "":
		apiErr.Message = e.Error
	}
	return apiErr
}

// get issues one GET against base/endpoint and decodes the envelope's data.
func get[T any](ctx context.Context, c *Client, base, endpoint string, query url.Values) (T, error) {
	var zero T

	u := base + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("token", c.apiKey)
	}

	start := time.Now()
	status := "error"
	defer metrics.Timer(start, func(seconds float64) {
		if c.metrics != nil {
			c.metrics.RecordAPICall(endpoint, status, seconds)
		}
	})()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "explorer request failed", "endpoint", endpoint, "error", err)
		return zero, fmt.Errorf("%w: %s: %w", ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, c.parseErrorResponse(endpoint, resp)
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("%w: %s: failed to decode response: %w", ErrTransport, endpoint, err)
	}

	if !env.Success {
		status = "unsuccessful"
		if c.metrics != nil {
			c.metrics.RecordUnsuccessful(endpoint)
		}
		apiErr := env.apiError(endpoint, resp.StatusCode)
		c.logger.DebugContext(ctx, "explorer reported failure", "endpoint", endpoint, "message", apiErr.Message)
		return zero, apiErr
	}

	status = "success"
	c.logger.DebugContext(ctx, "explorer request complete",
		"endpoint", endpoint,
		"duration", time.Since(start),
	)
	return env.Data, nil
}

// parseErrorResponse turns a non-2xx response into an error, keeping the
// explorer's own message when the body is an envelope.
func (c *Client) parseErrorResponse(endpoint string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var env envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err == nil {
		if apiErr := env.apiError(endpoint, resp.StatusCode); apiErr.Message != "" {
			return apiErr
		}
	}

	return fmt.Errorf("%w: %s: status %d: %s", ErrTransport, endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
}

// recordItems reports list sizes for list endpoints.
func (c *Client) recordItems(endpoint string, n int) {
	if c.metrics != nil {
		c.metrics.RecordItems(endpoint, n)
	}
}

// Message extracts a human-readable message from the explorer's error
// payload, or returns fallback when err carries none.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
