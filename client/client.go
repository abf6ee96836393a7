// Package client is a typed client for the shop's REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maroon_shop/lib"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type options struct {
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*options)

// WithHTTPClient sends requests through hc, e.g. httptest's. A nil hc keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout bounds each request. It never modifies a client passed to WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// New returns a client for the API at baseURL (scheme and host, no trailing /api).
// Options apply in any order.
func New(baseURL string, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var hc *http.Client
	switch {
	case o.httpClient == nil:
		hc = &http.Client{Timeout: defaultTimeout}
	case o.timeout > 0:
		copied := *o.httpClient
		hc = &copied
	default:
		hc = o.httpClient
	}
	if o.timeout > 0 {
		hc.Timeout = o.timeout
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: hc,
	}
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []lib.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

// FieldMessages maps each invalid field to its first message.
func (e *APIError) FieldMessages() map[string]string {
	return (&lib.ValidationError{Errors: e.Errors}).FieldMessages()
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is an API 400 and returns it.
func IsValidation(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		return apiErr, true
	}
	return nil, false
}

type errorEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}
	apiErr.Message = envelope.Message

	// field errors ride in the envelope data; accept them at the top level too
	for _, candidate := range [][]byte{envelope.Data, body} {
		var validation lib.ValidationError
		if len(candidate) > 0 && json.Unmarshal(candidate, &validation) == nil && len(validation.Errors) > 0 {
			apiErr.Errors = validation.Errors
			break
		}
	}
	return apiErr
}

// do sends one request. A non-nil out receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, decodeError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return resp, nil
}
