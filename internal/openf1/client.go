// Package openf1 is a read-only client for the public OpenF1 REST API
// (https://api.openf1.org/v1). Every resource is a GET returning a JSON
// array of records; filters are plain query clauses with optional >=/<=
// operators.
package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public OpenF1 API endpoint.
const DefaultBaseURL = "https://api.openf1.org/v1"

const defaultTimeout = 30 * time.Second

// FetchError is returned when a fetch fails at the transport or HTTP
// level: network error, timeout, or a non-2xx status.
type FetchError struct {
	Resource   string
	StatusCode int    // 0 for transport-level failures
	Body       string // truncated response body for non-2xx statuses
	Err        error  // underlying transport error, if any
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("openf1: fetch %s: HTTP %d: %s", e.Resource, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("openf1: fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError is returned when the API responds 200 but the body is not
// a parseable JSON array.
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("openf1: decode %s response: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client fetches record arrays from the OpenF1 API. It holds no state
// beyond the HTTP client, so a single instance is safe for concurrent
// use across tool invocations.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests and config).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout bounds the wait for a single fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a client against the public OpenF1 endpoint.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues one GET against the named resource with the given filter
// and returns the decoded records. An empty array is a valid zero-result
// outcome, not an error. No retries: the API documents no transient
// failure contract, and retrying would mask real errors.
func (c *Client) Fetch(ctx context.Context, resource string, f *Filter) ([]Record, error) {
	reqURL := c.baseURL + "/" + resource
	if f != nil && !f.Empty() {
		reqURL += "?" + f.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "f1mcp/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &FetchError{Resource: resource, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &DecodeError{Resource: resource, Err: err}
	}
	return records, nil
}
