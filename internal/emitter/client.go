package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"telemetry_demo/internal/models"
)

const (
	defaultTimeout  = time.Second
	maxErrBodyBytes = 512

	emitterIDHeader = "X-Emitter-ID"
	requestIDHeader = "X-Request-ID"
)

// Client talks to the collector HTTP API.
type Client struct {
	baseURL    string
	http       *http.Client
	instanceID string
	token      string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithBearerToken sends an Authorization header on fault toggles.
func WithBearerToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// NewClient builds a client for baseURL (e.g. http://127.0.0.1:8000) whose
// calls each give up after timeout.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		instanceID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InstanceID identifies this emitter process in collector logs.
func (c *Client) InstanceID() string { return c.instanceID }

type faultResponse struct {
	FaultMode bool `json:"fault_mode"`
}

// FaultMode reads the collector's fault flag.
func (c *Client) FaultMode(ctx context.Context) (bool, error) {
	var out faultResponse
	if err := c.do(ctx, http.MethodGet, "/fault", nil, &out); err != nil {
		return false, err
	}
	return out.FaultMode, nil
}

// SetFault flips the collector's fault flag and returns the stored value.
func (c *Client) SetFault(ctx context.Context, on bool) (bool, error) {
	path := "/fault/off"
	if on {
		path = "/fault/on"
	}
	var out faultResponse
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return false, err
	}
	return out.FaultMode, nil
}

// Send posts one reading to /ingest.
func (c *Client) Send(ctx context.Context, r models.Reading) error {
	return c.do(ctx, http.MethodPost, "/ingest", r, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(emitterIDHeader, c.instanceID)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyBytes))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// StatusError reports a non-2xx collector response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Body)
}
