// Package client speaks the admin endpoint's settings protocol: one
// URL, POST only, JSON both ways. Responses carry an application
// status besides the HTTP one; status 0 means the server rejected the
// request and the messages say why.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpointPath is where PowerDNS-Admin mounts the
// authentication settings API
const DefaultEndpointPath = "/admin/setting/authentication/api"

// DefaultTimeout bounds a single load or save round trip
const DefaultTimeout = 30 * time.Second

const maxResponseBytes = 4 << 20

// Client posts to one settings endpoint with one CSRF token
type Client struct {
	url  string
	csrf string
	http *http.Client
}

// New builds a client for the full endpoint URL. A zero timeout gets
// the default.
func New(endpointURL, csrfToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:  endpointURL,
		csrf: csrfToken,
		http: &http.Client{Timeout: timeout},
	}
}

// Ready reports whether the client has an endpoint and a token to
// post with
func (c *Client) Ready() bool {
	return c != nil && c.url != "" && c.csrf != ""
}

// URL returns the endpoint the client posts to
func (c *Client) URL() string {
	return c.url
}

// LoadResult is the decoded load payload: the flat legacy field map
// the editor binds to, plus the structured settings tree the server
// reports for display
type LoadResult struct {
	Legacy   map[string]any
	Settings map[string]any
	Messages []string
}

// SaveResult is the decoded save response: the server's canonical
// view of the record after persisting it
type SaveResult struct {
	Data     map[string]any
	Messages []string
}

// StatusError is a request the server answered but refused
// (application status 0)
type StatusError struct {
	Op       string
	Messages []string
}

func (e *StatusError) Error() string {
	if len(e.Messages) == 0 {
		return e.Op + " rejected by server"
	}
	return e.Op + " rejected by server: " + strings.Join(e.Messages, "; ")
}

type loadRequest struct {
	CSRFToken string `json:"_csrf_token"`
}

type saveRequest struct {
	CSRFToken string `json:"_csrf_token"`
	Commit    int    `json:"commit"`
	Data      string `json:"data"`
}

type loadResponse struct {
	Status   int      `json:"status"`
	Messages []string `json:"messages"`
	Payload  struct {
		Legacy   map[string]any `json:"legacy"`
		Settings map[string]any `json:"settings"`
	} `json:"payload"`
}

type saveResponse struct {
	Status   int            `json:"status"`
	Messages []string       `json:"messages"`
	Data     map[string]any `json:"data"`
}

// Load fetches the current settings record
func (c *Client) Load(ctx context.Context) (*LoadResult, error) {
	body, err := c.post(ctx, loadRequest{CSRFToken: c.csrf})
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var resp loadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("load settings: decode response: %w", err)
	}
	if resp.Status == 0 {
		return nil, &StatusError{Op: "load", Messages: resp.Messages}
	}
	return &LoadResult{
		Legacy:   resp.Payload.Legacy,
		Settings: resp.Payload.Settings,
		Messages: resp.Messages,
	}, nil
}

// Save persists the full record. The endpoint expects the record as a
// JSON document nested inside the "data" string, not as a JSON
// object, so it is serialized twice on purpose.
func (c *Client) Save(ctx context.Context, data map[string]any) (*SaveResult, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("save settings: encode record: %w", err)
	}

	body, err := c.post(ctx, saveRequest{
		CSRFToken: c.csrf,
		Commit:    1,
		Data:      string(encoded),
	})
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	var resp saveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("save settings: decode response: %w", err)
	}
	if resp.Status == 0 {
		return nil, &StatusError{Op: "save", Messages: resp.Messages}
	}
	return &SaveResult{Data: resp.Data, Messages: resp.Messages}, nil
}

func (c *Client) post(ctx context.Context, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}
	return body, nil
}
