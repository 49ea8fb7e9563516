// Package ticketbot provides a client for the ticketbot webhook API.
package ticketbot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a ticketbot API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new ticketbot client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// doRequest performs an HTTP request and returns the status and body.
func (c *Client) doRequest(method, path string, body interface{}, header http.Header) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.Unmarshal(respBody, &errResp)
		return resp.StatusCode, nil, fmt.Errorf("ticketbot error %d: %s", resp.StatusCode, errResp.Error)
	}

	return resp.StatusCode, respBody, nil
}

// DispatchRequest is one chat message.
type DispatchRequest struct {
	Nick     string `json:"nick"`
	Channel  string `json:"channel"`
	Message  string `json:"message"`
	IsPublic bool   `json:"is_public"`
}

// DispatchResponse is the bot's reply.
type DispatchResponse struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	Reply   string `json:"reply"`
}

// Dispatch sends a chat message to the bot. It returns nil when the bot
// stays silent.
func (c *Client) Dispatch(msg DispatchRequest) (*DispatchResponse, error) {
	header := http.Header{}
	if msg.Channel != "" {
		header.Set("X-Ticketbot-Channel", msg.Channel)
	}

	status, body, err := c.doRequest(http.MethodPost, "/dispatch", msg, header)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}

	var resp DispatchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPatterns returns the registered prefixes.
func (c *Client) ListPatterns() ([]string, error) {
	_, body, err := c.doRequest(http.MethodGet, "/patterns", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Patterns []string `json:"patterns"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return resp.Patterns, nil
}

// AddPattern registers prefix. It reports whether the prefix was new.
func (c *Client) AddPattern(prefix string) (bool, error) {
	_, body, err := c.doRequest(http.MethodPost, "/patterns", map[string]string{"prefix": prefix}, nil)
	if err != nil {
		return false, err
	}

	var resp struct {
		Created bool `json:"created"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, err
	}
	return resp.Created, nil
}

// RemovePattern unregisters prefix.
func (c *Client) RemovePattern(prefix string) error {
	_, _, err := c.doRequest(http.MethodDelete, "/patterns/"+url.PathEscape(prefix), nil, nil)
	return err
}

// HealthResponse is the health check result.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Checks  map[string]struct {
		Status  string `json:"status"`
		Latency string `json:"latency,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"checks"`
}

// Health checks server health.
func (c *Client) Health() (*HealthResponse, error) {
	_, body, err := c.doRequest(http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp HealthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
