package provisioner

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

const defaultBaseURL = "https://api.example.local"

// Payload identifies one host to provision.
type Payload struct {
	Hostname string `json:"hostname"`
	Address  string `json:"address"`
}

type apiResponse struct {
	OK         bool    `json:"ok"`
	StatusCode int     `json:"status_code"`
	Body       apiBody `json:"body"`
}

type apiBody struct {
	Message string `json:"message"`
}

// Client is a minimal client for the remote provisioning API.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a new provisioning API client. The timeout bounds each
// individual call; zero means no per-call deadline.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Provision asks the API to provision one host. A nil return means the API
// signalled success; any failure (transport error, non-2xx status, ok=false)
// is returned with the server's reason where one is available.
func (c *Client) Provision(ctx context.Context, payload Payload) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/provision", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call provisioning API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed apiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	if !parsed.OK {
		msg := parsed.Body.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", parsed.StatusCode)
		}
		return fmt.Errorf("provisioning rejected: %s", msg)
	}

	return nil
}
