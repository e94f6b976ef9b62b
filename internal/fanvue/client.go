package fanvue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the production Fanvue API endpoint.
	DefaultBaseURL = "https://api.fanvue.com"

	// DefaultAPIVersion is sent on every request in the X-Fanvue-API-Version header.
	DefaultAPIVersion = "2025-06-26"
)

// Credentials supplies the access token and the resolved creator account.
// The session store implements this; the client never mutates it.
type Credentials interface {
	AccessToken() string
	AccountUUID() string
}

// Client is a thin authenticated executor for Fanvue API requests.
type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
	creds      Credentials
}

// Config holds configuration for the Fanvue client.
type Config struct {
	BaseURL     string
	APIVersion  string
	Credentials Credentials
	Timeout     time.Duration
}

// NewClient creates a new Fanvue API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		apiVersion: apiVersion,
		httpClient: &http.Client{Timeout: timeout},
		creds:      cfg.Credentials,
	}
}

// Do executes an authenticated JSON request and returns the raw response
// body. An empty access token fails immediately without touching the
// network. Non-2xx responses come back as *APIError; a 401 wraps
// ErrUnauthenticated so callers can tell an expired token apart from other
// failures. Nothing is retried and tokens are never refreshed here.
func (c *Client) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	token := c.creds.AccessToken()
	if token == "" {
		return nil, ErrUnauthenticated
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Fanvue-API-Version", c.apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w (status %d): %s", ErrUnauthenticated, resp.StatusCode, string(respBody))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// VerifyToken checks the current access token against the API. Only the
// status matters; the user body is not decoded.
func (c *Client) VerifyToken(ctx context.Context) error {
	_, err := c.Do(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return fmt.Errorf("verify token: %w", err)
	}
	return nil
}

// Creator is a creator account manageable under the current token.
type Creator struct {
	UUID        string `json:"uuid"`
	DisplayName string `json:"displayName"`
}

type listCreatorsResponse struct {
	Data []Creator `json:"data"`
}

// ListCreators returns the creator accounts the token can manage.
func (c *Client) ListCreators(ctx context.Context) ([]Creator, error) {
	body, err := c.Do(ctx, http.MethodGet, "/agency/creators", nil)
	if err != nil {
		return nil, fmt.Errorf("list creators: %w", err)
	}

	var resp listCreatorsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse creators response: %w", err)
	}

	return resp.Data, nil
}
