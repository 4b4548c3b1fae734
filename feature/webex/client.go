package webex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Config holds connection settings for the Webex Calling API.
type Config struct {
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://webexapis.com"`

	// Token is a ready-to-use access token. When set, the token cache and
	// service-app refresh flow are skipped entirely.
	Token string `mapstructure:"token"`

	// TokenCache is the YAML file caching service-app tokens between runs.
	TokenCache string `mapstructure:"token_cache" default:"local_tp.yml"`
}

// ServiceAppConfig carries the credentials for minting access tokens from
// a service-app refresh token.
type ServiceAppConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token"`
}

// APIError is a non-2xx response from the Webex API.
type APIError struct {
	StatusCode int
	Message    string
	TrackingID string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("webex api returned status %d (tracking id %s)", e.StatusCode, e.TrackingID)
	}
	return fmt.Sprintf("webex api returned status %d: %s (tracking id %s)", e.StatusCode, e.Message, e.TrackingID)
}

// Client issues authenticated requests against the Webex API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a client using the given access token.
func NewClient(cfg Config, token string, log *zap.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}
}

// do sends one JSON request and decodes the response into out (when
// non-nil). Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("webex request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webex request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// apiError extracts the error payload Webex attaches to failed calls.
func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		TrackingID: resp.Header.Get("Trackingid"),
	}

	var payload struct {
		Message string `json:"message"`
		Errors  []struct {
			Description string `json:"description"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" && len(payload.Errors) > 0 {
			apiErr.Message = payload.Errors[0].Description
		}
	}
	return apiErr
}
