package webex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// minTokenValidity is how much lifetime a cached token must have left to
// be reused without refreshing.
const minTokenValidity = 24 * time.Hour

// ErrNoAccessToken is returned when no token source is configured at all.
var ErrNoAccessToken = errors.New("no access token: pass --token, set WEBEX_TOKEN, " +
	"or configure service app credentials")

// Tokens is the cached result of a service-app token refresh.
type Tokens struct {
	AccessToken  string    `yaml:"access_token"`
	ExpiresAt    time.Time `yaml:"expires_at"`
	RefreshToken string    `yaml:"refresh_token"`
}

// Remaining returns the access token's remaining lifetime.
func (t *Tokens) Remaining() time.Duration {
	return time.Until(t.ExpiresAt)
}

// TokenProvider resolves an access token from the configured sources.
type TokenProvider struct {
	cfg        Config
	serviceApp ServiceAppConfig
	httpClient *http.Client
	log        *zap.Logger
}

// NewTokenProvider creates a token provider.
func NewTokenProvider(cfg Config, serviceApp ServiceAppConfig, log *zap.Logger) *TokenProvider {
	return &TokenProvider{
		cfg:        cfg,
		serviceApp: serviceApp,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// AccessToken resolves a usable access token. An explicitly configured
// token wins; otherwise the cache is consulted, and a token with less
// than a day of validity left is replaced via the service-app refresh
// flow. Refreshed tokens are written back to the cache.
func (p *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	if p.cfg.Token != "" {
		return p.cfg.Token, nil
	}

	cached := p.readCache()
	if cached != nil && cached.Remaining() >= minTokenValidity {
		p.log.Debug("using cached access token",
			zap.Duration("remaining", cached.Remaining()))
		return cached.AccessToken, nil
	}

	if p.serviceApp.ClientID == "" || p.serviceApp.ClientSecret == "" || p.serviceApp.RefreshToken == "" {
		return "", ErrNoAccessToken
	}

	tokens, err := p.refresh(ctx)
	if err != nil {
		return "", err
	}

	if err := p.writeCache(tokens); err != nil {
		// A failed cache write only costs a refresh on the next run.
		p.log.Warn("failed to write token cache", zap.Error(err))
	}
	return tokens.AccessToken, nil
}

// refresh mints a new access token from the service-app refresh token.
func (p *TokenProvider) refresh(ctx context.Context) (*Tokens, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", p.serviceApp.ClientID)
	form.Set("client_secret", p.serviceApp.ClientSecret)
	form.Set("refresh_token", p.serviceApp.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token refresh returned status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken  string `json:"access_token"`
		ExpiresIn    int    `json:"expires_in"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	tokens := &Tokens{
		AccessToken:  payload.AccessToken,
		ExpiresAt:    time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second),
		RefreshToken: payload.RefreshToken,
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = p.serviceApp.RefreshToken
	}
	return tokens, nil
}

// readCache loads the token cache. Any problem (missing file, stale
// format) just means the cache is treated as absent.
func (p *TokenProvider) readCache() *Tokens {
	data, err := os.ReadFile(p.cfg.TokenCache)
	if err != nil {
		return nil
	}
	var tokens Tokens
	if err := yaml.Unmarshal(data, &tokens); err != nil || tokens.AccessToken == "" {
		return nil
	}
	return &tokens
}

// writeCache persists freshly minted tokens.
func (p *TokenProvider) writeCache(tokens *Tokens) error {
	data, err := yaml.Marshal(tokens)
	if err != nil {
		return err
	}
	return os.WriteFile(p.cfg.TokenCache, data, 0o600)
}
