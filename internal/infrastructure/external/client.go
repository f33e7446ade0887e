// Package external talks to the downstream issuer API: it obtains short-lived
// credentials and forwards protected-resource requests with one attached.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tivit/users-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Credential is a downstream-issued token and the instant it stops being valid.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// ClientConfig captures the settings for the downstream issuer client.
type ClientConfig struct {
	BaseURL  string
	Username string
	Password string
	// Timeout bounds every downstream request; a hung issuer fails the call
	// instead of the caller.
	Timeout time.Duration
	// DefaultTTL applies when the issuer response carries no expires_in.
	DefaultTTL time.Duration
}

// Client is the HTTP client for the downstream issuer.
type Client struct {
	baseURL    string
	username   string
	password   string
	http       *http.Client
	defaultTTL time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		http:       &http.Client{Timeout: timeout},
		defaultTTL: cfg.DefaultTTL,
	}
}

type issuerTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// FetchToken requests a fresh credential from the issuer. The issuer accepts
// the service credentials as query parameters on POST /token.
func (c *Client) FetchToken(ctx context.Context) (Credential, error) {
	endpoint := c.baseURL + "/token?" + url.Values{
		"username": {c.username},
		"password": {c.password},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return Credential{}, fmt.Errorf("build token request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: fetch token: %v", domain.ErrExternalUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Credential{}, fmt.Errorf("%w: issuer returned %d", domain.ErrExternalUnavailable, resp.StatusCode)
	}

	var body issuerTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Credential{}, fmt.Errorf("%w: decode token response: %v", domain.ErrExternalUnavailable, err)
	}
	if body.AccessToken == "" {
		return Credential{}, fmt.Errorf("%w: issuer returned empty token", domain.ErrExternalUnavailable)
	}

	ttl := c.defaultTTL
	if body.ExpiresIn > 0 {
		ttl = time.Duration(body.ExpiresIn) * time.Second
	}
	return Credential{
		Token:     body.AccessToken,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Get fetches a downstream resource with the supplied bearer credential and
// returns the raw response body.
func (c *Client) Get(ctx context.Context, path, credential string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrExternalUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: downstream returned %d for %s", domain.ErrExternalUnavailable, resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// Ping checks issuer reachability for the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExternalUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: health returned %d", domain.ErrExternalUnavailable, resp.StatusCode)
	}
	return nil
}
