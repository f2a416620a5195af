// Package spotify implements the client for Spotify's OAuth2 endpoints and
// the parts of the Web API this service proxies.
//
// Endpoint reference: https://developer.spotify.com/documentation/web-api
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAuthURL    = "https://accounts.spotify.com/authorize"
	defaultTokenURL   = "https://accounts.spotify.com/api/token"
	defaultAPIBaseURL = "https://api.spotify.com/v1"

	defaultTimeout = 10 * time.Second
)

// Scopes requested during authorization. Read-only: profile, listening
// history and playlists.
var scopes = []string{
	"user-read-private",
	"user-read-email",
	"user-top-read",
	"user-library-read",
	"playlist-read-private",
	"playlist-read-collaborative",
	"user-read-recently-played",
}

// Config holds the Spotify application credentials and endpoint overrides.
// Base URLs default to the real Spotify endpoints; tests point them at a
// local server.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
	Timeout      time.Duration
}

// TokenBundle represents a response from Spotify's token endpoint. The
// refresh token may be absent on refresh responses, in which case the
// previously stored value remains authoritative.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Profile represents the fields of a Spotify user profile this service uses
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// Client talks to Spotify's account and Web API endpoints. Stateless; safe
// for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a Spotify client from explicit credentials
func NewClient(cfg Config) *Client {
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// AuthorizeURL builds the URL the client is redirected to for user consent.
// Deterministic, no I/O.
func (c *Client) AuthorizeURL() string {
	params := url.Values{}
	params.Set("client_id", c.cfg.ClientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", c.cfg.RedirectURI)
	params.Set("scope", strings.Join(scopes, " "))

	return c.cfg.AuthURL + "?" + params.Encode()
}

// ExchangeCode exchanges an authorization code for a token bundle
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	return c.postToken(ctx, form)
}

// Refresh exchanges a refresh token for a new access token. Spotify may or
// may not include a rotated refresh token in the response.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	return c.postToken(ctx, form)
}

// Profile fetches the authenticated user's profile
func (c *Client) Profile(ctx context.Context, accessToken string) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, accessToken, "/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) postToken(ctx context.Context, form url.Values) (*TokenBundle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	bundle := &TokenBundle{}
	if err := json.Unmarshal(body, bundle); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return bundle, nil
}

// get performs a bearer-authenticated GET against the Web API and decodes
// the response into result when it is non-nil.
func (c *Client) get(ctx context.Context, accessToken, path string, params url.Values, result interface{}) error {
	apiURL := c.cfg.APIBaseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
