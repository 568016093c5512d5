package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/zenithfinancial/portal/pkg/logger"
)

const (
	DefaultBaseURL     = "https://api.workos.com"
	DefaultHTTPTimeout = 10 * time.Second

	authorizePath    = "/user_management/authorize"
	authenticatePath = "/user_management/authenticate"
	usersPath        = "/user_management/users/"
)

// Client talks to the WorkOS user management API. The authorization code and
// refresh grants go through golang.org/x/oauth2; WorkOS returns the signed-in
// user alongside the tokens.
type Client struct {
	oauth      *oauth2.Config
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger; nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.OrDiscard(l)
	}
}

// New validates cfg and returns a client for the hosted sign-in API.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	c := &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.APIKey,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + authorizePath,
				TokenURL:  base + authenticatePath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: base,
		apiKey:  cfg.APIKey,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("identity"))

	return c, nil
}

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// AuthorizationURL returns the hosted sign-in URL for provider. The provider
// redirects back to the configured redirect URI with state echoed verbatim.
func (c *Client) AuthorizationURL(provider Provider, state string) (string, error) {
	if !provider.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidProvider, provider)
	}
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("provider", provider.String())), nil
}

// Exchange trades an authorization code for tokens and the signed-in user.
// Every failure is reported as ErrAuthenticationFailed; the cause is logged here.
func (c *Client) Exchange(ctx context.Context, code string) (Result, error) {
	if code == "" {
		return Result{}, ErrAuthenticationFailed
	}

	tok, err := c.oauth.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		c.logger.WarnContext(ctx, "authorization code exchange failed", logger.Error(err))
		return Result{}, ErrAuthenticationFailed
	}

	user, err := userFromToken(tok)
	if err != nil {
		c.logger.WarnContext(ctx, "authenticate response rejected", logger.Error(err))
		return Result{}, ErrAuthenticationFailed
	}

	return Result{
		User:   user,
		Tokens: Tokens{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken},
	}, nil
}

// Refresh exchanges a refresh token for a new token pair. When the provider
// does not rotate the refresh token the old one is returned.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrRefreshFailed
	}

	tok, err := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		c.logger.WarnContext(ctx, "token refresh failed", logger.Error(err))
		return Tokens{}, ErrRefreshFailed
	}
	return Tokens{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}, nil
}

// GetUser fetches a user by provider id.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	if id == "" {
		return User{}, ErrUserLookupFailed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+usersPath+url.PathEscape(id), nil)
	if err != nil {
		return User{}, errors.Join(ErrUserLookupFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "user lookup failed", logger.Error(err))
		return User{}, ErrUserLookupFailed
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "user lookup failed", slog.Int("status", resp.StatusCode))
		return User{}, ErrUserLookupFailed
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		c.logger.WarnContext(ctx, "user lookup response rejected", logger.Error(err))
		return User{}, ErrUserLookupFailed
	}
	return user, nil
}

func userFromToken(tok *oauth2.Token) (User, error) {
	raw := tok.Extra("user")
	if raw == nil {
		return User{}, errors.New("response has no user")
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return User{}, fmt.Errorf("encode user: %w", err)
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" || user.Email == "" {
		return User{}, errors.New("user is missing id or email")
	}
	return user, nil
}
