// Package googleauth manages the OAuth credentials shared by the Google
// Calendar and Google Sheets integrations.
package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"funnel_backend/platform/config"
	"funnel_backend/platform/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/sheets/v4"
)

const defaultRefreshTimeout = 5 * time.Second

// Scopes requested during consent.
var Scopes = []string{calendar.CalendarScope, sheets.SpreadsheetsScope}

var (
	// ErrNotConfigured is returned when no OAuth client credentials exist.
	ErrNotConfigured = errors.New("google oauth client is not configured")
	// ErrNotAuthorized is returned until the consent flow has stored a token.
	ErrNotAuthorized = errors.New("google account has not been authorized")
)

// Client holds the OAuth client configuration and the current token.
// It is safe for concurrent use.
type Client struct {
	oauth     *oauth2.Config
	tokenPath string
	log       *logger.Logger

	// refreshClient bounds token refreshes, which run before every API call.
	refreshClient *http.Client

	mu      sync.Mutex
	token   *oauth2.Token
	service oauth2.TokenSource // set when token file holds service account credentials
}

// New builds a client from environment credentials, falling back to the
// credentials file. It returns ErrNotConfigured when neither is present.
func New(ctx context.Context, cfg config.GoogleAuthConfig, log *logger.Logger) (*Client, error) {
	c := &Client{
		tokenPath:     cfg.GetGoogleTokenPath(),
		log:           log,
		refreshClient: &http.Client{Timeout: cfg.GetGoogleTokenTimeout()},
	}

	switch {
	case cfg.GetGoogleClientID() != "" && cfg.GetGoogleClientSecret() != "":
		c.oauth = &oauth2.Config{
			ClientID:     cfg.GetGoogleClientID(),
			ClientSecret: cfg.GetGoogleClientSecret(),
			RedirectURL:  cfg.GetGoogleRedirectURI(),
			Endpoint:     google.Endpoint,
			Scopes:       Scopes,
		}
	default:
		raw, err := os.ReadFile(cfg.GetGoogleCredentialsPath())
		if err == nil {
			oauthCfg, err := google.ConfigFromJSON(raw, Scopes...)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", cfg.GetGoogleCredentialsPath(), err)
			}
			if cfg.GetGoogleRedirectURI() != "" {
				oauthCfg.RedirectURL = cfg.GetGoogleRedirectURI()
			}
			c.oauth = oauthCfg
		}
	}

	if err := c.loadToken(ctx); err != nil {
		log.CollaboratorFailure("googleauth", "load_token", err)
	}

	if c.oauth == nil && c.service == nil {
		return nil, ErrNotConfigured
	}
	return c, nil
}

// newWithConfig is used by tests to point the client at a fake token endpoint.
func newWithConfig(oauthCfg *oauth2.Config, tokenPath string, log *logger.Logger) *Client {
	return &Client{
		oauth:         oauthCfg,
		tokenPath:     tokenPath,
		log:           log,
		refreshClient: &http.Client{Timeout: defaultRefreshTimeout},
	}
}

// Authorized reports whether API calls can currently be made.
func (c *Client) Authorized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.service != nil || c.token != nil
}

// AuthURL returns the consent screen URL. Offline access is requested so
// the stored token carries a refresh token.
func (c *Client) AuthURL(state string) (string, error) {
	if c.oauth == nil {
		return "", ErrNotConfigured
	}
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Exchange trades an authorization code for a token and persists it.
func (c *Client) Exchange(ctx context.Context, code string) error {
	if c.oauth == nil {
		return ErrNotConfigured
	}
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = tok
	return c.saveLocked(tok)
}

// TokenSource returns a source that always reflects the latest stored
// token, refreshes it when expired and persists refreshed tokens.
func (c *Client) TokenSource() oauth2.TokenSource {
	return tokenSourceFunc(c.currentToken)
}

type tokenSourceFunc func() (*oauth2.Token, error)

func (f tokenSourceFunc) Token() (*oauth2.Token, error) { return f() }

// refreshContext carries the bounded HTTP client to the oauth2 package.
func (c *Client) refreshContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.refreshClient)
}

// currentToken never holds mu across a network round trip.
func (c *Client) currentToken() (*oauth2.Token, error) {
	c.mu.Lock()
	service, tok := c.service, c.token
	c.mu.Unlock()

	if service != nil {
		return service.Token()
	}
	if tok == nil {
		return nil, ErrNotAuthorized
	}
	if tok.Valid() {
		return tok, nil
	}

	refreshed, err := c.oauth.TokenSource(c.refreshContext(context.Background()), tok).Token()
	if err != nil {
		return nil, fmt.Errorf("refresh google token: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != tok && c.token.Valid() {
		// replaced by a concurrent refresh or a new consent
		return c.token, nil
	}
	c.token = refreshed
	if err := c.saveLocked(refreshed); err != nil {
		c.log.CollaboratorFailure("googleauth", "save_token", err)
	}
	return refreshed, nil
}

// storedToken accepts both the oauth2 field layout and the millisecond
// "expiry_date" layout written by other Google client libraries.
type storedToken struct {
	Type         string    `json:"type,omitempty"`
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	ExpiryDate   int64     `json:"expiry_date,omitempty"`
}

func (c *Client) loadToken(ctx context.Context) error {
	raw, err := os.ReadFile(c.tokenPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var stored storedToken
	if err := json.Unmarshal(raw, &stored); err != nil {
		return fmt.Errorf("parse %s: %w", c.tokenPath, err)
	}

	if stored.Type == "service_account" {
		creds, err := google.CredentialsFromJSON(c.refreshContext(ctx), raw, Scopes...)
		if err != nil {
			return fmt.Errorf("load service account: %w", err)
		}
		c.service = creds.TokenSource
		return nil
	}

	if stored.AccessToken == "" && stored.RefreshToken == "" {
		return fmt.Errorf("%s holds no token", c.tokenPath)
	}

	tok := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		TokenType:    stored.TokenType,
		RefreshToken: stored.RefreshToken,
		Expiry:       stored.Expiry,
	}
	if tok.Expiry.IsZero() && stored.ExpiryDate > 0 {
		tok.Expiry = time.UnixMilli(stored.ExpiryDate)
	}
	if strings.TrimSpace(tok.TokenType) == "" {
		tok.TokenType = "Bearer"
	}
	c.token = tok
	return nil
}

func (c *Client) saveLocked(tok *oauth2.Token) error {
	payload, err := json.Marshal(storedToken{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(c.tokenPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(c.tokenPath, payload, 0o600)
}
