package purecloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// tokenExpiryLeeway discards cached tokens this close to expiry.
const tokenExpiryLeeway = time.Minute

// TokenURL returns the OAuth token endpoint of an environment.
func TokenURL(environment string) string {
	return config.LoginBaseURL(environment) + "/oauth/token"
}

// AuthURL returns the OAuth authorize endpoint of an environment.
func AuthURL(environment string) string {
	return config.LoginBaseURL(environment) + "/oauth/authorize"
}

// TokenSource returns the token source for the configured auth mode.
// Browser mode reads the token cached by Authorize and fails with
// ErrLoginRequired when there is none.
func TokenSource(ctx context.Context, cfg *config.Config, cache *TokenCache) (oauth2.TokenSource, error) {
	switch cfg.AuthMode {
	case config.AuthClientCredentials:
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     TokenURL(cfg.Environment),
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		return cc.TokenSource(ctx), nil
	case config.AuthToken:
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"}), nil
	case config.AuthBrowser:
		tok, err := cache.Load(cfg.Environment)
		if err != nil {
			return nil, err
		}
		return oauth2.StaticTokenSource(tok), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
	}
}

// TokenCache stores browser login tokens per environment.
type TokenCache struct {
	Dir string
}

// DefaultTokenCache caches tokens under the user config directory.
func DefaultTokenCache() (*TokenCache, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config dir: %w", err)
	}
	return &TokenCache{Dir: filepath.Join(dir, "premium-app")}, nil
}

func (tc *TokenCache) path(environment string) string {
	r := strings.NewReplacer("://", "_", "/", "_", ":", "_")
	return filepath.Join(tc.Dir, "token-"+r.Replace(environment)+".json")
}

// Save writes tok for environment with owner-only permissions.
func (tc *TokenCache) Save(environment string, tok *oauth2.Token) error {
	if err := os.MkdirAll(tc.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create token cache dir: %w", err)
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(tc.path(environment), data, 0600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	return nil
}

// Load returns the cached token for environment. A missing or expired token
// yields ErrLoginRequired.
func (tc *TokenCache) Load(environment string) (*oauth2.Token, error) {
	if tc == nil {
		return nil, ErrLoginRequired
	}
	data, err := os.ReadFile(tc.path(environment))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrLoginRequired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to decode token cache: %w", err)
	}
	if tok.AccessToken == "" || (!tok.Expiry.IsZero() && time.Until(tok.Expiry) < tokenExpiryLeeway) {
		return nil, ErrLoginRequired
	}
	return &tok, nil
}

// Clear removes the cached token for environment.
func (tc *TokenCache) Clear(environment string) error {
	err := os.Remove(tc.path(environment))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
