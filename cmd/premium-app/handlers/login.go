package handlers

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
)

// LoginOptions are the login command flags.
type LoginOptions struct {
	Globals
	// Logout removes the cached token instead of logging in.
	Logout bool
}

// Factory function variables for login - can be replaced in tests.
var (
	// loadConfigUnvalidated loads a config without the full rule check,
	// since login needs only the environment and the OAuth client.
	loadConfigUnvalidated = config.LoadWithoutValidation

	// authorize runs the browser login.
	authorize = purecloud.Authorize

	// tokenCache returns the token cache used by browser mode.
	tokenCache = purecloud.DefaultTokenCache
)

// errNotBrowserMode is returned when login is used with another auth mode.
var errNotBrowserMode = errors.New("login is only needed for auth_mode: browser")

// Login runs the browser authorization-code login and caches the token for
// later install, uninstall, and status runs.
func Login(ctx context.Context, opts LoginOptions) error {
	path := opts.ConfigPath
	if path == "" {
		found, err := findConfigFile()
		if err != nil {
			return fmt.Errorf("no config file found: %w\nRun 'premium-app init' to create one", err)
		}
		path = found
	}
	cfg, err := loadConfigUnvalidated(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cache, err := tokenCache()
	if err != nil {
		return err
	}

	if opts.Logout {
		if err := cache.Clear(cfg.Environment); err != nil {
			return fmt.Errorf("failed to clear cached login: %w", err)
		}
		fmt.Printf("Logged out of %s\n", cfg.Environment)
		return nil
	}

	if cfg.AuthMode != config.AuthBrowser {
		return fmt.Errorf("%w (configured: %s)", errNotBrowserMode, cfg.AuthMode)
	}
	if cfg.OAuthClientID == "" {
		return config.ErrBrowserClientIDRequired
	}

	log, sync := newLogger(opts.Verbose)
	defer sync()
	log.V(1).Info("starting browser login", "environment", cfg.Environment, "port", cfg.RedirectPort)

	tok, err := authorize(ctx, purecloud.LoginOptions{
		Environment: cfg.Environment,
		ClientID:    cfg.OAuthClientID,
		Port:        cfg.RedirectPort,
		Timeout:     config.LoadTimeouts().Login,
		OnURL: func(authURL string) {
			fmt.Println("Open this URL in your browser to log in:")
			fmt.Println()
			fmt.Printf("  %s\n\n", authURL)
		},
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := cache.Save(cfg.Environment, tok); err != nil {
		return err
	}
	printLoginSuccess(cfg, tok)
	return nil
}

func printLoginSuccess(cfg *config.Config, tok *oauth2.Token) {
	fmt.Printf("Logged in to %s\n", cfg.Environment)
	if !tok.Expiry.IsZero() {
		fmt.Printf("Token valid until %s\n", tok.Expiry.Local().Format("2006-01-02 15:04"))
	}
}
