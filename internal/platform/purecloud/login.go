package purecloud

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// LoginOptions configures a browser login.
type LoginOptions struct {
	Environment string
	ClientID    string
	// Port is the loopback port of the callback server. 0 picks a free port,
	// which only works for clients registered with a wildcard redirect.
	Port int
	// OnURL receives the authorization URL the user has to open.
	OnURL func(authURL string)
	// Timeout bounds the whole round trip. Zero means no extra bound.
	Timeout time.Duration
}

const callbackPage = `<!DOCTYPE html>
<html><body><h3>Premium App installer</h3><p>%s</p><p>You can close this window.</p></body></html>`

type callbackResult struct {
	code string
	err  error
}

// Authorize runs an authorization code login with PKCE. It serves the
// redirect on 127.0.0.1, hands the authorization URL to OnURL, and exchanges
// the returned code for a token.
func Authorize(ctx context.Context, opts LoginOptions) (*oauth2.Token, error) {
	if opts.ClientID == "" {
		return nil, errors.New("browser login requires an OAuth client ID")
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(opts.Port)))
	if err != nil {
		return nil, fmt.Errorf("failed to listen for login callback: %w", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	conf := &oauth2.Config{
		ClientID:    opts.ClientID,
		RedirectURL: fmt.Sprintf("http://127.0.0.1:%d/callback", port),
		Endpoint: oauth2.Endpoint{
			AuthURL:   AuthURL(opts.Environment),
			TokenURL:  TokenURL(opts.Environment),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	results := make(chan callbackResult, 1)
	srv := &http.Server{
		Handler:           callbackRouter(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		_ = srv.Serve(ln)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	if opts.OnURL != nil {
		opts.OnURL(authURL)
	}

	var res callbackResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("login aborted: %w", ctx.Err())
	case res = <-results:
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := conf.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tok, nil
}

func callbackRouter(state string, results chan<- callbackResult) http.Handler {
	r := chi.NewRouter()
	r.Get("/callback", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		var res callbackResult
		switch {
		case q.Get("error") != "":
			res.err = fmt.Errorf("authorization denied: %s %s", q.Get("error"), q.Get("error_description"))
		case q.Get("state") != state:
			res.err = errors.New("authorization state mismatch")
		case q.Get("code") == "":
			res.err = errors.New("authorization response carried no code")
		default:
			res.code = q.Get("code")
		}

		msg := "Login complete."
		status := http.StatusOK
		if res.err != nil {
			msg = "Login failed: " + res.err.Error()
			status = http.StatusBadRequest
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, callbackPage, html.EscapeString(msg))

		select {
		case results <- res:
		default:
		}
	})
	return r
}
