package purecloud

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

func TestTokenCache(t *testing.T) {
	t.Parallel()
	cache := &TokenCache{Dir: t.TempDir()}

	_, err := cache.Load("mypurecloud.com")
	assert.ErrorIs(t, err, ErrLoginRequired)

	tok := &oauth2.Token{AccessToken: "abc", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}
	require.NoError(t, cache.Save("mypurecloud.com", tok))

	loaded, err := cache.Load("mypurecloud.com")
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.AccessToken)

	_, err = cache.Load("mypurecloud.ie")
	assert.ErrorIs(t, err, ErrLoginRequired, "tokens are per environment")

	require.NoError(t, cache.Clear("mypurecloud.com"))
	require.NoError(t, cache.Clear("mypurecloud.com"))
	_, err = cache.Load("mypurecloud.com")
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestTokenCache_ExpiredToken(t *testing.T) {
	t.Parallel()
	cache := &TokenCache{Dir: t.TempDir()}
	require.NoError(t, cache.Save("http://127.0.0.1:1", &oauth2.Token{AccessToken: "old", Expiry: time.Now().Add(30 * time.Second)}))

	_, err := cache.Load("http://127.0.0.1:1")
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestTokenSource_ClientCredentials(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ts.handleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		assert.Equal(t, "client_credentials", form.Get("grant_type"))
		jsonResponse(w, http.StatusOK, map[string]any{"access_token": "cc-token", "token_type": "bearer", "expires_in": 3600})
	})

	cfg := &config.Config{Environment: ts.server.URL, AuthMode: config.AuthClientCredentials, ClientID: "id", ClientSecret: "secret"}
	src, err := TokenSource(context.Background(), cfg, nil)
	require.NoError(t, err)

	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "cc-token", tok.AccessToken)
}

func TestTokenSource_Modes(t *testing.T) {
	t.Parallel()

	src, err := TokenSource(context.Background(), &config.Config{AuthMode: config.AuthToken, AccessToken: "static"}, nil)
	require.NoError(t, err)
	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "static", tok.AccessToken)

	_, err = TokenSource(context.Background(), &config.Config{AuthMode: config.AuthBrowser, Environment: "mypurecloud.com"}, &TokenCache{Dir: t.TempDir()})
	assert.ErrorIs(t, err, ErrLoginRequired)

	_, err = TokenSource(context.Background(), &config.Config{AuthMode: "magic"}, nil)
	assert.Error(t, err)
}

func TestAuthorize(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ts.handleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.NotEmpty(t, r.PostForm.Get("code_verifier"))
		jsonResponse(w, http.StatusOK, map[string]any{"access_token": "browser-token", "token_type": "bearer", "expires_in": 3600})
	})

	tok, err := Authorize(context.Background(), LoginOptions{
		Environment: ts.server.URL,
		ClientID:    "public-client",
		Timeout:     5 * time.Second,
		OnURL: func(authURL string) {
			u, err := url.Parse(authURL)
			if !assert.NoError(t, err) {
				return
			}
			q := u.Query()
			assert.True(t, strings.HasPrefix(authURL, ts.server.URL+"/oauth/authorize"))
			assert.Equal(t, "S256", q.Get("code_challenge_method"))
			callback := q.Get("redirect_uri") + "?code=the-code&state=" + url.QueryEscape(q.Get("state"))
			go func() {
				resp, err := http.Get(callback)
				if err == nil {
					_ = resp.Body.Close()
				}
			}()
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "browser-token", tok.AccessToken)
}

func TestAuthorize_StateMismatch(t *testing.T) {
	t.Parallel()

	_, err := Authorize(context.Background(), LoginOptions{
		Environment: "http://127.0.0.1:1",
		ClientID:    "public-client",
		Timeout:     5 * time.Second,
		OnURL: func(authURL string) {
			u, _ := url.Parse(authURL)
			callback := u.Query().Get("redirect_uri") + "?code=x&state=forged"
			go func() {
				resp, err := http.Get(callback)
				if err == nil {
					_ = resp.Body.Close()
				}
			}()
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state mismatch")
}

func TestAuthorize_Denied(t *testing.T) {
	t.Parallel()

	_, err := Authorize(context.Background(), LoginOptions{
		Environment: "http://127.0.0.1:1",
		ClientID:    "public-client",
		Timeout:     5 * time.Second,
		OnURL: func(authURL string) {
			u, _ := url.Parse(authURL)
			callback := u.Query().Get("redirect_uri") + "?error=access_denied"
			go func() {
				resp, err := http.Get(callback)
				if err == nil {
					_ = resp.Body.Close()
				}
			}()
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_denied")
}

func TestAuthorize_RequiresClientID(t *testing.T) {
	t.Parallel()
	_, err := Authorize(context.Background(), LoginOptions{Environment: "mypurecloud.com"})
	assert.Error(t, err)
}
