package purecloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/oauth2"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/util/retry"
)

const (
	pageSize  = 100
	userAgent = "premium-app-installer"
)

// RequestObserver is notified after every API round trip.
type RequestObserver func(method, route string, status int, elapsed time.Duration)

// RealClient implements PlatformManager using the Genesys Cloud Platform API.
type RealClient struct {
	baseURL    string
	httpClient *http.Client
	timeouts   *config.Timeouts
	log        logr.Logger
	observe    RequestObserver
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithHTTPClient replaces the authenticated HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing and cleanup progress.
func WithLogger(log logr.Logger) ClientOption {
	return func(c *RealClient) {
		c.log = log
	}
}

// WithRequestObserver registers a callback for every API round trip.
func WithRequestObserver(fn RequestObserver) ClientOption {
	return func(c *RealClient) {
		c.observe = fn
	}
}

// NewRealClient creates a client for the API of environment, authenticating
// every request with tokens from ts.
func NewRealClient(ctx context.Context, environment string, ts oauth2.TokenSource, opts ...ClientOption) *RealClient {
	c := &RealClient{
		baseURL:    config.APIBaseURL(environment),
		httpClient: oauth2.NewClient(ctx, ts),
		timeouts:   config.LoadTimeouts(),
		log:        logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one API request, retrying rate limits and gateway failures.
// body is JSON encoded when non-nil; the response is decoded into out when non-nil.
func (c *RealClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", method, path, err)
		}
		payload = data
	}

	err := retry.WithExponentialBackoff(ctx, func() error {
		err := c.send(ctx, method, path, query, payload, out)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return retry.Fatal(err)
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.retryAfter > 0 {
			return retry.After(err, apiErr.retryAfter)
		}
		return err
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			c.log.V(1).Info("retrying request", "method", method, "path", path, "attempt", attempt, "delay", delay, "error", err.Error())
		}))

	var fatal *retry.FatalError
	if errors.As(err, &fatal) {
		return fatal.Err
	}
	return err
}

func (c *RealClient) send(ctx context.Context, method, path string, query url.Values, payload []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Request)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	elapsed := time.Since(start)
	c.log.V(2).Info("api request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", elapsed)
	if c.observe != nil {
		c.observe(method, routeOf(path), resp.StatusCode, elapsed)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{}
		_ = json.Unmarshal(data, apiErr)
		apiErr.Status = resp.StatusCode
		apiErr.Method = method
		apiErr.Path = path
		if id := resp.Header.Get("ININ-Correlation-Id"); id != "" {
			apiErr.CorrelationID = id
		}
		if s := resp.Header.Get("Retry-After"); s != "" {
			if secs, err := strconv.Atoi(s); err == nil {
				apiErr.retryAfter = time.Duration(secs) * time.Second
			}
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// routeOf reduces a request path to its route for metric labels by replacing
// ID segments with a placeholder.
func routeOf(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if i > 3 && looksLikeID(p) {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

func looksLikeID(s string) bool {
	if len(s) < 16 {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F' || r == '-') {
			return false
		}
	}
	return true
}

// collection wraps the standard list/get/create/delete endpoints of one
// resource type.
type collection[T any] struct {
	client *RealClient
	path   string
	kind   string
	name   func(T) string
}

// list returns every entity across all pages.
func (col collection[T]) list(ctx context.Context, query url.Values) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("pageSize", strconv.Itoa(pageSize))
		q.Set("pageNumber", strconv.Itoa(page))

		var listing entityListing[T]
		if err := col.client.do(ctx, http.MethodGet, col.path, q, nil, &listing); err != nil {
			return nil, fmt.Errorf("failed to list %ss: %w", col.kind, err)
		}
		all = append(all, listing.Entities...)
		if len(listing.Entities) == 0 || page >= listing.PageCount {
			return all, nil
		}
	}
}

// owned lists entities whose name carries prefix. An empty prefix matches nothing.
func (col collection[T]) owned(ctx context.Context, prefix string, query url.Values) ([]T, error) {
	if prefix == "" {
		return nil, nil
	}
	all, err := col.list(ctx, query)
	if err != nil {
		return nil, err
	}
	var out []T
	for _, e := range all {
		if strings.HasPrefix(col.name(e), prefix) {
			out = append(out, e)
		}
	}
	return out, nil
}

// byName returns the entity with exactly name, or the zero value.
func (col collection[T]) byName(ctx context.Context, name string, query url.Values) (T, error) {
	var zero T
	all, err := col.list(ctx, query)
	if err != nil {
		return zero, err
	}
	for _, e := range all {
		if col.name(e) == name {
			return e, nil
		}
	}
	return zero, nil
}

// get returns the entity with id, or the zero value when it does not exist.
func (col collection[T]) get(ctx context.Context, id string) (T, error) {
	var out T
	err := col.client.do(ctx, http.MethodGet, col.path+"/"+url.PathEscape(id), nil, nil, &out)
	if IsNotFound(err) {
		var zero T
		return zero, nil
	}
	return out, err
}

func (col collection[T]) create(ctx context.Context, body any) (T, error) {
	var out T
	err := col.client.do(ctx, http.MethodPost, col.path, nil, body, &out)
	return out, err
}

func (col collection[T]) update(ctx context.Context, id string, body any) (T, error) {
	var out T
	err := col.client.do(ctx, http.MethodPut, col.path+"/"+url.PathEscape(id), nil, body, &out)
	return out, err
}

func (col collection[T]) remove(ctx context.Context, id string, query url.Values) error {
	return col.client.do(ctx, http.MethodDelete, col.path+"/"+url.PathEscape(id), query, nil, nil)
}
