package purecloud

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrLoginRequired is returned when browser auth is configured but no usable
// cached token exists.
var ErrLoginRequired = errors.New("no cached login, run 'premium-app login' first")

// APIError is a non-2xx response from the Platform API.
type APIError struct {
	Status        int    `json:"status"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	CorrelationID string `json:"contextId"`

	Method string `json:"-"`
	Path   string `json:"-"`

	retryAfter time.Duration
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	s := fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.Status)
	if e.Code != "" {
		s += " " + e.Code
	}
	s += ": " + msg
	if e.CorrelationID != "" {
		s += " (correlation " + e.CorrelationID + ")"
	}
	return s
}

// hasStatus reports whether err is an APIError with one of the given statuses.
func hasStatus(err error, statuses ...int) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, s := range statuses {
		if apiErr.Status == s {
			return true
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict checks if an error indicates a conflict occurred.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsRateLimited checks if an error indicates rate limiting.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsUnauthorized checks if the token was rejected or lacks permission.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized, http.StatusForbidden)
}

// isTransient reports errors worth retrying for any request: rate limiting
// and gateway failures.
func isTransient(err error) bool {
	return hasStatus(err,
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
	)
}

// isRetryable extends isTransient with conflicts, which deletes hit while a
// dependent resource is still being torn down.
func isRetryable(err error) bool {
	return isTransient(err) || IsConflict(err)
}
