package purecloud

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		err          error
		notFound     bool
		conflict     bool
		rateLimited  bool
		unauthorized bool
		transient    bool
		retryable    bool
	}{
		{name: "nil error"},
		{name: "generic error", err: errors.New("boom")},
		{name: "not found", err: &APIError{Status: http.StatusNotFound}, notFound: true},
		{name: "conflict", err: &APIError{Status: http.StatusConflict}, conflict: true, retryable: true},
		{name: "rate limited", err: &APIError{Status: http.StatusTooManyRequests}, rateLimited: true, transient: true, retryable: true},
		{name: "bad gateway", err: &APIError{Status: http.StatusBadGateway}, transient: true, retryable: true},
		{name: "unavailable", err: &APIError{Status: http.StatusServiceUnavailable}, transient: true, retryable: true},
		{name: "gateway timeout", err: &APIError{Status: http.StatusGatewayTimeout}, transient: true, retryable: true},
		{name: "forbidden", err: &APIError{Status: http.StatusForbidden}, unauthorized: true},
		{name: "wrapped not found", err: fmt.Errorf("get role: %w", &APIError{Status: http.StatusNotFound}), notFound: true},
		{name: "internal error", err: &APIError{Status: http.StatusInternalServerError}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.notFound, IsNotFound(tt.err), "IsNotFound")
			assert.Equal(t, tt.conflict, IsConflict(tt.err), "IsConflict")
			assert.Equal(t, tt.rateLimited, IsRateLimited(tt.err), "IsRateLimited")
			assert.Equal(t, tt.unauthorized, IsUnauthorized(tt.err), "IsUnauthorized")
			assert.Equal(t, tt.transient, isTransient(tt.err), "isTransient")
			assert.Equal(t, tt.retryable, isRetryable(tt.err), "isRetryable")
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	t.Parallel()

	err := &APIError{Status: 404, Method: "GET", Path: "/api/v2/groups/x"}
	assert.Equal(t, "GET /api/v2/groups/x: 404: Not Found", err.Error())

	err = &APIError{Status: 400, Code: "bad.request", Message: "name taken", CorrelationID: "abc", Method: "POST", Path: "/api/v2/groups"}
	assert.Equal(t, "POST /api/v2/groups: 400 bad.request: name taken (correlation abc)", err.Error())
}

func TestCleanupError(t *testing.T) {
	t.Parallel()

	ce := &CleanupError{}
	assert.False(t, ce.HasErrors())
	ce.Add(nil)
	assert.False(t, ce.HasErrors())

	first := errors.New("first")
	ce.Add(first)
	assert.Equal(t, "first", ce.Error())
	assert.ErrorIs(t, ce, first)

	second := &APIError{Status: http.StatusConflict}
	ce.Add(second)
	assert.Contains(t, ce.Error(), "cleanup encountered 2 errors")
	assert.ErrorIs(t, ce, first)
	assert.True(t, IsConflict(ce))
}
