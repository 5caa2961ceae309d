package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	Request           time.Duration // Timeout for a single API request
	Delete            time.Duration // Timeout for one delete operation including retries
	Install           time.Duration // Timeout for a whole install or uninstall run
	Login             time.Duration // Timeout for the browser login round trip
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
	Concurrency       int           // Maximum concurrent API calls per fan-out
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - PURECLOUD_TIMEOUT_REQUEST (default: 30s)
//   - PURECLOUD_TIMEOUT_DELETE (default: 2m)
//   - PURECLOUD_TIMEOUT_INSTALL (default: 15m)
//   - PURECLOUD_TIMEOUT_LOGIN (default: 5m)
//   - PURECLOUD_RETRY_MAX_ATTEMPTS (default: 5)
//   - PURECLOUD_RETRY_INITIAL_DELAY (default: 1s)
//   - PURECLOUD_CONCURRENCY (default: 4)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Request:           parseDuration("PURECLOUD_TIMEOUT_REQUEST", 30*time.Second),
		Delete:            parseDuration("PURECLOUD_TIMEOUT_DELETE", 2*time.Minute),
		Install:           parseDuration("PURECLOUD_TIMEOUT_INSTALL", 15*time.Minute),
		Login:             parseDuration("PURECLOUD_TIMEOUT_LOGIN", 5*time.Minute),
		RetryMaxAttempts:  parseInt("PURECLOUD_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("PURECLOUD_RETRY_INITIAL_DELAY", 1*time.Second),
		Concurrency:       parseInt("PURECLOUD_CONCURRENCY", 4),
	}
}

// TestTimeouts returns short timeouts suitable for tests against local servers.
func TestTimeouts() *Timeouts {
	return &Timeouts{
		Request:           5 * time.Second,
		Delete:            5 * time.Second,
		Install:           30 * time.Second,
		Login:             5 * time.Second,
		RetryMaxAttempts:  3,
		RetryInitialDelay: 5 * time.Millisecond,
		Concurrency:       4,
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
