// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max attempts,
// initial delay, and maximum delay. Errors wrapped with [Fatal] stop the loop
// immediately. Errors wrapped with [After] replace the next computed delay with
// the server supplied one (Retry-After on HTTP 429 responses).
package retry
