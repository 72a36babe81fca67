package http

import (
	"fmt"
	"time"
)

// StatusError reports a retryable upstream status (429, 5xx or a throttling
// 403) seen by the transport. It only escapes the transport as the cause of an
// exhausted retry budget; otherwise the last response is handed back to the
// caller.
type StatusError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// RetryAfter is the server-requested wait, zero if none was sent.
	RetryAfter time.Duration
}

// Error returns a string representation of the status error.
func (e *StatusError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("upstream status %d: retry after %v", e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("upstream status %d", e.StatusCode)
}

// RetryDelay lets the retry loop honour Retry-After.
func (e *StatusError) RetryDelay() time.Duration {
	return e.RetryAfter
}

// IsServerError checks if status code is a server error (5xx).
func IsServerError(statusCode int) bool {
	return statusCode >= 500 && statusCode < 600
}

// ShouldRetry determines if a request should be retried based on status code.
func ShouldRetry(statusCode int) bool {
	switch statusCode {
	case 408, 429:
		return true
	}
	return IsServerError(statusCode)
}
