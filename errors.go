package ytreport

import (
	"ytreport/internal/retry"
	"ytreport/report"
	"ytreport/youtube"
)

// Error handling types exported for library users.
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytreport.ErrMalformedResponse) {
//		fmt.Println("API returned an unexpected payload")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var apiErr *ytreport.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s failed for %s: %v\n", apiErr.Op, apiErr.ID, apiErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// APIError wraps errors from a YouTube Data API call.
	APIError = youtube.APIError
	// RetryableError wraps errors that occurred after retries were exhausted.
	RetryableError = retry.RetryableError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrMalformedResponse indicates the API returned an unexpected payload.
	ErrMalformedResponse = youtube.ErrMalformedResponse
	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = report.ErrUnknownFormat
)

// IsRetryable determines if an error should be retried.
// It returns false for context cancellation and permanent errors.
func IsRetryable(err error) bool {
	return retry.IsRetryable(err)
}
