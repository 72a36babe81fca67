package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Data API error reasons for short-term throttling. quotaExceeded and
// dailyLimitExceeded are absent: they last until the daily quota reset.
var rateLimitReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
}

// IsRateLimited reports whether resp is a YouTube Data API throttling
// response: HTTP 429, or HTTP 403 whose error reason is a rate limit.
//
// The body of a 403 is read and replaced, so resp stays readable.
func IsRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if resp.StatusCode != http.StatusForbidden || resp.Body == nil {
		return false
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return false
	}

	return hasRateLimitReason(googleapi.CheckResponse(&http.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}))
}

func hasRateLimitReason(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, item := range apiErr.Errors {
		if rateLimitReasons[item.Reason] {
			return true
		}
	}
	return false
}
