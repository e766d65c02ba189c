package verify

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey is returned by NewClient when Config.APIKey is empty.
	ErrMissingAPIKey = errors.New("verify: API key is required")

	// ErrUnauthorized indicates the API rejected the supplied credentials.
	ErrUnauthorized = errors.New("verify: invalid API credentials")

	// ErrRateLimited indicates the API refused the request because the
	// account's rate limit was exceeded.
	ErrRateLimited = errors.New("verify: rate limit exceeded")
)

// APIError is a classified failure response from the verification API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("verify: API request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("verify: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap maps well-known status codes onto the package sentinels so that
// callers can classify with errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

// IsAuthFailure reports whether err is an authentication failure.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited reports whether err is a rate-limit failure.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
