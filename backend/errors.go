package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound means the session identifier does not resolve
	// to a transaction; the payment link is invalid for good.
	ErrSessionNotFound = errors.New("payment session not found")

	// ErrGatewayUnavailable covers transport failures, 5xx responses
	// and an open circuit breaker.
	ErrGatewayUnavailable = errors.New("session gateway unavailable")
)

// SessionCreationError carries the backend's user-facing message when a
// create-payment-link call is rejected. The cart and form are preserved
// so the buyer may retry.
type SessionCreationError struct {
	Message string
}

func (e *SessionCreationError) Error() string {
	return fmt.Sprintf("session creation rejected: %s", e.Message)
}

// APIError is a non-2xx backend response outside the dedicated cases.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}
