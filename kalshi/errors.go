package kalshi

import (
	"errors"
	"fmt"
)

var (
	ErrMissingPrivateKey = errors.New("kalshi: private key is required")
	ErrAuthUnavailable   = errors.New(AuthUnavailable)
	ErrInvalidPrivateKey = errors.New("kalshi: private key is not an RSA key")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Code != "" || e.Message != "" {
		return fmt.Sprintf("kalshi: http %d: %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("kalshi: http %d: %s", e.Status, e.Body)
}
