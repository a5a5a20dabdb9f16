package account

import (
	"errors"
	"fmt"
)

// AuthError is returned when the platform rejects a login. The status and
// reason come from the response body, not the HTTP status line.
type AuthError struct {
	Status int
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("account: login rejected (status %d, reason %q)", e.Status, e.Reason)
}

// IsAuthError checks if an error is a login rejection.
func IsAuthError(err error) bool {
	_, ok := AsAuthError(err)
	return ok
}

// AsAuthError extracts an AuthError from err if possible.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	ok := errors.As(err, &ae)
	return ae, ok
}

// TransportError is a network-level failure talking to the platform. It is
// never retried here; callers decide whether to refresh the session or
// surface it.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("account: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError checks if an error is a network-level failure.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
