package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized signals that the backend rejected the credential. It is
// the only error class with a side effect beyond being displayed: the
// client reacts with a forced logout, uniformly for every endpoint.
var ErrUnauthorized = errors.New("unauthorized")

// genericFailure is shown when the server supplies no reason of its own.
const genericFailure = "request failed"

// Error is a non-authorization request failure carrying the server's
// reason when one was provided.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status %d)", genericFailure, e.Status)
	}
	return e.Message
}
