package common

import "errors"

// ErrTokenExpired is the well-known message the backend uses when a
// credential is no longer valid. Matching it lets the client distinguish
// "expired" from other authorization failures in logs; the forced-logout
// reaction is the same either way.
var ErrTokenExpired = errors.New("token expired")
