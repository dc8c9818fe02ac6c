// Package common contains shared constants and sentinel errors used across
// msgquota components.
package common

// AuthHeaderName is the HTTP header carrying the bearer credential on
// outbound requests.
const AuthHeaderName = "Authorization"

// RequestIDHeaderName is the HTTP header carrying the client-generated
// request identifier.
const RequestIDHeaderName = "X-Request-Id"

// RoleUser and RoleAdmin are the two account roles the backend knows about.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
