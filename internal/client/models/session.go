// Package models defines the value types the client keeps in memory:
// session credential, quota counters, messages and (for admins) user records.
// The backend stays authoritative for all of them.
package models

import "github.com/dmitrijs2005/msgquota/internal/common"

// Role of an account, as resolved from the profile endpoint.
type Role string

const (
	RoleUser  Role = common.RoleUser
	RoleAdmin Role = common.RoleAdmin
)

// Session is the credential pair the client holds for the lifetime of a
// login. Token and Role are either both set or both empty; "logged in"
// means the token is present.
type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// LoggedIn reports whether the session carries a credential.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// IsAdmin reports whether the session belongs to an administrator account.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
