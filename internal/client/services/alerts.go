// Package services contains the view-model for the msgquota client: who is
// logged in, what their quota looks like, and what messages exist. The
// backend stays authoritative; local state is either an optimistic
// adjustment awaiting reconciliation or a wholesale copy of a server
// response.
package services

import (
	"sync"
	"time"
)

// successTTL is how long a success notice stays visible. Errors persist
// until the next action overwrites or clears them.
const successTTL = 3 * time.Second

// Alerts holds the user-facing notice state of one dashboard.
type Alerts struct {
	mu  sync.Mutex
	now func() time.Time

	errMsg       string
	successMsg   string
	successUntil time.Time
}

// NewAlerts builds an empty alert state.
func NewAlerts() *Alerts {
	return &Alerts{now: time.Now}
}

// SetError records an error notice, replacing any prior one.
func (a *Alerts) SetError(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errMsg = msg
}

// ClearError removes the error notice. Called at the start of a new action.
func (a *Alerts) ClearError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errMsg = ""
}

// SetSuccess records a transient success notice.
func (a *Alerts) SetSuccess(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.successMsg = msg
	a.successUntil = a.now().Add(successTTL)
}

// Error returns the current error notice, or "".
func (a *Alerts) Error() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errMsg
}

// Success returns the current success notice, or "" once its display
// window has elapsed.
func (a *Alerts) Success() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.successMsg == "" || a.now().After(a.successUntil) {
		return ""
	}
	return a.successMsg
}
