package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/msgquota/internal/client/api"
	"github.com/dmitrijs2005/msgquota/internal/client/models"
	"github.com/dmitrijs2005/msgquota/internal/logging"
)

var (
	// ErrBadQuotaInput is raised when the entered quota is not an integer.
	// Caught locally; no network call is made.
	ErrBadQuotaInput = errors.New("quota must be a whole number")

	// ErrAdminUndeletable guards the policy that ADMIN accounts are never
	// offered for deletion.
	ErrAdminUndeletable = errors.New("admin accounts cannot be deleted")

	// ErrUnknownUser is raised when the target id is not in the local list.
	ErrUnknownUser = errors.New("unknown user")

	// ErrBadDecision is raised for a moderation decision other than
	// accepted or rejected.
	ErrBadDecision = errors.New("decision must be accepted or rejected")
)

// ConfirmFunc asks the human to confirm a destructive action. Returning
// false silently aborts it.
type ConfirmFunc func(prompt string) bool

// AdminBoard is the ADMIN view-model: every account and every message.
type AdminBoard struct {
	api    api.API
	log    logging.Logger
	alerts *Alerts

	mu       sync.RWMutex
	users    []models.UserRecord
	messages []models.Message
}

// NewAdminBoard builds an empty admin board state.
func NewAdminBoard(a api.API, log logging.Logger) *AdminBoard {
	return &AdminBoard{api: a, log: log, alerts: NewAlerts()}
}

// Alerts exposes the notice state for rendering.
func (b *AdminBoard) Alerts() *Alerts { return b.alerts }

// Snapshot returns copies of the current user and message lists.
func (b *AdminBoard) Snapshot() ([]models.UserRecord, []models.Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	users := make([]models.UserRecord, len(b.users))
	copy(users, b.users)
	msgs := make([]models.Message, len(b.messages))
	copy(msgs, b.messages)
	return users, msgs
}

// RefreshUsers fetches all accounts and replaces the local list wholesale.
func (b *AdminBoard) RefreshUsers(ctx context.Context) error {
	users, err := b.api.Users(ctx)
	if err != nil {
		b.alerts.SetError(failureText(err, "Failed to load users"))
		return err
	}
	b.mu.Lock()
	b.users = users
	b.mu.Unlock()
	return nil
}

// RefreshMessages fetches all messages (with senders) and replaces the
// local list wholesale.
func (b *AdminBoard) RefreshMessages(ctx context.Context) error {
	msgs, err := b.api.AllMessages(ctx)
	if err != nil {
		b.alerts.SetError(failureText(err, "Failed to load messages"))
		return err
	}
	b.mu.Lock()
	b.messages = msgs
	b.mu.Unlock()
	return nil
}

// RefreshAll runs both fetches concurrently with isolated failures.
func (b *AdminBoard) RefreshAll(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := b.RefreshUsers(ctx); err != nil {
			b.log.Debug(ctx, "user refresh failed", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := b.RefreshMessages(ctx); err != nil {
			b.log.Debug(ctx, "message refresh failed", "error", err)
		}
		return nil
	})
	_ = g.Wait()
}

// SetUserQuota parses the entered quota and pushes the new ceiling, then
// re-fetches the user list for authoritative post-update values.
func (b *AdminBoard) SetUserQuota(ctx context.Context, userID, rawQuota string) error {
	b.alerts.ClearError()

	quota, err := strconv.Atoi(strings.TrimSpace(rawQuota))
	if err != nil {
		b.alerts.SetError("Quota must be a whole number")
		return ErrBadQuotaInput
	}

	if err := b.api.SetUserQuota(ctx, userID, quota); err != nil {
		b.alerts.SetError(failureText(err, "Failed to update quota"))
		return err
	}

	b.alerts.SetSuccess("Quota updated successfully")
	return b.RefreshUsers(ctx)
}

// Moderate records the decision for a message and re-fetches the list.
func (b *AdminBoard) Moderate(ctx context.Context, messageID string, decision models.MessageStatus) error {
	b.alerts.ClearError()

	if decision != models.StatusAccepted && decision != models.StatusRejected {
		b.alerts.SetError("Decision must be accepted or rejected")
		return ErrBadDecision
	}

	if err := b.api.ModerateMessage(ctx, messageID, decision); err != nil {
		b.alerts.SetError(failureText(err, "Failed to update message status"))
		return err
	}

	b.alerts.SetSuccess(fmt.Sprintf("Message %s successfully", decision))
	return b.RefreshMessages(ctx)
}

// DeleteUser removes an account after explicit human confirmation.
// Declining the confirmation aborts silently. ADMIN accounts are refused
// before the prompt is even shown. On success the user disappears from
// the local list immediately (filter, not refetch).
func (b *AdminBoard) DeleteUser(ctx context.Context, userID string, confirm ConfirmFunc) error {
	b.alerts.ClearError()

	target, ok := b.findUser(userID)
	if !ok {
		b.alerts.SetError("Unknown user")
		return ErrUnknownUser
	}
	if !target.Deletable() {
		b.alerts.SetError("Admin accounts cannot be deleted")
		return ErrAdminUndeletable
	}

	if !confirm(fmt.Sprintf("Delete user %s (%s)?", target.Name, target.Email)) {
		return nil
	}

	if err := b.api.DeleteUser(ctx, userID); err != nil {
		b.alerts.SetError(failureText(err, "Delete failed"))
		return err
	}

	b.mu.Lock()
	kept := b.users[:0]
	for _, u := range b.users {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	b.users = kept
	b.mu.Unlock()

	b.alerts.SetSuccess("User deleted successfully")
	return nil
}

func (b *AdminBoard) findUser(userID string) (models.UserRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, u := range b.users {
		if u.ID == userID {
			return u, true
		}
	}
	return models.UserRecord{}, false
}
