package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/msgquota/internal/client/api"
	"github.com/dmitrijs2005/msgquota/internal/client/models"
	"github.com/dmitrijs2005/msgquota/internal/logging"
)

// Validation errors raised before any network call is made.
var (
	ErrEmptyMessage   = errors.New("please enter a message")
	ErrQuotaExhausted = errors.New("quota exceeded, cannot send messages")
)

// Dashboard is the USER view-model: the account's quota record and its
// own message list.
//
// Refresh operations replace local state wholesale with the server
// response; there is no merge. Send/delete apply an optimistic ±1 to
// UsedQuota which may drift from server truth until the next refresh.
// No ordering is enforced across in-flight calls: the last response to
// arrive wins.
type Dashboard struct {
	api    api.API
	log    logging.Logger
	alerts *Alerts

	mu       sync.RWMutex
	quota    models.QuotaState
	messages []models.Message
}

// NewDashboard builds an empty user dashboard state.
func NewDashboard(a api.API, log logging.Logger) *Dashboard {
	return &Dashboard{api: a, log: log, alerts: NewAlerts()}
}

// Alerts exposes the notice state for rendering.
func (d *Dashboard) Alerts() *Alerts { return d.alerts }

// Snapshot returns a copy of the current quota and message list.
func (d *Dashboard) Snapshot() (models.QuotaState, []models.Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	msgs := make([]models.Message, len(d.messages))
	copy(msgs, d.messages)
	return d.quota, msgs
}

// RefreshQuota fetches the quota record and replaces local state wholesale.
func (d *Dashboard) RefreshQuota(ctx context.Context) error {
	q, err := d.api.Quota(ctx)
	if err != nil {
		d.alerts.SetError("Failed to load quota")
		return err
	}
	d.mu.Lock()
	d.quota = q
	d.mu.Unlock()
	return nil
}

// RefreshMessages fetches the caller's messages and replaces the local
// list wholesale.
func (d *Dashboard) RefreshMessages(ctx context.Context) error {
	msgs, err := d.api.Messages(ctx)
	if err != nil {
		d.alerts.SetError("Failed to load messages")
		return err
	}
	d.mu.Lock()
	d.messages = msgs
	d.mu.Unlock()
	return nil
}

// RefreshAll runs both fetches concurrently. Each isolates its own
// failure: a broken message fetch neither blocks nor rolls back the quota
// fetch. Errors are reported through the alert state.
func (d *Dashboard) RefreshAll(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := d.RefreshQuota(ctx); err != nil {
			d.log.Debug(ctx, "quota refresh failed", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := d.RefreshMessages(ctx); err != nil {
			d.log.Debug(ctx, "message refresh failed", "error", err)
		}
		return nil
	})
	_ = g.Wait()
}

// Send posts a new message. Blank or whitespace-only content is rejected
// locally with no network call, as is sending with no remaining quota.
// On success the displayed quota drops to the server-returned remaining
// value, UsedQuota is optimistically incremented, and the message list is
// re-fetched. On failure no local state changes.
func (d *Dashboard) Send(ctx context.Context, content string) error {
	d.alerts.ClearError()

	if strings.TrimSpace(content) == "" {
		d.alerts.SetError("Please enter a message")
		return ErrEmptyMessage
	}
	d.mu.RLock()
	remaining := d.quota.Quota
	d.mu.RUnlock()
	if remaining <= 0 {
		d.alerts.SetError("Quota exceeded. Cannot send messages.")
		return ErrQuotaExhausted
	}

	serverRemaining, err := d.api.SendMessage(ctx, content)
	if err != nil {
		d.alerts.SetError(sendFailureText(err))
		return err
	}

	d.mu.Lock()
	d.quota.Quota = serverRemaining
	d.quota.UsedQuota++
	d.mu.Unlock()

	d.alerts.SetSuccess("Message sent successfully!")
	_ = d.RefreshMessages(ctx)
	return nil
}

// Delete removes one of the caller's pending messages. On success the
// displayed quota becomes the server-returned remaining value and
// UsedQuota is optimistically decremented, clamped at zero; the next full
// refresh is authoritative either way. On failure no local state changes.
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	d.alerts.ClearError()

	serverRemaining, err := d.api.DeleteMessage(ctx, id)
	if err != nil {
		d.alerts.SetError(failureText(err, "Failed to delete message"))
		return err
	}

	d.mu.Lock()
	d.quota.Quota = serverRemaining
	if d.quota.UsedQuota > 0 {
		d.quota.UsedQuota--
	}
	d.mu.Unlock()

	d.alerts.SetSuccess("Message deleted and quota reverted!")
	_ = d.RefreshMessages(ctx)
	return nil
}

// UseQuota consumes one unit via the legacy debit endpoint. It draws from
// the same counter as Send and gets the identical reconciliation.
func (d *Dashboard) UseQuota(ctx context.Context) error {
	d.alerts.ClearError()

	serverRemaining, err := d.api.UseQuota(ctx)
	if err != nil {
		d.alerts.SetError(failureText(err, "Quota exhausted"))
		return err
	}

	d.mu.Lock()
	d.quota.Quota = serverRemaining
	d.quota.UsedQuota++
	d.mu.Unlock()
	return nil
}

func sendFailureText(err error) string {
	return failureText(err, "Failed to send message")
}

// failureText prefers the server's reason and falls back to a static
// string when the failure carried none.
func failureText(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
