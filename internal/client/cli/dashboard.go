package cli

import (
	"context"
	"fmt"
	"strings"
)

// Show renders the active dashboard from current in-memory state. The
// view state is re-aligned with the session first, so a forced logout
// that happened in the background (a rejected poll, say) surfaces as the
// logged-out view right here rather than at the next mutating command.
func (a *App) Show(ctx context.Context) error {
	a.syncViews(ctx)
	switch {
	case a.admin != nil:
		users, msgs := a.admin.Snapshot()
		renderAdmin(a.out, users, msgs, a.admin.Alerts())
	case a.dashboard != nil:
		quota, msgs := a.dashboard.Snapshot()
		renderUser(a.out, quota, msgs, a.dashboard.Alerts())
	default:
		fmt.Fprintln(a.out, "Not logged in. Use login or signup.")
	}
	return nil
}

// Refresh re-fetches the active view synchronously and renders it. The
// scheduled poller keeps doing the same thing every interval in the
// background.
func (a *App) Refresh(ctx context.Context) error {
	switch {
	case a.admin != nil:
		a.admin.RefreshAll(ctx)
	case a.dashboard != nil:
		a.dashboard.RefreshAll(ctx)
	default:
		fmt.Fprintln(a.out, "Not logged in. Use login or signup.")
		return nil
	}
	a.syncViews(ctx)
	return a.Show(ctx)
}

// Send posts a message composed of the command arguments.
func (a *App) Send(ctx context.Context, args []string) error {
	if a.dashboard == nil {
		fmt.Fprintln(a.out, "Log in as a USER to send messages.")
		return nil
	}
	content := strings.Join(args, " ")

	err := a.dashboard.Send(ctx, content)
	a.wake()
	a.syncViews(ctx)
	_ = a.Show(ctx)
	return err
}

// Delete removes one of the caller's pending messages by id.
func (a *App) Delete(ctx context.Context, args []string) error {
	if a.dashboard == nil {
		fmt.Fprintln(a.out, "Log in as a USER to delete messages.")
		return nil
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: del <messageId>")
		return nil
	}

	err := a.dashboard.Delete(ctx, args[0])
	a.wake()
	a.syncViews(ctx)
	_ = a.Show(ctx)
	return err
}

// UseQuota consumes one quota unit via the legacy debit endpoint.
func (a *App) UseQuota(ctx context.Context) error {
	if a.dashboard == nil {
		fmt.Fprintln(a.out, "Log in as a USER to use quota.")
		return nil
	}

	err := a.dashboard.UseQuota(ctx)
	a.syncViews(ctx)
	_ = a.Show(ctx)
	return err
}
