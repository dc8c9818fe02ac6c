package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/msgquota/internal/client/models"
)

// confirmFn is a test seam for the destructive-action prompt.
var confirmFn = Confirm

func (a *App) requireAdmin() bool {
	if a.admin == nil {
		fmt.Fprintln(a.out, "Log in as an ADMIN for this command.")
		return false
	}
	return true
}

// SetQuota pushes a new quota ceiling for a user: setquota <userId> <n>.
func (a *App) SetQuota(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: setquota <userId> <quota>")
		return nil
	}

	err := a.admin.SetUserQuota(ctx, args[0], args[1])
	a.syncViews(ctx)
	_ = a.Show(ctx)
	return err
}

// Accept moderates a pending message to accepted.
func (a *App) Accept(ctx context.Context, args []string) error {
	return a.moderate(ctx, args, models.StatusAccepted)
}

// Reject moderates a pending message to rejected.
func (a *App) Reject(ctx context.Context, args []string) error {
	return a.moderate(ctx, args, models.StatusRejected)
}

func (a *App) moderate(ctx context.Context, args []string, decision models.MessageStatus) error {
	if !a.requireAdmin() {
		return nil
	}
	if len(args) != 1 {
		verb := "accept"
		if decision == models.StatusRejected {
			verb = "reject"
		}
		fmt.Fprintf(a.out, "Usage: %s <messageId>\n", verb)
		return nil
	}

	err := a.admin.Moderate(ctx, args[0], decision)
	a.syncViews(ctx)
	_ = a.Show(ctx)
	return err
}

// DeleteUser removes an account after an interactive confirmation:
// deluser <userId>. Declining the prompt aborts silently.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: deluser <userId>")
		return nil
	}

	err := a.admin.DeleteUser(ctx, args[0], func(prompt string) bool {
		return confirmFn(a.reader, prompt, a.out)
	})
	a.syncViews(ctx)
	_ = a.Show(ctx)
	return err
}
