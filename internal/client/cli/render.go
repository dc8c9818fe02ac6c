package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/msgquota/internal/client/models"
	"github.com/dmitrijs2005/msgquota/internal/client/services"
)

// nowFn is a test seam for the clock used in rendering.
var nowFn = time.Now

// renderUser writes the USER dashboard: quota stats, the compose hint,
// and the caller's messages.
func renderUser(w io.Writer, quota models.QuotaState, msgs []models.Message, alerts *services.Alerts) {
	fmt.Fprintln(w, "=== User Dashboard ===")
	fmt.Fprintf(w, "Remaining Quota: %d\n", quota.Quota)
	fmt.Fprintf(w, "Used Quota:      %d\n", quota.UsedQuota)
	if !quota.Expiry.IsZero() {
		fmt.Fprintf(w, "Expiry Date:     %s\n", quota.Expiry.Local().Format("2006-01-02"))
		fmt.Fprintf(w, "Days Left:       %d\n", quota.DaysLeft(nowFn()))
	}
	fmt.Fprintf(w, "Total Messages:  %d\n", len(msgs))

	if quota.Quota <= 0 {
		fmt.Fprintln(w, "Quota exceeded. Cannot send messages.")
	}

	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages yet. Start sending!")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tSENT\tCONTENT")
		for _, m := range msgs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				m.ID, m.Status, m.Timestamp.Local().Format("2006-01-02 15:04"), m.Content)
		}
		tw.Flush()
	}

	renderAlerts(w, alerts)
}

// renderAdmin writes the ADMIN dashboard: derived stats, the user table,
// and every message with its sender. Moderation actions are mentioned
// only next to pending messages, and deletion is never offered for ADMIN
// accounts.
func renderAdmin(w io.Writer, users []models.UserRecord, msgs []models.Message, alerts *services.Alerts) {
	pending, accepted, rejected := models.CountByStatus(msgs)

	fmt.Fprintln(w, "=== Admin Dashboard ===")
	fmt.Fprintf(w, "Total Users: %d  Pending: %d  Accepted: %d  Rejected: %d\n",
		len(users), pending, accepted, rejected)

	fmt.Fprintln(w, "--- Users & Quotas ---")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tQUOTA\tUSED\tACTIONS")
	for _, u := range users {
		actions := "setquota"
		if u.Deletable() {
			actions += ", deluser"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			u.ID, u.Name, u.Email, u.Role, u.Quota, u.UsedQuota, actions)
	}
	tw.Flush()

	fmt.Fprintln(w, "--- Messages ---")
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages yet")
	} else {
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tFROM\tSENT\tCONTENT\tACTIONS")
		for _, m := range msgs {
			from := "Unknown"
			if m.Sender != nil {
				from = fmt.Sprintf("%s (%s)", m.Sender.Name, m.Sender.Email)
			}
			actions := ""
			if m.Pending() {
				actions = "accept, reject"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				m.ID, m.Status, from, m.Timestamp.Local().Format("2006-01-02 15:04"), m.Content, actions)
		}
		tw.Flush()
	}

	renderAlerts(w, alerts)
}

// renderAlerts writes the notice lines: errors persist until the next
// action, successes vanish after their display window.
func renderAlerts(w io.Writer, alerts *services.Alerts) {
	if msg := alerts.Error(); msg != "" {
		fmt.Fprintf(w, "! %s\n", msg)
	}
	if msg := alerts.Success(); msg != "" {
		fmt.Fprintf(w, "* %s\n", msg)
	}
}
