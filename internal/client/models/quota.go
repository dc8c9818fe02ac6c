package models

import "time"

// QuotaState mirrors the backend's per-account quota record.
//
// Quota is the remaining allowance as reported by the last fetch or
// mutating call. UsedQuota is adjusted optimistically by ±1 on send/delete
// and may drift from the server value until the next full refresh.
type QuotaState struct {
	Quota     int       `json:"quota"`
	UsedQuota int       `json:"usedQuota"`
	Expiry    time.Time `json:"expiry"`
}

// DaysLeft returns the number of whole days until the quota expiry,
// rounded up. Negative when the expiry is in the past.
func (q QuotaState) DaysLeft(now time.Time) int {
	d := q.Expiry.Sub(now)
	days := d / (24 * time.Hour)
	if d%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}
