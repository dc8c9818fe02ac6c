package models

import "time"

// MessageStatus is the moderation state of a message. A message is created
// pending and transitions exactly once, to accepted or rejected, and only
// by an administrator. The client never re-validates the transition; it is
// a rendering concern here and enforced by the backend.
type MessageStatus string

const (
	StatusPending  MessageStatus = "pending"
	StatusAccepted MessageStatus = "accepted"
	StatusRejected MessageStatus = "rejected"
)

// Sender identifies the author of a message; populated only in admin views.
type Sender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Message is a single quota-debited message as the backend reports it.
type Message struct {
	ID        string        `json:"_id"`
	Content   string        `json:"content"`
	Status    MessageStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Sender    *Sender       `json:"sender,omitempty"`
}

// Pending reports whether the message still awaits moderation. Only
// pending messages may be deleted by their sender or moderated by an admin.
func (m Message) Pending() bool {
	return m.Status == StatusPending
}

// CountByStatus tallies messages per moderation state.
func CountByStatus(msgs []Message) (pending, accepted, rejected int) {
	for _, m := range msgs {
		switch m.Status {
		case StatusAccepted:
			accepted++
		case StatusRejected:
			rejected++
		default:
			pending++
		}
	}
	return pending, accepted, rejected
}
