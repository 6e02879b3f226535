package models

import "time"

// NotificationStatus tracks an outbox row through the delivery worker.
type NotificationStatus string

const (
	NotificationQueued NotificationStatus = "queued"
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

func (s NotificationStatus) IsValid() bool {
	switch s {
	case NotificationQueued, NotificationSent, NotificationFailed:
		return true
	}
	return false
}

// Notification is a WhatsApp outbox entry. This service only composes
// and stores messages; delivery is handled by an external worker.
type Notification struct {
	ID             int64              `json:"id"`
	Channel        string             `json:"channel"`
	RecipientPhone string             `json:"recipient_phone"`
	Body           string             `json:"body"`
	DedupKey       string             `json:"dedup_key,omitempty"`
	Status         NotificationStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}
