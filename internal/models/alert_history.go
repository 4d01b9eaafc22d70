package models

import "time"

// Notification channel constants
const (
	ChannelEmail = "email"
	ChannelKafka = "kafka"
)

// AlertHistory represents a dispatched trend alert record
type AlertHistory struct {
	ID                int       `json:"id"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	Action            string    `json:"action"`
	Confidence        float64   `json:"confidence"`
	Message           string    `json:"message,omitempty"`
	RecipientCount    int       `json:"recipient_count"`
	DispatchSucceeded bool      `json:"dispatch_succeeded"`
	SentAt            time.Time `json:"sent_at"`
}
