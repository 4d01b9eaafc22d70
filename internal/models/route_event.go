package models

import "time"

// Kafka event type constants
const (
	EventRouteAnalyzed  = "ROUTE_ANALYZED"
	EventTrendAlertSent = "TREND_ALERT_SENT"
)

// RouteEvent represents a Kafka event for route analysis activity
type RouteEvent struct {
	EventType      string    `json:"event_type"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Action         string    `json:"action,omitempty"`
	Confidence     float64   `json:"confidence,omitempty"`
	DataSource     string    `json:"data_source,omitempty"`
	RecipientCount int       `json:"recipient_count,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
