package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonitoredRoute represents a route in the watchlist with alert settings
type MonitoredRoute struct {
	Origin          string           `json:"origin"`
	Destination     string           `json:"destination"`
	Enabled         bool             `json:"enabled"`
	Priority        int              `json:"priority"` // 1=high, 2=medium, 3=low
	WatchPrice      *decimal.Decimal `json:"watch_price,omitempty"`
	AlertOnDrop     bool             `json:"alert_on_drop"`
	AlertRecipients []string         `json:"alert_recipients,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	AddedAt         time.Time        `json:"added_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
