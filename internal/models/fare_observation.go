package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Observation source constants
const (
	ObservationSourceAPI    = "api"
	ObservationSourceImport = "import"
)

// FareObservation represents the observed best fare for a route on a travel date
type FareObservation struct {
	ID          int             `json:"id"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	TravelDate  time.Time       `json:"travel_date"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Source      string          `json:"source"`
	CreatedAt   time.Time       `json:"created_at"`
}
