package models

import "time"

// Data source constants
const (
	DataSourceLive = "Live"
	DataSourceMock = "Mock"
)

// Trend direction constants
const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

// PricePoint represents one day of a route's fare series. LowestPrice and
// HighestPrice are a derived uncertainty band around Price, not measured data.
type PricePoint struct {
	Date         time.Time `json:"date"`
	Price        float64   `json:"price"`
	LowestPrice  float64   `json:"lowest_price"`
	HighestPrice float64   `json:"highest_price"`
	Interpolated bool      `json:"interpolated,omitempty"`
}

// WithBand returns a PricePoint for price on date with a symmetric band of the
// given fraction (0.10 for observed/interpolated points, 0.05 for forecasts).
func WithBand(date time.Time, price float64, band float64, interpolated bool) PricePoint {
	return PricePoint{
		Date:         date,
		Price:        price,
		LowestPrice:  price * (1 - band),
		HighestPrice: price * (1 + band),
		Interpolated: interpolated,
	}
}

// TrendSummary describes the first-to-last movement of a series.
type TrendSummary struct {
	Trend      string  `json:"trend"`
	Percentage float64 `json:"percentage"`
}

// RouteAnalysis is the complete result of one route query. Every field is
// always populated; degraded runs are flagged through the recommendation's
// action and confidence rather than by omitting data.
type RouteAnalysis struct {
	Origin                string          `json:"origin"`
	Destination           string          `json:"destination"`
	PriceHistory          []PricePoint    `json:"price_history"`
	PricePredictions      []PricePoint    `json:"price_predictions"`
	BookingRecommendation *Recommendation `json:"booking_recommendation"`
	TrendSummary          TrendSummary    `json:"trend_summary"`
	DataSource            string          `json:"data_source"`
	AnalyzedAt            time.Time       `json:"analyzed_at"`
}
