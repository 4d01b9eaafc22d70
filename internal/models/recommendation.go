package models

// Booking action constants
const (
	ActionBookNow          = "book-now"
	ActionWait             = "wait"
	ActionMonitor          = "monitor"
	ActionFlexible         = "flexible"
	ActionInsufficientData = "insufficient-data"
)

// Recommendation is the classifier's verdict for a route query. BestDay indexes
// into the 14-day forecast; PriceChange is the predicted percent change from the
// current price to the forecast minimum.
type Recommendation struct {
	Action        string  `json:"action"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
	BestDay       int     `json:"best_day"`
	ExpectedPrice float64 `json:"expected_price"`
	PriceChange   float64 `json:"price_change"`
}
