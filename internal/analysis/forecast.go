package analysis

import (
	"errors"
	"math"
	"time"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// ForecastDays is the length of every projection.
const ForecastDays = 14

// forecastBand is the uncertainty band around projected prices.
const forecastBand = 0.05

// ErrInsufficientData is returned when a series is too short to project from.
var ErrInsufficientData = errors.New("insufficient data for forecasting")

// Forecaster projects a fare series forward as an autoregressive random walk:
// each projected day compounds trend, weekday, seasonal and noise factors onto
// the previous projected price.
type Forecaster struct {
	Rand Rand
}

// ForecastResult carries the projection together with the statistics that
// produced it; the classifier consumes both.
type ForecastResult struct {
	Points           []models.PricePoint
	Volatility       float64
	ConfidenceFactor float64
}

// Forecast projects the next ForecastDays prices from the historical series.
// Requires at least two points.
func (f *Forecaster) Forecast(history []models.PricePoint) (*ForecastResult, error) {
	if len(history) < 2 {
		return nil, ErrInsufficientData
	}

	recent := history
	if len(recent) > 30 {
		recent = recent[len(recent)-30:]
	}
	rc := len(recent)

	shortAvg, err := MovingAverage(recent, minInt(7, rc/2))
	if err != nil {
		shortAvg = recent[rc-1].Price
	}
	longAvg, err := MovingAverage(recent, minInt(14, int(float64(rc)*0.8)))
	if err != nil {
		longAvg = recent[0].Price
	}

	volatility := Volatility(Prices(recent))
	confidence := math.Min(1, float64(rc)/15)

	trendFactor := 1 - 0.003*confidence
	if shortAvg > longAvg {
		trendFactor = 1 + 0.003*confidence
	}
	volImpact := math.Min(volatility/100, 0.05)
	randomVariance := math.Min(0.5+0.5*confidence, 1)

	points := make([]models.PricePoint, 0, ForecastDays)
	prev := history[len(history)-1].Price
	date := history[len(history)-1].Date
	for day := 0; day < ForecastDays; day++ {
		date = date.AddDate(0, 0, 1)

		dayFactor := 0.99
		if isWeekend(date) {
			dayFactor = 1.02
		}
		randomFactor := 1 + unit(f.Rand)*volImpact*randomVariance

		prev = math.Round(prev * trendFactor * dayFactor * SeasonalFactor(date) * randomFactor)
		points = append(points, models.WithBand(date, prev, forecastBand, false))
	}

	return &ForecastResult{
		Points:           points,
		Volatility:       volatility,
		ConfidenceFactor: confidence,
	}, nil
}

// Fallback produces a degraded ForecastDays projection as a plain day-over-day
// random walk (-1.8%..+2.2% with a 1% weekend bump). Used when the primary
// model cannot run; the caller pairs it with an insufficient-data recommendation.
func (f *Forecaster) Fallback(history []models.PricePoint) []models.PricePoint {
	if len(history) == 0 {
		return nil
	}

	points := make([]models.PricePoint, 0, ForecastDays)
	prev := history[len(history)-1].Price
	date := history[len(history)-1].Date
	for day := 0; day < ForecastDays; day++ {
		date = date.AddDate(0, 0, 1)

		factor := 1 + (f.Rand.Float64()*0.04 - 0.018)
		if isWeekend(date) {
			factor += 0.01
		}

		prev = math.Round(prev * factor)
		points = append(points, models.WithBand(date, prev, forecastBand, false))
	}
	return points
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
