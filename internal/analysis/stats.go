package analysis

import (
	"errors"
	"math"
	"time"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// Trend summarizes the movement from the first to the last point of a series.
// Percentage is the absolute magnitude of the change relative to the first price.
func Trend(series []models.PricePoint) models.TrendSummary {
	if len(series) == 0 {
		return models.TrendSummary{Trend: models.TrendNeutral}
	}

	first := series[0].Price
	last := series[len(series)-1].Price

	switch {
	case last > first:
		return models.TrendSummary{
			Trend:      models.TrendUp,
			Percentage: round2((last - first) / first * 100),
		}
	case last < first:
		return models.TrendSummary{
			Trend:      models.TrendDown,
			Percentage: round2((first - last) / first * 100),
		}
	default:
		return models.TrendSummary{Trend: models.TrendNeutral}
	}
}

// MovingAverage computes the mean price of the last windowDays points.
func MovingAverage(series []models.PricePoint, windowDays int) (float64, error) {
	if windowDays < 1 {
		return 0, errors.New("window must be positive")
	}
	if len(series) < windowDays {
		return 0, errors.New("not enough data for moving average")
	}

	sum := 0.0
	for i := len(series) - windowDays; i < len(series); i++ {
		sum += series[i].Price
	}
	return sum / float64(windowDays), nil
}

// Volatility returns the coefficient of variation (stddev/mean * 100) of the
// given prices. A single price has zero deviation and therefore zero volatility.
func Volatility(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	mean := 0.0
	for _, p := range prices {
		mean += p
	}
	mean /= float64(len(prices))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, p := range prices {
		d := p - mean
		variance += d * d
	}
	variance /= float64(len(prices))

	return math.Sqrt(variance) / mean * 100
}

// SeasonalFactor returns the fare multiplier for the month of the given date.
// June-August and December are peak travel months; late winter is the trough.
func SeasonalFactor(date time.Time) float64 {
	m := int(date.Month()) - 1
	switch {
	case m >= 5 && m <= 7:
		return 1.1
	case m == 11:
		return 1.15
	case m >= 8 && m <= 10:
		return 1.05
	case m >= 1 && m <= 3:
		return 0.9
	default:
		return 1.0
	}
}

// Prices extracts the price column from a series.
func Prices(series []models.PricePoint) []float64 {
	prices := make([]float64, len(series))
	for i, p := range series {
		prices[i] = p.Price
	}
	return prices
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
