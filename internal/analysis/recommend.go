package analysis

import (
	"fmt"
	"math"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// Classify maps a historical series, its 14-day forecast and the forecast
// statistics to a booking recommendation. The decision ladder is evaluated in
// order; the first matching rule wins.
func Classify(history, forecast []models.PricePoint, volatility, confidenceFactor float64) *models.Recommendation {
	if len(forecast) == 0 || len(history) == 0 {
		return &models.Recommendation{
			Action:    models.ActionInsufficientData,
			Reasoning: "Not enough fare history to make a booking recommendation.",
		}
	}

	current := history[len(history)-1].Price
	if current <= 0 {
		return Degraded()
	}

	recentTrend := recentTrendPct(history)

	bestDay := 0
	minPredicted := forecast[0].Price
	for i, p := range forecast {
		if p.Price < minPredicted {
			minPredicted = p.Price
			bestDay = i
		}
	}
	predictedChange := (minPredicted - current) / current * 100

	rec := &models.Recommendation{
		Confidence:    confidence(volatility, confidenceFactor, len(history)),
		BestDay:       bestDay,
		ExpectedPrice: minPredicted,
		PriceChange:   round2(predictedChange),
	}

	switch {
	case predictedChange <= -5:
		rec.Action = models.ActionWait
		rec.Reasoning = fmt.Sprintf(
			"Fares are predicted to drop %.1f%%, with the lowest price expected in %d days. Waiting should pay off.",
			-predictedChange, bestDay+1)
	case predictedChange >= 5:
		rec.Action = models.ActionBookNow
		rec.Reasoning = fmt.Sprintf(
			"Fares are expected to rise %.1f%% over the next two weeks. Booking now is likely the cheapest option.",
			predictedChange)
	case recentTrend <= -7:
		rec.Action = models.ActionWait
		rec.Reasoning = fmt.Sprintf(
			"Fares have fallen %.1f%% recently and the downward trend may continue a little longer.",
			-recentTrend)
	case recentTrend >= 7 && predictedChange <= 2:
		rec.Action = models.ActionBookNow
		rec.Reasoning = fmt.Sprintf(
			"Fares rose %.1f%% recently and appear to be stabilizing. Booking now avoids further increases.",
			recentTrend)
	case recentTrend >= 7:
		rec.Action = models.ActionMonitor
		rec.Reasoning = fmt.Sprintf(
			"Fares rose %.1f%% recently and remain volatile. Watch the route for a few days before committing.",
			recentTrend)
	default:
		rec.Action = models.ActionFlexible
		rec.Reasoning = "No strong price movement expected. Book whenever the schedule suits you."
	}

	return rec
}

// Degraded is the hardcoded recommendation used when classification fails.
func Degraded() *models.Recommendation {
	return &models.Recommendation{
		Action:     models.ActionMonitor,
		Confidence: 0.2,
		Reasoning:  "Price analysis is temporarily limited. Monitor the route and check back soon.",
	}
}

// recentTrendPct is the percent change over the last min(7, len) points.
func recentTrendPct(history []models.PricePoint) float64 {
	window := history
	if len(window) > 7 {
		window = window[len(window)-7:]
	}
	first := window[0].Price
	if first == 0 {
		return 0
	}
	return (window[len(window)-1].Price - first) / first * 100
}

// confidence bands volatility into a base score, scales it by the forecast
// confidence factor and floors it by how much history backs the call.
func confidence(volatility, confidenceFactor float64, historyLen int) float64 {
	var base float64
	switch {
	case volatility < 5:
		base = 0.85
	case volatility < 10:
		base = 0.70
	case volatility < 15:
		base = 0.50
	default:
		base = 0.30
	}

	score := base * confidenceFactor

	floor := 0.25
	if historyLen >= 7 {
		floor = 0.4
	}
	return round2(math.Max(score, floor))
}
