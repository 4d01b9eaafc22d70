package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

func dailySeries(start time.Time, prices ...float64) []models.PricePoint {
	series := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		series[i] = models.WithBand(start.AddDate(0, 0, i), p, 0.10, false)
	}
	return series
}

func TestTrend(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rising series trends up", func(t *testing.T) {
		summary := Trend(dailySeries(start, 1000, 1020, 1100))
		assert.Equal(t, models.TrendUp, summary.Trend)
		assert.Equal(t, 10.0, summary.Percentage)
	})

	t.Run("falling series trends down", func(t *testing.T) {
		summary := Trend(dailySeries(start, 1000, 980, 900))
		assert.Equal(t, models.TrendDown, summary.Trend)
		assert.Equal(t, 10.0, summary.Percentage)
	})

	t.Run("flat series is neutral", func(t *testing.T) {
		summary := Trend(dailySeries(start, 1000, 1200, 1000))
		assert.Equal(t, models.TrendNeutral, summary.Trend)
		assert.Zero(t, summary.Percentage)
	})

	t.Run("empty series is neutral", func(t *testing.T) {
		summary := Trend(nil)
		assert.Equal(t, models.TrendNeutral, summary.Trend)
		assert.Zero(t, summary.Percentage)
	})

	t.Run("percentage is rounded to two decimals", func(t *testing.T) {
		summary := Trend(dailySeries(start, 3000, 3100))
		assert.Equal(t, 3.33, summary.Percentage)
	})
}

func TestMovingAverage(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := dailySeries(start, 100, 200, 300, 400)

	t.Run("averages the trailing window", func(t *testing.T) {
		avg, err := MovingAverage(series, 2)
		require.NoError(t, err)
		assert.Equal(t, 350.0, avg)
	})

	t.Run("full window averages everything", func(t *testing.T) {
		avg, err := MovingAverage(series, 4)
		require.NoError(t, err)
		assert.Equal(t, 250.0, avg)
	})

	t.Run("rejects non-positive window", func(t *testing.T) {
		_, err := MovingAverage(series, 0)
		assert.Error(t, err)
	})

	t.Run("rejects window longer than series", func(t *testing.T) {
		_, err := MovingAverage(series, 5)
		assert.Error(t, err)
	})
}

func TestVolatility(t *testing.T) {
	t.Run("empty series has zero volatility", func(t *testing.T) {
		assert.Zero(t, Volatility(nil))
	})

	t.Run("constant prices have zero volatility", func(t *testing.T) {
		assert.Zero(t, Volatility([]float64{5000, 5000, 5000}))
	})

	t.Run("known spread", func(t *testing.T) {
		// mean 100, population stddev 10
		assert.InDelta(t, 10.0, Volatility([]float64{90, 110}), 1e-9)
	})

	t.Run("wider spread is more volatile", func(t *testing.T) {
		narrow := Volatility([]float64{95, 100, 105})
		wide := Volatility([]float64{80, 100, 120})
		assert.Greater(t, wide, narrow)
	})
}

func TestSeasonalFactor(t *testing.T) {
	cases := []struct {
		month time.Month
		want  float64
	}{
		{time.January, 1.0},
		{time.February, 0.9},
		{time.March, 0.9},
		{time.April, 0.9},
		{time.May, 1.0},
		{time.June, 1.1},
		{time.July, 1.1},
		{time.August, 1.1},
		{time.September, 1.05},
		{time.October, 1.05},
		{time.November, 1.05},
		{time.December, 1.15},
	}

	for _, tc := range cases {
		date := time.Date(2024, tc.month, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tc.want, SeasonalFactor(date), "month %s", tc.month)
	}
}
