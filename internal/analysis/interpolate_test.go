package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

func TestFillGaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("fills a wide gap with daily interpolated points", func(t *testing.T) {
		points := []models.PricePoint{
			models.WithBand(day(1), 1000, 0.10, false),
			models.WithBand(day(11), 1500, 0.10, false),
		}

		filled := FillGaps(points)
		require.Len(t, filled, 11)

		// midpoint of a 10-day gap
		mid := filled[5]
		assert.Equal(t, day(6), mid.Date)
		assert.Equal(t, 1250.0, mid.Price)
		assert.True(t, mid.Interpolated)
		assert.InDelta(t, 1125.0, mid.LowestPrice, 1e-9)
		assert.InDelta(t, 1375.0, mid.HighestPrice, 1e-9)

		// endpoints are the originals
		assert.False(t, filled[0].Interpolated)
		assert.False(t, filled[10].Interpolated)
		assert.Equal(t, 1000.0, filled[0].Price)
		assert.Equal(t, 1500.0, filled[10].Price)
	})

	t.Run("interpolated prices are whole amounts", func(t *testing.T) {
		points := []models.PricePoint{
			models.WithBand(day(1), 1000, 0.10, false),
			models.WithBand(day(8), 1100, 0.10, false),
		}

		for _, p := range FillGaps(points) {
			assert.Equal(t, p.Price, float64(int(p.Price)))
		}
	})

	t.Run("leaves narrow gaps alone", func(t *testing.T) {
		points := []models.PricePoint{
			models.WithBand(day(1), 1000, 0.10, false),
			models.WithBand(day(6), 1200, 0.10, false),
		}

		filled := FillGaps(points)
		assert.Len(t, filled, 2)
	})

	t.Run("sorts unordered observations", func(t *testing.T) {
		points := []models.PricePoint{
			models.WithBand(day(6), 1200, 0.10, false),
			models.WithBand(day(1), 1000, 0.10, false),
			models.WithBand(day(3), 1100, 0.10, false),
		}

		filled := FillGaps(points)
		require.Len(t, filled, 3)
		for i := 1; i < len(filled); i++ {
			assert.True(t, filled[i].Date.After(filled[i-1].Date))
		}
	})

	t.Run("passes short inputs through", func(t *testing.T) {
		assert.Empty(t, FillGaps(nil))

		one := []models.PricePoint{models.WithBand(day(1), 1000, 0.10, false)}
		assert.Len(t, FillGaps(one), 1)
	})

	t.Run("fills every gap in a multi-gap series", func(t *testing.T) {
		points := []models.PricePoint{
			models.WithBand(day(1), 1000, 0.10, false),
			models.WithBand(day(9), 1400, 0.10, false),
			models.WithBand(day(16), 1050, 0.10, false),
		}

		filled := FillGaps(points)
		require.Len(t, filled, 16)
		for i := 1; i < len(filled); i++ {
			assert.Equal(t, 1, daysBetween(filled[i-1].Date, filled[i].Date))
		}
	})
}
