package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// maxGapDays is the widest hole left unfilled between adjacent observations.
const maxGapDays = 5

// observedBand is the uncertainty band around observed and interpolated prices.
const observedBand = 0.10

// FillGaps sorts the observations by date and linearly interpolates a point for
// every missing day between adjacent observations more than maxGapDays apart.
// Interpolated points are flagged and carry the observed ±10% band.
func FillGaps(points []models.PricePoint) []models.PricePoint {
	sorted := make([]models.PricePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	if len(sorted) <= 1 {
		return sorted
	}

	filled := make([]models.PricePoint, 0, len(sorted))
	for i := 0; i < len(sorted)-1; i++ {
		start, end := sorted[i], sorted[i+1]
		filled = append(filled, start)

		gap := daysBetween(start.Date, end.Date)
		if gap <= maxGapDays {
			continue
		}

		for j := 1; j < gap; j++ {
			price := math.Round(start.Price + (end.Price-start.Price)*float64(j)/float64(gap))
			filled = append(filled, models.WithBand(start.Date.AddDate(0, 0, j), price, observedBand, true))
		}
	}

	return append(filled, sorted[len(sorted)-1])
}

func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
