package analysis

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// DefaultInternationalKeywords classifies a route as international when any of
// these appear in either endpoint label.
var DefaultInternationalKeywords = []string{
	"international", "airport",
	"london", "new york", "dubai", "singapore",
	"paris", "tokyo", "toronto", "sydney",
}

// Base fare ranges and variation bounds for synthesized series.
const (
	internationalBaseMin = 25000
	internationalBaseMax = 40000
	domesticBaseMin      = 4500
	domesticBaseMax      = 8000

	defaultVariationRatio = 0.25
	minVariationRatio     = 0.15
	priceFloorRatio       = 0.70
	dailyDrift            = 1.0005
)

// Generator fabricates a plausible historical fare series for a route when too
// few real observations exist. Any real points supplied are blended back into
// the generated series.
type Generator struct {
	Rand                  Rand
	NumPoints             int
	InternationalKeywords []string
	Now                   func() time.Time
}

// NewGenerator returns a Generator with the default 60-point window and keyword set.
func NewGenerator(r Rand) *Generator {
	return &Generator{
		Rand:                  r,
		NumPoints:             60,
		InternationalKeywords: DefaultInternationalKeywords,
		Now:                   time.Now,
	}
}

// Generate produces NumPoints daily points centered on today. Real observations
// falling inside the window replace the synthetic point on the same date; the
// rest are appended and the series re-sorted.
func (g *Generator) Generate(origin, destination string, real []models.PricePoint) []models.PricePoint {
	n := g.NumPoints
	if n <= 0 {
		n = 60
	}
	today := truncateDay(g.Now())
	half := n / 2

	base := g.basePrice(origin, destination, real)
	variation := g.variation(base, real)

	series := make([]models.PricePoint, 0, n)
	for i := 0; i < n; i++ {
		date := today.AddDate(0, 0, i-half)
		amp, noiseAmp := seasonBand(date)

		price := base *
			weekdayFactor(date) *
			seasonalWave(i, n, variation/base*amp) *
			(1 + unit(g.Rand)*noiseAmp) *
			math.Pow(dailyDrift, float64(i-half))

		if floor := base * priceFloorRatio; price < floor {
			price = floor
		}
		series = append(series, models.WithBand(date, math.Round(price), observedBand, false))
	}

	return mergeReal(series, real)
}

func (g *Generator) basePrice(origin, destination string, real []models.PricePoint) float64 {
	if len(real) > 0 {
		sum := 0.0
		for _, p := range real {
			sum += p.Price
		}
		return sum / float64(len(real))
	}

	if g.isInternational(origin) || g.isInternational(destination) {
		return internationalBaseMin + g.Rand.Float64()*(internationalBaseMax-internationalBaseMin)
	}
	return domesticBaseMin + g.Rand.Float64()*(domesticBaseMax-domesticBaseMin)
}

func (g *Generator) variation(base float64, real []models.PricePoint) float64 {
	if len(real) < 2 {
		return base * defaultVariationRatio
	}

	lo, hi := real[0].Price, real[0].Price
	for _, p := range real[1:] {
		if p.Price < lo {
			lo = p.Price
		}
		if p.Price > hi {
			hi = p.Price
		}
	}
	return math.Max(base*minVariationRatio, (hi-lo)/2)
}

func (g *Generator) isInternational(label string) bool {
	l := strings.ToLower(label)
	for _, kw := range g.InternationalKeywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

// seasonBand returns the seasonal-wave amplitude and the noise amplitude for
// the month of the given date (0-indexed months; high season pushes both up).
func seasonBand(date time.Time) (amp, noiseAmp float64) {
	switch m := int(date.Month()) - 1; m {
	case 4, 5, 6, 11:
		return 0.2, 0.06
	case 2, 3, 8, 9:
		return 0.15, 0.04
	default:
		return 0.1, 0.04
	}
}

// seasonalWave overlays three sine waves at periods n/3, n/6 and n.
func seasonalWave(i, n int, amp float64) float64 {
	x := float64(i)
	return 1 + amp*(0.5*math.Sin(2*math.Pi*x/(float64(n)/3))+
		0.3*math.Sin(2*math.Pi*x/(float64(n)/6))+
		0.2*math.Sin(2*math.Pi*x/float64(n)))
}

func weekdayFactor(date time.Time) float64 {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return 1.08
	case time.Friday:
		return 1.05
	case time.Monday:
		return 1.02
	case time.Tuesday, time.Wednesday:
		return 0.95
	default:
		return 1.0
	}
}

func mergeReal(series, real []models.PricePoint) []models.PricePoint {
	for _, r := range real {
		replaced := false
		for i := range series {
			if sameDay(series[i].Date, r.Date) {
				series[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			series = append(series, r)
		}
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
