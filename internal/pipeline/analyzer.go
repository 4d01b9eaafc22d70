// Package pipeline runs the per-route analysis: resolve the route, serve or
// rebuild the cached price series, then derive trend, forecast and a booking
// recommendation. Each query is an independent pipeline instance with no
// shared mutable state.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mZeeDevv/flight-trend-service/internal/analysis"
	"github.com/mZeeDevv/flight-trend-service/internal/cache"
	"github.com/mZeeDevv/flight-trend-service/internal/fares"
	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// minRealObservations is the threshold below which fetched data is not trusted
// and the synthetic generator takes over.
const minRealObservations = 3

// observedBand is the uncertainty band around fetched observations.
const observedBand = 0.10

// ObservationRepository persists fetched observations for later queries.
type ObservationRepository interface {
	CreateFareObservationBatch(obs []*models.FareObservation) error
}

// Analyzer wires the collaborators of one analysis pipeline.
type Analyzer struct {
	resolver   fares.LocationResolver
	provider   fares.PriceProvider
	gateway    *cache.Gateway
	generator  *analysis.Generator
	forecaster *analysis.Forecaster

	// Repo, when set, receives fetched observations best-effort.
	Repo ObservationRepository

	// HistoryDays is the trailing fetch window; StaggerDelay spaces the
	// concurrent per-day requests to stay under upstream rate limits.
	HistoryDays  int
	StaggerDelay time.Duration
	Currency     string

	now func() time.Time
}

// NewAnalyzer creates an Analyzer with the default fetch window.
func NewAnalyzer(resolver fares.LocationResolver, provider fares.PriceProvider, gateway *cache.Gateway, rng analysis.Rand) *Analyzer {
	return &Analyzer{
		resolver:     resolver,
		provider:     provider,
		gateway:      gateway,
		generator:    analysis.NewGenerator(rng),
		forecaster:   &analysis.Forecaster{Rand: rng},
		HistoryDays:  30,
		StaggerDelay: 150 * time.Millisecond,
		Currency:     "INR",
		now:          time.Now,
	}
}

// AnalyzeRoute runs the full pipeline for one route query. The only hard error
// is an unresolvable origin or destination; every other failure degrades into
// a complete, low-confidence result.
func (a *Analyzer) AnalyzeRoute(ctx context.Context, origin, destination string) (*models.RouteAnalysis, error) {
	originCode, err := a.resolver.ResolveLocation(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("departure: %w", err)
	}
	destCode, err := a.resolver.ResolveLocation(ctx, destination)
	if err != nil {
		return nil, fmt.Errorf("arrival: %w", err)
	}

	series, dataSource := a.buildSeries(ctx, origin, destination, originCode, destCode)

	result := &models.RouteAnalysis{
		Origin:       origin,
		Destination:  destination,
		PriceHistory: series,
		TrendSummary: analysis.Trend(series),
		DataSource:   dataSource,
		AnalyzedAt:   a.now(),
	}

	forecast, err := a.forecaster.Forecast(series)
	if err != nil {
		// Degraded branch: simple random-walk projection plus an explicit
		// insufficient-data recommendation.
		result.PricePredictions = a.forecaster.Fallback(series)
		result.BookingRecommendation = analysis.Classify(series, nil, 0, 0)
		return result, nil
	}

	result.PricePredictions = forecast.Points
	result.BookingRecommendation = analysis.Classify(series, forecast.Points, forecast.Volatility, forecast.ConfidenceFactor)
	return result, nil
}

// buildSeries serves the cached series when fresh, otherwise fetches real
// observations and either gap-fills them or falls back to synthesis.
func (a *Analyzer) buildSeries(ctx context.Context, origin, destination, originCode, destCode string) ([]models.PricePoint, string) {
	if entry, ok := a.gateway.Lookup(ctx, origin, destination); ok {
		return entry.Points, entry.DataSource
	}

	real := a.fetchObservations(ctx, originCode, destCode)

	var series []models.PricePoint
	dataSource := models.DataSourceMock
	if len(real) >= minRealObservations {
		series = analysis.FillGaps(real)
		dataSource = models.DataSourceLive
		a.recordObservations(originCode, destCode, real)
	} else {
		series = a.generator.Generate(origin, destination, real)
	}

	if err := a.gateway.Store(ctx, origin, destination, series, dataSource); err != nil {
		log.Printf("[WARN] cache store for %s: %v", cache.Key(origin, destination), err)
	}
	return series, dataSource
}

// fetchObservations issues one best-price lookup per trailing day, staggered by
// a fixed delay multiple of the day index. Per-date failures and empty results
// yield no point and are never retried.
func (a *Analyzer) fetchObservations(ctx context.Context, originCode, destCode string) []models.PricePoint {
	today := a.now()
	days := a.HistoryDays

	results := make(chan models.PricePoint, days)
	var wg sync.WaitGroup
	for i := 0; i < days; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			time.Sleep(time.Duration(i) * a.StaggerDelay)

			date := today.AddDate(0, 0, -(days - 1 - i))
			price, ok, err := a.provider.BestPrice(ctx, originCode, destCode, date)
			if err != nil || !ok {
				return
			}
			results <- models.WithBand(truncateDay(date), price, observedBand, false)
		}(i)
	}
	wg.Wait()
	close(results)

	var points []models.PricePoint
	for p := range results {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

func (a *Analyzer) recordObservations(originCode, destCode string, points []models.PricePoint) {
	if a.Repo == nil {
		return
	}

	obs := make([]*models.FareObservation, 0, len(points))
	for _, p := range points {
		obs = append(obs, &models.FareObservation{
			Origin:      originCode,
			Destination: destCode,
			TravelDate:  p.Date,
			Price:       decimal.NewFromFloat(p.Price),
			Currency:    a.Currency,
			Source:      models.ObservationSourceAPI,
		})
	}
	if err := a.Repo.CreateFareObservationBatch(obs); err != nil {
		log.Printf("[WARN] persist observations for %s-%s: %v", originCode, destCode, err)
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
