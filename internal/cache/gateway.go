package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// FreshnessWindow is how long a cached series is served before the route is
// re-analyzed. Stale entries are treated as absent, not deleted.
const FreshnessWindow = 7 * 24 * time.Hour

// Entry is the cached payload for one route.
type Entry struct {
	StoredAt   time.Time           `json:"stored_at"`
	DataSource string              `json:"data_source"`
	Points     []models.PricePoint `json:"points"`
}

// Gateway applies the freshness policy on top of a Store. Store failures are
// logged and reported as cache misses; they never block the pipeline.
type Gateway struct {
	store Store
	now   func() time.Time
}

func NewGateway(store Store) *Gateway {
	return &Gateway{store: store, now: time.Now}
}

// Key builds the case-insensitive cache key for a route.
func Key(origin, destination string) string {
	return strings.ToLower(origin) + ":" + strings.ToLower(destination)
}

// Lookup returns the cached entry for the route if one exists and is fresh.
func (g *Gateway) Lookup(ctx context.Context, origin, destination string) (*Entry, bool) {
	raw, ok := g.store.Get(ctx, Key(origin, destination))
	if !ok {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Printf("[WARN] cache: bad entry for %s: %v", Key(origin, destination), err)
		return nil, false
	}

	if g.now().Sub(entry.StoredAt) >= FreshnessWindow {
		return nil, false
	}
	return &entry, true
}

// Store caches the series for the route, stamped with the current time.
func (g *Gateway) Store(ctx context.Context, origin, destination string, points []models.PricePoint, dataSource string) error {
	entry := Entry{
		StoredAt:   g.now(),
		DataSource: dataSource,
		Points:     points,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := g.store.Set(ctx, Key(origin, destination), string(raw)); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}
