package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "del:bom", Key("DEL", "BOM"))
	assert.Equal(t, "new delhi:london", Key("New Delhi", "London"))
}

func TestGateway(t *testing.T) {
	ctx := context.Background()
	points := []models.PricePoint{
		models.WithBand(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 5200, 0.10, false),
		models.WithBand(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), 5350, 0.10, false),
	}

	t.Run("round-trips a fresh entry", func(t *testing.T) {
		g := NewGateway(NewMemoryStore())

		require.NoError(t, g.Store(ctx, "DEL", "BOM", points, models.DataSourceLive))

		entry, ok := g.Lookup(ctx, "DEL", "BOM")
		require.True(t, ok)
		assert.Equal(t, models.DataSourceLive, entry.DataSource)
		require.Len(t, entry.Points, 2)
		assert.Equal(t, 5200.0, entry.Points[0].Price)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		g := NewGateway(NewMemoryStore())

		require.NoError(t, g.Store(ctx, "DEL", "BOM", points, models.DataSourceMock))

		_, ok := g.Lookup(ctx, "del", "bom")
		assert.True(t, ok)
	})

	t.Run("misses when nothing is stored", func(t *testing.T) {
		g := NewGateway(NewMemoryStore())

		_, ok := g.Lookup(ctx, "DEL", "BOM")
		assert.False(t, ok)
	})

	t.Run("treats entries past the freshness window as misses", func(t *testing.T) {
		g := NewGateway(NewMemoryStore())

		storedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		g.now = func() time.Time { return storedAt }
		require.NoError(t, g.Store(ctx, "DEL", "BOM", points, models.DataSourceLive))

		g.now = func() time.Time { return storedAt.Add(FreshnessWindow - time.Minute) }
		_, ok := g.Lookup(ctx, "DEL", "BOM")
		assert.True(t, ok)

		g.now = func() time.Time { return storedAt.Add(FreshnessWindow) }
		_, ok = g.Lookup(ctx, "DEL", "BOM")
		assert.False(t, ok, "entry exactly at the window boundary is stale")
	})

	t.Run("treats unreadable entries as misses", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, Key("DEL", "BOM"), "{not json"))

		g := NewGateway(store)
		_, ok := g.Lookup(ctx, "DEL", "BOM")
		assert.False(t, ok)
	})
}
