package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("all tables exist", func(t *testing.T) {
		expectedTables := []string{
			"fare_observations",
			"monitored_routes",
			"alert_history",
		}

		for _, tableName := range expectedTables {
			var exists bool
			err := testDB.GetRawConn().QueryRow(`
				SELECT EXISTS (
					SELECT FROM information_schema.tables
					WHERE table_schema = 'public'
					AND table_name = $1
				)
			`, tableName).Scan(&exists)

			require.NoError(t, err, "failed to check table existence for %s", tableName)
			assert.True(t, exists, "table %s should exist", tableName)
		}
	})

	t.Run("fare_observations table has correct columns", func(t *testing.T) {
		expectedColumns := map[string]string{
			"id":          "integer",
			"origin":      "character varying",
			"destination": "character varying",
			"travel_date": "date",
			"price":       "numeric",
			"currency":    "character varying",
			"source":      "character varying",
			"created_at":  "timestamp without time zone",
		}

		for colName, expectedType := range expectedColumns {
			var actualType string
			err := testDB.GetRawConn().QueryRow(`
				SELECT data_type
				FROM information_schema.columns
				WHERE table_name = 'fare_observations' AND column_name = $1
			`, colName).Scan(&actualType)

			require.NoError(t, err, "column %s should exist in fare_observations table", colName)
			assert.Equal(t, expectedType, actualType, "column %s should have type %s", colName, expectedType)
		}
	})

	t.Run("monitored_routes table has correct columns", func(t *testing.T) {
		expectedColumns := []string{
			"origin", "destination", "enabled", "priority", "watch_price",
			"alert_on_drop", "alert_recipients", "notes", "added_at", "updated_at",
		}

		for _, colName := range expectedColumns {
			var exists bool
			err := testDB.GetRawConn().QueryRow(`
				SELECT EXISTS (
					SELECT FROM information_schema.columns
					WHERE table_name = 'monitored_routes' AND column_name = $1
				)
			`, colName).Scan(&exists)

			require.NoError(t, err)
			assert.True(t, exists, "column %s should exist in monitored_routes table", colName)
		}
	})

	t.Run("alert_history table has correct columns", func(t *testing.T) {
		expectedColumns := []string{
			"id", "origin", "destination", "action", "confidence",
			"message", "recipient_count", "dispatch_succeeded", "sent_at",
		}

		for _, colName := range expectedColumns {
			var exists bool
			err := testDB.GetRawConn().QueryRow(`
				SELECT EXISTS (
					SELECT FROM information_schema.columns
					WHERE table_name = 'alert_history' AND column_name = $1
				)
			`, colName).Scan(&exists)

			require.NoError(t, err)
			assert.True(t, exists, "column %s should exist in alert_history table", colName)
		}
	})

	t.Run("indexes exist", func(t *testing.T) {
		expectedIndexes := []struct {
			table string
			index string
		}{
			{"fare_observations", "idx_fare_observations_route"},
			{"fare_observations", "idx_fare_observations_travel_date"},
			{"monitored_routes", "idx_monitored_routes_enabled"},
			{"monitored_routes", "idx_monitored_routes_priority"},
			{"alert_history", "idx_alert_history_route"},
			{"alert_history", "idx_alert_history_sent_at"},
		}

		for _, idx := range expectedIndexes {
			var exists bool
			err := testDB.GetRawConn().QueryRow(`
				SELECT EXISTS (
					SELECT FROM pg_indexes
					WHERE tablename = $1 AND indexname = $2
				)
			`, idx.table, idx.index).Scan(&exists)

			require.NoError(t, err)
			assert.True(t, exists, "index %s should exist on table %s", idx.index, idx.table)
		}
	})

	t.Run("unique constraints exist", func(t *testing.T) {
		var obsUnique bool
		err := testDB.GetRawConn().QueryRow(`
			SELECT EXISTS (
				SELECT FROM pg_constraint c
				JOIN pg_class t ON c.conrelid = t.oid
				WHERE t.relname = 'fare_observations'
				AND c.contype = 'u'
			)
		`).Scan(&obsUnique)
		require.NoError(t, err)
		assert.True(t, obsUnique, "fare_observations should have unique constraint on (origin, destination, travel_date)")

		var routePK bool
		err = testDB.GetRawConn().QueryRow(`
			SELECT EXISTS (
				SELECT FROM pg_constraint c
				JOIN pg_class t ON c.conrelid = t.oid
				WHERE t.relname = 'monitored_routes'
				AND c.contype = 'p'
			)
		`).Scan(&routePK)
		require.NoError(t, err)
		assert.True(t, routePK, "monitored_routes should have primary key on (origin, destination)")
	})
}
