package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// CreateMonitoredRoute adds a route to the monitoring watchlist
func (db *DB) CreateMonitoredRoute(m *models.MonitoredRoute) error {
	query := `
		INSERT INTO monitored_routes (
			origin, destination, enabled, priority, watch_price,
			alert_on_drop, alert_recipients, notes, added_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (origin, destination) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			priority = EXCLUDED.priority,
			watch_price = EXCLUDED.watch_price,
			alert_on_drop = EXCLUDED.alert_on_drop,
			alert_recipients = EXCLUDED.alert_recipients,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	if m.Priority == 0 {
		m.Priority = 1
	}

	_, err := db.conn.Exec(query,
		m.Origin, m.Destination, m.Enabled, m.Priority, m.WatchPrice,
		m.AlertOnDrop, pq.Array(m.AlertRecipients), m.Notes, now, now,
	)

	if err != nil {
		return fmt.Errorf("failed to create monitored route: %w", err)
	}
	m.AddedAt = now
	m.UpdatedAt = now
	return nil
}

// GetMonitoredRoute retrieves a monitored route by origin and destination
func (db *DB) GetMonitoredRoute(origin, destination string) (*models.MonitoredRoute, error) {
	query := `
		SELECT origin, destination, enabled, priority, watch_price,
		       alert_on_drop, alert_recipients, notes, added_at, updated_at
		FROM monitored_routes
		WHERE origin = $1 AND destination = $2
	`
	var m models.MonitoredRoute
	var watchPrice sql.NullString
	var notes sql.NullString

	err := db.conn.QueryRow(query, origin, destination).Scan(
		&m.Origin, &m.Destination, &m.Enabled, &m.Priority, &watchPrice,
		&m.AlertOnDrop, pq.Array(&m.AlertRecipients), &notes, &m.AddedAt, &m.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("monitored route not found: %s-%s", origin, destination)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get monitored route: %w", err)
	}

	applyNullableRouteFields(&m, watchPrice, notes)
	return &m, nil
}

// GetAllMonitoredRoutes retrieves all monitored routes
func (db *DB) GetAllMonitoredRoutes() ([]*models.MonitoredRoute, error) {
	query := `
		SELECT origin, destination, enabled, priority, watch_price,
		       alert_on_drop, alert_recipients, notes, added_at, updated_at
		FROM monitored_routes
		ORDER BY priority ASC, origin ASC, destination ASC
	`
	return db.scanMonitoredRoutes(db.conn.Query(query))
}

// GetEnabledMonitoredRoutes retrieves all enabled monitored routes
func (db *DB) GetEnabledMonitoredRoutes() ([]*models.MonitoredRoute, error) {
	query := `
		SELECT origin, destination, enabled, priority, watch_price,
		       alert_on_drop, alert_recipients, notes, added_at, updated_at
		FROM monitored_routes
		WHERE enabled = true
		ORDER BY priority ASC, origin ASC, destination ASC
	`
	return db.scanMonitoredRoutes(db.conn.Query(query))
}

// UpdateMonitoredRoute updates an existing monitored route
func (db *DB) UpdateMonitoredRoute(m *models.MonitoredRoute) error {
	query := `
		UPDATE monitored_routes SET
			enabled = $3, priority = $4, watch_price = $5,
			alert_on_drop = $6, alert_recipients = $7, notes = $8, updated_at = $9
		WHERE origin = $1 AND destination = $2
	`
	m.UpdatedAt = time.Now()
	result, err := db.conn.Exec(query,
		m.Origin, m.Destination, m.Enabled, m.Priority, m.WatchPrice,
		m.AlertOnDrop, pq.Array(m.AlertRecipients), m.Notes, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update monitored route: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("monitored route not found: %s-%s", m.Origin, m.Destination)
	}
	return nil
}

// DeleteMonitoredRoute removes a route from the watchlist
func (db *DB) DeleteMonitoredRoute(origin, destination string) error {
	query := `DELETE FROM monitored_routes WHERE origin = $1 AND destination = $2`
	result, err := db.conn.Exec(query, origin, destination)
	if err != nil {
		return fmt.Errorf("failed to delete monitored route: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("monitored route not found: %s-%s", origin, destination)
	}
	return nil
}

func (db *DB) scanMonitoredRoutes(rows *sql.Rows, err error) ([]*models.MonitoredRoute, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query monitored routes: %w", err)
	}
	defer rows.Close()

	var routes []*models.MonitoredRoute
	for rows.Next() {
		var m models.MonitoredRoute
		var watchPrice sql.NullString
		var notes sql.NullString

		err := rows.Scan(
			&m.Origin, &m.Destination, &m.Enabled, &m.Priority, &watchPrice,
			&m.AlertOnDrop, pq.Array(&m.AlertRecipients), &notes, &m.AddedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monitored route: %w", err)
		}

		applyNullableRouteFields(&m, watchPrice, notes)
		routes = append(routes, &m)
	}

	return routes, nil
}

func applyNullableRouteFields(m *models.MonitoredRoute, watchPrice, notes sql.NullString) {
	if watchPrice.Valid {
		price, _ := decimal.NewFromString(watchPrice.String)
		m.WatchPrice = &price
	}
	if notes.Valid {
		m.Notes = notes.String
	}
}
