package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// CreateFareObservation inserts a new fare observation
func (db *DB) CreateFareObservation(o *models.FareObservation) error {
	query := `
		INSERT INTO fare_observations (origin, destination, travel_date, price, currency, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (origin, destination, travel_date) DO UPDATE SET
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			source = EXCLUDED.source
		RETURNING id
	`
	if o.Source == "" {
		o.Source = models.ObservationSourceAPI
	}
	err := db.conn.QueryRow(query,
		o.Origin, o.Destination, o.TravelDate, o.Price, o.Currency, o.Source, time.Now(),
	).Scan(&o.ID)

	if err != nil {
		return fmt.Errorf("failed to create fare observation: %w", err)
	}
	return nil
}

// CreateFareObservationBatch inserts multiple fare observations efficiently
func (db *DB) CreateFareObservationBatch(observations []*models.FareObservation) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO fare_observations (origin, destination, travel_date, price, currency, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (origin, destination, travel_date) DO UPDATE SET
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			source = EXCLUDED.source
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, o := range observations {
		source := o.Source
		if source == "" {
			source = models.ObservationSourceAPI
		}
		_, err := stmt.Exec(o.Origin, o.Destination, o.TravelDate, o.Price, o.Currency, source, now)
		if err != nil {
			return fmt.Errorf("failed to insert observation for %s-%s: %w", o.Origin, o.Destination, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetFareObservation retrieves the observation for a route on a travel date
func (db *DB) GetFareObservation(origin, destination string, travelDate time.Time) (*models.FareObservation, error) {
	query := `
		SELECT id, origin, destination, travel_date, price, currency, source, created_at
		FROM fare_observations
		WHERE origin = $1 AND destination = $2 AND travel_date = $3
	`
	var o models.FareObservation
	err := db.conn.QueryRow(query, origin, destination, travelDate).Scan(
		&o.ID, &o.Origin, &o.Destination, &o.TravelDate, &o.Price, &o.Currency, &o.Source, &o.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("fare observation not found for %s-%s on %s",
			origin, destination, travelDate.Format("2006-01-02"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fare observation: %w", err)
	}
	return &o, nil
}

// GetFareObservationRange retrieves observations for a route within a date range
func (db *DB) GetFareObservationRange(origin, destination string, startDate, endDate time.Time) ([]*models.FareObservation, error) {
	query := `
		SELECT id, origin, destination, travel_date, price, currency, source, created_at
		FROM fare_observations
		WHERE origin = $1 AND destination = $2 AND travel_date >= $3 AND travel_date <= $4
		ORDER BY travel_date ASC
	`
	rows, err := db.conn.Query(query, origin, destination, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get fare observation range: %w", err)
	}
	defer rows.Close()

	return scanFareObservations(rows)
}

// GetLatestFareObservation retrieves the most recent observation for a route
func (db *DB) GetLatestFareObservation(origin, destination string) (*models.FareObservation, error) {
	query := `
		SELECT id, origin, destination, travel_date, price, currency, source, created_at
		FROM fare_observations
		WHERE origin = $1 AND destination = $2
		ORDER BY travel_date DESC
		LIMIT 1
	`
	var o models.FareObservation
	err := db.conn.QueryRow(query, origin, destination).Scan(
		&o.ID, &o.Origin, &o.Destination, &o.TravelDate, &o.Price, &o.Currency, &o.Source, &o.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no fare observations found for %s-%s", origin, destination)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest fare observation: %w", err)
	}
	return &o, nil
}

// DeleteFareObservationsOlderThan removes observations with travel dates before the cutoff
func (db *DB) DeleteFareObservationsOlderThan(date time.Time) (int64, error) {
	query := `DELETE FROM fare_observations WHERE travel_date < $1`
	result, err := db.conn.Exec(query, date)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old fare observations: %w", err)
	}
	return result.RowsAffected()
}

func scanFareObservations(rows *sql.Rows) ([]*models.FareObservation, error) {
	var observations []*models.FareObservation
	for rows.Next() {
		var o models.FareObservation
		err := rows.Scan(
			&o.ID, &o.Origin, &o.Destination, &o.TravelDate, &o.Price, &o.Currency, &o.Source, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fare observation: %w", err)
		}
		observations = append(observations, &o)
	}
	return observations, nil
}
