package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

// CreateAlertHistory records a dispatched trend alert
func (db *DB) CreateAlertHistory(a *models.AlertHistory) error {
	query := `
		INSERT INTO alert_history (
			origin, destination, action, confidence, message,
			recipient_count, dispatch_succeeded, sent_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	if a.SentAt.IsZero() {
		a.SentAt = time.Now()
	}
	err := db.conn.QueryRow(query,
		a.Origin, a.Destination, a.Action, a.Confidence, a.Message,
		a.RecipientCount, a.DispatchSucceeded, a.SentAt,
	).Scan(&a.ID)

	if err != nil {
		return fmt.Errorf("failed to create alert history: %w", err)
	}
	return nil
}

// GetAlertHistoryByRoute retrieves recent alerts for a route
func (db *DB) GetAlertHistoryByRoute(origin, destination string, limit int) ([]*models.AlertHistory, error) {
	query := `
		SELECT id, origin, destination, action, confidence, message,
		       recipient_count, dispatch_succeeded, sent_at
		FROM alert_history
		WHERE origin = $1 AND destination = $2
		ORDER BY sent_at DESC
		LIMIT $3
	`
	return db.scanAlertHistory(db.conn.Query(query, origin, destination, limit))
}

// GetRecentAlertHistory retrieves the most recent alerts across all routes
func (db *DB) GetRecentAlertHistory(limit int) ([]*models.AlertHistory, error) {
	query := `
		SELECT id, origin, destination, action, confidence, message,
		       recipient_count, dispatch_succeeded, sent_at
		FROM alert_history
		ORDER BY sent_at DESC
		LIMIT $1
	`
	return db.scanAlertHistory(db.conn.Query(query, limit))
}

// DeleteAlertHistoryOlderThan removes alert records older than the cutoff
func (db *DB) DeleteAlertHistoryOlderThan(cutoff time.Time) (int64, error) {
	query := `DELETE FROM alert_history WHERE sent_at < $1`
	result, err := db.conn.Exec(query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old alert history: %w", err)
	}
	return result.RowsAffected()
}

func (db *DB) scanAlertHistory(rows *sql.Rows, err error) ([]*models.AlertHistory, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query alert history: %w", err)
	}
	defer rows.Close()

	var alerts []*models.AlertHistory
	for rows.Next() {
		var a models.AlertHistory
		var message sql.NullString

		err := rows.Scan(
			&a.ID, &a.Origin, &a.Destination, &a.Action, &a.Confidence, &message,
			&a.RecipientCount, &a.DispatchSucceeded, &a.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert history: %w", err)
		}

		if message.Valid {
			a.Message = message.String
		}
		alerts = append(alerts, &a)
	}

	return alerts, nil
}
