package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kushtunes/royalty/internal/models"
)

// CreateEarning persists a new earning fact to the database.
func (s *SQLiteStore) CreateEarning(ctx context.Context, earning *models.Earning) error {
	if earning.ID == "" {
		earning.ID = uuid.New().String()
	}
	if earning.CreatedAt == 0 {
		earning.CreatedAt = time.Now().Unix()
	}
	if earning.Currency == "" {
		earning.Currency = "USD"
	}
	if !models.ValidPeriod(earning.Period) {
		return fmt.Errorf("invalid settlement period %q", earning.Period)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO earnings (id, track_id, period, store, amount, currency, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		earning.ID, earning.TrackID, earning.Period, earning.Store, earning.Amount, earning.Currency, earning.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert earning: %w", err)
	}
	return nil
}

// ListEarningsForTracks returns earnings for the given track set within the
// inclusive [startPeriod, endPeriod] window. Empty bounds are unbounded.
func (s *SQLiteStore) ListEarningsForTracks(ctx context.Context, trackIDs []string, startPeriod, endPeriod string) ([]*models.Earning, error) {
	if len(trackIDs) == 0 {
		return nil, nil
	}

	query := "SELECT id, track_id, period, store, amount, currency, created_at FROM earnings WHERE track_id IN (" + placeholders(len(trackIDs)) + ")"
	args := make([]interface{}, 0, len(trackIDs)+2)
	for _, id := range trackIDs {
		args = append(args, id)
	}
	if startPeriod != "" {
		query += " AND period >= ?"
		args = append(args, startPeriod)
	}
	if endPeriod != "" {
		query += " AND period <= ?"
		args = append(args, endPeriod)
	}
	query += " ORDER BY period, store"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list earnings: %w", err)
	}
	defer rows.Close()

	var earnings []*models.Earning
	for rows.Next() {
		earning := &models.Earning{}
		var amount sql.NullFloat64
		if err := rows.Scan(&earning.ID, &earning.TrackID, &earning.Period, &earning.Store, &amount, &earning.Currency, &earning.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan earning: %w", err)
		}
		if amount.Valid {
			earning.Amount = amount.Float64
		}
		earnings = append(earnings, earning)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate earnings: %w", err)
	}
	return earnings, nil
}

// ListStatementRows returns earnings for the given track set in exactly one
// period, joined with track metadata. Share columns are left for the
// statement builder.
func (s *SQLiteStore) ListStatementRows(ctx context.Context, trackIDs []string, period string) ([]*models.StatementRow, error) {
	if len(trackIDs) == 0 {
		return nil, nil
	}

	query := `SELECT e.track_id, e.period, e.store, t.title, t.isrc, e.currency, e.amount
		 FROM earnings e JOIN tracks t ON t.id = e.track_id
		 WHERE e.track_id IN (` + placeholders(len(trackIDs)) + `) AND e.period = ?
		 ORDER BY e.store, t.title`
	args := make([]interface{}, 0, len(trackIDs)+1)
	for _, id := range trackIDs {
		args = append(args, id)
	}
	args = append(args, period)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list statement rows: %w", err)
	}
	defer rows.Close()

	var result []*models.StatementRow
	for rows.Next() {
		row := &models.StatementRow{}
		var amount sql.NullFloat64
		if err := rows.Scan(&row.TrackID, &row.Period, &row.Store, &row.TrackTitle, &row.ISRC, &row.Currency, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		if amount.Valid {
			row.Gross = amount.Float64
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statement rows: %w", err)
	}
	return result, nil
}
