package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kushtunes/royalty/internal/models"
	"github.com/kushtunes/royalty/internal/storage"
)

// CreateAdvance persists a new advance to the database.
// RemainingUSD defaults to AmountUSD and Status to open when unset.
func (s *SQLiteStore) CreateAdvance(ctx context.Context, advance *models.Advance) error {
	if advance.ID == "" {
		advance.ID = uuid.New().String()
	}
	if advance.CreatedAt == 0 {
		advance.CreatedAt = time.Now().Unix()
	}
	if advance.RemainingUSD == 0 && advance.AmountUSD != 0 {
		advance.RemainingUSD = advance.AmountUSD
	}
	if advance.Status == "" {
		advance.Status = models.LiabilityOpen
	}

	var note interface{}
	if advance.Note != "" {
		note = advance.Note
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO advances (id, artist_id, amount_usd, remaining_usd, status, note, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		advance.ID, advance.ArtistID, advance.AmountUSD, advance.RemainingUSD, string(advance.Status), note, advance.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert advance: %w", err)
	}
	return nil
}

// UpdateAdvance adjusts an advance's remaining balance and/or status.
func (s *SQLiteStore) UpdateAdvance(ctx context.Context, advanceID string, remainingUSD *float64, status *models.LiabilityStatus) error {
	return s.updateLiability(ctx, "advances", advanceID, remainingUSD, status)
}

// ListOpenAdvances returns the artist's advances with status open.
func (s *SQLiteStore) ListOpenAdvances(ctx context.Context, artistID string) ([]*models.Advance, error) {
	ok, err := s.tableExists(ctx, "advances")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("advances: %w", storage.ErrSourceUnavailable)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, artist_id, amount_usd, remaining_usd, status, note, created_at
		 FROM advances WHERE artist_id = ? AND status = 'open' ORDER BY created_at`,
		artistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list open advances: %w", err)
	}
	defer rows.Close()

	var advances []*models.Advance
	for rows.Next() {
		advance := &models.Advance{}
		var note sql.NullString
		var status string
		if err := rows.Scan(&advance.ID, &advance.ArtistID, &advance.AmountUSD, &advance.RemainingUSD, &status, &note, &advance.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advance.Status = models.LiabilityStatus(status)
		if note.Valid {
			advance.Note = note.String
		}
		advances = append(advances, advance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate advances: %w", err)
	}
	return advances, nil
}

// CreateRecoupCost persists a new recoupable cost to the database.
func (s *SQLiteStore) CreateRecoupCost(ctx context.Context, cost *models.RecoupCost) error {
	if cost.ID == "" {
		cost.ID = uuid.New().String()
	}
	if cost.CreatedAt == 0 {
		cost.CreatedAt = time.Now().Unix()
	}
	if cost.RemainingUSD == 0 && cost.AmountUSD != 0 {
		cost.RemainingUSD = cost.AmountUSD
	}
	if cost.Status == "" {
		cost.Status = models.LiabilityOpen
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO recoup_costs (id, artist_id, description, amount_usd, remaining_usd, status, recoupable, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		cost.ID, cost.ArtistID, cost.Description, cost.AmountUSD, cost.RemainingUSD, string(cost.Status), cost.Recoupable, cost.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recoup cost: %w", err)
	}
	return nil
}

// UpdateRecoupCost adjusts a cost's remaining balance and/or status.
func (s *SQLiteStore) UpdateRecoupCost(ctx context.Context, costID string, remainingUSD *float64, status *models.LiabilityStatus) error {
	return s.updateLiability(ctx, "recoup_costs", costID, remainingUSD, status)
}

// ListOpenRecoupableCosts returns the artist's costs that are open and
// marked recoupable.
func (s *SQLiteStore) ListOpenRecoupableCosts(ctx context.Context, artistID string) ([]*models.RecoupCost, error) {
	ok, err := s.tableExists(ctx, "recoup_costs")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("recoup_costs: %w", storage.ErrSourceUnavailable)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, artist_id, description, amount_usd, remaining_usd, status, recoupable, created_at
		 FROM recoup_costs WHERE artist_id = ? AND status = 'open' AND recoupable = 1 ORDER BY created_at`,
		artistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list open recoupable costs: %w", err)
	}
	defer rows.Close()

	var costs []*models.RecoupCost
	for rows.Next() {
		cost := &models.RecoupCost{}
		var status string
		if err := rows.Scan(&cost.ID, &cost.ArtistID, &cost.Description, &cost.AmountUSD, &cost.RemainingUSD, &status, &cost.Recoupable, &cost.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recoup cost: %w", err)
		}
		cost.Status = models.LiabilityStatus(status)
		costs = append(costs, cost)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recoup costs: %w", err)
	}
	return costs, nil
}

// updateLiability applies a partial update to an advance or cost row.
func (s *SQLiteStore) updateLiability(ctx context.Context, table, id string, remainingUSD *float64, status *models.LiabilityStatus) error {
	if remainingUSD == nil && status == nil {
		return nil
	}
	if status != nil && !status.Valid() {
		return fmt.Errorf("invalid liability status %q", *status)
	}

	query := "UPDATE " + table + " SET "
	var args []interface{}
	if remainingUSD != nil {
		query += "remaining_usd = ?"
		args = append(args, *remainingUSD)
	}
	if status != nil {
		if remainingUSD != nil {
			query += ", "
		}
		query += "status = ?"
		args = append(args, string(*status))
	}
	query += " WHERE id = ?"
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check %s update: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrNotFound)
	}
	return nil
}
