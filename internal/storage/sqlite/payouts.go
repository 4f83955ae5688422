package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kushtunes/royalty/internal/models"
	"github.com/kushtunes/royalty/internal/storage"
)

// CreatePayout persists a new payout request to the database.
func (s *SQLiteStore) CreatePayout(ctx context.Context, payout *models.Payout) error {
	if payout.ID == "" {
		payout.ID = uuid.New().String()
	}
	if payout.CreatedAt == 0 {
		payout.CreatedAt = time.Now().Unix()
	}
	if payout.Status == "" {
		payout.Status = models.PayoutPending
	}
	if !payout.Status.Valid() {
		return fmt.Errorf("invalid payout status %q", payout.Status)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO payouts (id, artist_id, amount_usd, method, status, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		payout.ID, payout.ArtistID, payout.AmountUSD, payout.Method, string(payout.Status), payout.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payout: %w", err)
	}
	return nil
}

// UpdatePayoutStatus moves a payout to a new lifecycle state.
func (s *SQLiteStore) UpdatePayoutStatus(ctx context.Context, payoutID string, status models.PayoutStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid payout status %q", status)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE payouts SET status = ? WHERE id = ?",
		string(status), payoutID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payout status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check payout update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("payout %s: %w", payoutID, storage.ErrNotFound)
	}
	return nil
}

// ListPayoutsByArtist returns every payout for the artist, newest first.
func (s *SQLiteStore) ListPayoutsByArtist(ctx context.Context, artistID string) ([]*models.Payout, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, artist_id, amount_usd, method, status, created_at
		 FROM payouts WHERE artist_id = ? ORDER BY created_at DESC`,
		artistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	defer rows.Close()

	var payouts []*models.Payout
	for rows.Next() {
		payout := &models.Payout{}
		var status string
		if err := rows.Scan(&payout.ID, &payout.ArtistID, &payout.AmountUSD, &payout.Method, &status, &payout.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payout: %w", err)
		}
		payout.Status = models.PayoutStatus(status)
		payouts = append(payouts, payout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payouts: %w", err)
	}
	return payouts, nil
}
