// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/kushtunes/royalty/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrSourceUnavailable is returned by liability reads when that
	// liability's table has not been provisioned. The balance engine treats
	// it as "this source contributes zero"; any other error is a real read
	// failure and propagates.
	ErrSourceUnavailable = errors.New("liability source unavailable")
)

// Store defines the interface for royalty ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the engine or the HTTP layer.
type Store interface {
	// CreateArtist persists a new artist. The ID field is populated by the
	// store when empty.
	CreateArtist(ctx context.Context, artist *models.Artist) error

	// GetArtist retrieves an artist by ID. Returns ErrNotFound if missing.
	GetArtist(ctx context.Context, artistID string) (*models.Artist, error)

	// ListArtistsByLabel returns the roster of a label.
	ListArtistsByLabel(ctx context.Context, labelID string) ([]*models.Artist, error)

	// CreateTrack persists a new track.
	CreateTrack(ctx context.Context, track *models.Track) error

	// CreateSplit persists a new split row.
	CreateSplit(ctx context.Context, split *models.Split) error

	// ListSplitsByArtist returns every split row the artist holds, across
	// all tracks. Duplicate (artist, track) rows are returned as-is; the
	// engine sums them.
	ListSplitsByArtist(ctx context.Context, artistID string) ([]*models.Split, error)

	// CreateEarning persists a new earning fact.
	CreateEarning(ctx context.Context, earning *models.Earning) error

	// ListEarningsForTracks returns earnings for the given track set whose
	// period falls in [startPeriod, endPeriod], inclusive on both ends.
	// An empty bound string leaves that side unbounded. An empty track set
	// yields no rows.
	ListEarningsForTracks(ctx context.Context, trackIDs []string, startPeriod, endPeriod string) ([]*models.Earning, error)

	// ListStatementRows returns earnings for the given track set in exactly
	// one period, joined with track title and ISRC. SharePercent and
	// ShareUSD are left zero for the statement builder to fill in.
	ListStatementRows(ctx context.Context, trackIDs []string, period string) ([]*models.StatementRow, error)

	// CreateAdvance persists a new advance. RemainingUSD defaults to
	// AmountUSD and Status to open when unset.
	CreateAdvance(ctx context.Context, advance *models.Advance) error

	// UpdateAdvance adjusts remaining balance and/or status.
	UpdateAdvance(ctx context.Context, advanceID string, remainingUSD *float64, status *models.LiabilityStatus) error

	// ListOpenAdvances returns the artist's advances with status open.
	// Returns ErrSourceUnavailable if the advances table is not provisioned.
	ListOpenAdvances(ctx context.Context, artistID string) ([]*models.Advance, error)

	// CreateRecoupCost persists a new recoupable cost.
	CreateRecoupCost(ctx context.Context, cost *models.RecoupCost) error

	// UpdateRecoupCost adjusts remaining balance and/or status.
	UpdateRecoupCost(ctx context.Context, costID string, remainingUSD *float64, status *models.LiabilityStatus) error

	// ListOpenRecoupableCosts returns the artist's costs that are both open
	// and marked recoupable. Returns ErrSourceUnavailable if the costs
	// table is not provisioned.
	ListOpenRecoupableCosts(ctx context.Context, artistID string) ([]*models.RecoupCost, error)

	// CreatePayout persists a new payout request.
	CreatePayout(ctx context.Context, payout *models.Payout) error

	// UpdatePayoutStatus moves a payout to a new lifecycle state.
	UpdatePayoutStatus(ctx context.Context, payoutID string, status models.PayoutStatus) error

	// ListPayoutsByArtist returns every payout for the artist, newest first.
	ListPayoutsByArtist(ctx context.Context, artistID string) ([]*models.Payout, error)

	// Close releases any resources held by the store.
	Close() error
}
