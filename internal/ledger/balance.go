// Package ledger computes artist balances from the royalty ledgers.
//
// The engine is strictly read-only: it reads splits, earnings, open
// liabilities, and payouts, and produces a point-in-time balance. It never
// decrements liabilities or mutates payouts; those are admin actions.
// Every invocation re-reads from storage, so concurrent calls are safe and
// there is no cache to invalidate.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kushtunes/royalty/internal/currency"
	"github.com/kushtunes/royalty/internal/models"
	"github.com/kushtunes/royalty/internal/storage"
)

// Window bounds a balance query to a range of settlement periods.
// A zero time leaves that side unbounded; the zero Window means lifetime.
type Window struct {
	Start time.Time
	End   time.Time
}

// normalize swaps reversed bounds. Callers can pass start and end in either
// order and get the same answer.
func (w Window) normalize() Window {
	if !w.Start.IsZero() && !w.End.IsZero() && w.Start.After(w.End) {
		w.Start, w.End = w.End, w.Start
	}
	return w
}

// Balance is the four-figure result of a balance computation, all in USD.
type Balance struct {
	EarnedUSD        float64 `json:"earnedUSD"`
	RecoupAppliedUSD float64 `json:"recoupAppliedUSD"`
	PaidOrPendingUSD float64 `json:"paidOrPendingUSD"`
	AvailableUSD     float64 `json:"availableUSD"`
}

// Share is an artist's aggregated position on one track: the summed percent
// across all their split rows, and whether any of those rows is recoupable.
type Share struct {
	Percent    float64
	Recoupable bool
}

// GroupShares folds an artist's split rows into one Share per track.
// Duplicate (artist, track) rows sum their percents. A single recoupable
// split marks the artist's entire share on that track recoupable; the flag
// infects the whole share, it is not a per-slice proration.
func GroupShares(splits []*models.Split) map[string]Share {
	shares := make(map[string]Share, len(splits))
	for _, sp := range splits {
		share := shares[sp.TrackID]
		share.Percent += sp.Percent
		share.Recoupable = share.Recoupable || sp.Recoupable
		shares[sp.TrackID] = share
	}
	return shares
}

// Engine computes balances against a storage backend, normalizing all
// amounts to USD through a currency converter.
type Engine struct {
	store storage.Store
	conv  *currency.Converter
}

// NewEngine creates a balance engine.
func NewEngine(store storage.Store, conv *currency.Converter) *Engine {
	return &Engine{store: store, conv: conv}
}

// ArtistBalanceUSD computes the artist's balance over the given window.
//
// earned      = sum over in-window earnings of gross_usd * percent/100
// recoupApplied = min(earned on recoupable tracks, open recoup balance)
// paidOrPending = claimed payouts (pending/approved/processed), capped by
// the window end only - narrowing the start cannot un-pay a payout
// available   = max(0, earned - recoupApplied - paidOrPending)
func (e *Engine) ArtistBalanceUSD(ctx context.Context, artistID string, win Window) (Balance, error) {
	win = win.normalize()

	splits, err := e.store.ListSplitsByArtist(ctx, artistID)
	if err != nil {
		return Balance{}, fmt.Errorf("failed to load splits: %w", err)
	}

	// No splits: nothing earned, nothing to recoup, but payouts may still
	// be queued against the artist and keep their claim.
	if len(splits) == 0 {
		paid, err := e.paidOrPendingUSD(ctx, artistID, win.End)
		if err != nil {
			return Balance{}, err
		}
		return Balance{PaidOrPendingUSD: paid}, nil
	}

	shares := GroupShares(splits)
	trackIDs := make([]string, 0, len(shares))
	for trackID := range shares {
		trackIDs = append(trackIDs, trackID)
	}
	sort.Strings(trackIDs)

	var startPeriod, endPeriod string
	if !win.Start.IsZero() {
		startPeriod = models.PeriodOf(win.Start)
	}
	if !win.End.IsZero() {
		endPeriod = models.PeriodOf(win.End)
	}

	earnings, err := e.store.ListEarningsForTracks(ctx, trackIDs, startPeriod, endPeriod)
	if err != nil {
		return Balance{}, fmt.Errorf("failed to load earnings: %w", err)
	}

	var earned, earnedRecoupable float64
	for _, earning := range earnings {
		share := shares[earning.TrackID]
		amountUSD := e.conv.ToUSD(earning.Amount, earning.Currency) * share.Percent / 100
		earned += amountUSD
		if share.Recoupable {
			earnedRecoupable += amountUSD
		}
	}

	openRecoup, err := e.OpenRecoupUSD(ctx, artistID)
	if err != nil {
		return Balance{}, err
	}

	// Recoupment can neither exceed what the recoupable tracks earned in
	// this window nor the liability still outstanding.
	applied := min(earnedRecoupable, openRecoup)

	paid, err := e.paidOrPendingUSD(ctx, artistID, win.End)
	if err != nil {
		return Balance{}, err
	}

	return Balance{
		EarnedUSD:        earned,
		RecoupAppliedUSD: applied,
		PaidOrPendingUSD: paid,
		AvailableUSD:     max(0, earned-applied-paid),
	}, nil
}

// OpenRecoupUSD sums the artist's outstanding recoupable debt: remaining
// balances of open advances plus open, recoupable costs. A liability source
// whose table is not provisioned contributes zero; a read failure on a
// present source propagates.
func (e *Engine) OpenRecoupUSD(ctx context.Context, artistID string) (float64, error) {
	var total float64

	advances, err := e.store.ListOpenAdvances(ctx, artistID)
	if err != nil && !errors.Is(err, storage.ErrSourceUnavailable) {
		return 0, fmt.Errorf("failed to load advances: %w", err)
	}
	for _, adv := range advances {
		total += adv.RemainingUSD
	}

	costs, err := e.store.ListOpenRecoupableCosts(ctx, artistID)
	if err != nil && !errors.Is(err, storage.ErrSourceUnavailable) {
		return 0, fmt.Errorf("failed to load recoup costs: %w", err)
	}
	for _, cost := range costs {
		total += cost.RemainingUSD
	}

	return total, nil
}

// RosterBalanceUSD sums per-artist balances field by field. Artists are
// fully independent in the engine, which is what makes this a plain sum.
func (e *Engine) RosterBalanceUSD(ctx context.Context, artistIDs []string, win Window) (Balance, error) {
	var total Balance
	for _, artistID := range artistIDs {
		bal, err := e.ArtistBalanceUSD(ctx, artistID, win)
		if err != nil {
			return Balance{}, fmt.Errorf("artist %s: %w", artistID, err)
		}
		total.EarnedUSD += bal.EarnedUSD
		total.RecoupAppliedUSD += bal.RecoupAppliedUSD
		total.PaidOrPendingUSD += bal.PaidOrPendingUSD
		total.AvailableUSD += bal.AvailableUSD
	}
	return total, nil
}

// paidOrPendingUSD sums payouts that still claim the artist's balance.
// Only an end bound applies; payouts before the window start stay counted.
func (e *Engine) paidOrPendingUSD(ctx context.Context, artistID string, end time.Time) (float64, error) {
	payouts, err := e.store.ListPayoutsByArtist(ctx, artistID)
	if err != nil {
		return 0, fmt.Errorf("failed to load payouts: %w", err)
	}

	var total float64
	for _, payout := range payouts {
		if !payout.Status.Claimed() {
			continue
		}
		if !end.IsZero() && payout.CreatedAt > end.Unix() {
			continue
		}
		total += payout.AmountUSD
	}
	return total, nil
}
