// Package statement builds per-period royalty statements for an artist and
// renders them as CSV or plaintext.
//
// A statement covers exactly one settlement period (equality match, not a
// range) and contains one row per earning on the artist's tracks, with the
// artist's share derived from the same split grouping the balance engine
// uses.
package statement

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kushtunes/royalty/internal/currency"
	"github.com/kushtunes/royalty/internal/ledger"
	"github.com/kushtunes/royalty/internal/models"
	"github.com/kushtunes/royalty/internal/storage"
)

// Statement is a per-artist, per-period earnings breakdown.
type Statement struct {
	ArtistID   string
	ArtistName string
	Period     string
	Rows       []models.StatementRow
	TotalUSD   float64
}

// Build assembles the statement for one artist and one settlement period.
// The period must already be validated by the caller. An artist with no
// splits yields an empty statement, not an error.
func Build(ctx context.Context, store storage.Store, conv *currency.Converter, artistID, period string) (*Statement, error) {
	st := &Statement{ArtistID: artistID, ArtistName: artistID, Period: period}

	// Best effort on the display name; a missing artist record still gets
	// a statement keyed by ID.
	if artist, err := store.GetArtist(ctx, artistID); err == nil {
		st.ArtistName = artist.Name
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to load artist: %w", err)
	}

	splits, err := store.ListSplitsByArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load splits: %w", err)
	}
	if len(splits) == 0 {
		return st, nil
	}

	shares := ledger.GroupShares(splits)
	trackIDs := make([]string, 0, len(shares))
	for trackID := range shares {
		trackIDs = append(trackIDs, trackID)
	}
	sort.Strings(trackIDs)

	rows, err := store.ListStatementRows(ctx, trackIDs, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load statement rows: %w", err)
	}

	for _, row := range rows {
		share := shares[row.TrackID]
		r := *row
		r.SharePercent = share.Percent
		r.ShareUSD = conv.ToUSD(r.Gross, r.Currency) * share.Percent / 100
		st.Rows = append(st.Rows, r)
		st.TotalUSD += r.ShareUSD
	}
	return st, nil
}
