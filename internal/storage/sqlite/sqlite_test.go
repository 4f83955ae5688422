package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kushtunes/royalty/internal/models"
	"github.com/kushtunes/royalty/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateArtist generates ID and timestamp", func(t *testing.T) {
		artist := &models.Artist{Name: "Nadia Kane", LabelID: "label-1"}
		if err := store.CreateArtist(ctx, artist); err != nil {
			t.Fatalf("CreateArtist failed: %v", err)
		}
		if artist.ID == "" {
			t.Error("Expected artist ID to be generated")
		}
		if artist.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetArtist(ctx, artist.ID)
		if err != nil {
			t.Fatalf("GetArtist failed: %v", err)
		}
		if got.Name != "Nadia Kane" || got.LabelID != "label-1" {
			t.Errorf("GetArtist = %+v", got)
		}
	})

	t.Run("GetArtist missing returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetArtist(ctx, "nope")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetArtist error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListArtistsByLabel returns the roster", func(t *testing.T) {
		for _, name := range []string{"Roster A", "Roster B"} {
			if err := store.CreateArtist(ctx, &models.Artist{Name: name, LabelID: "label-2"}); err != nil {
				t.Fatalf("CreateArtist failed: %v", err)
			}
		}
		if err := store.CreateArtist(ctx, &models.Artist{Name: "Indie"}); err != nil {
			t.Fatalf("CreateArtist failed: %v", err)
		}

		roster, err := store.ListArtistsByLabel(ctx, "label-2")
		if err != nil {
			t.Fatalf("ListArtistsByLabel failed: %v", err)
		}
		if len(roster) != 2 {
			t.Errorf("roster size = %d, want 2", len(roster))
		}
	})

	t.Run("Splits round-trip", func(t *testing.T) {
		artist := &models.Artist{Name: "Split Owner"}
		if err := store.CreateArtist(ctx, artist); err != nil {
			t.Fatalf("CreateArtist failed: %v", err)
		}
		track := &models.Track{Title: "Song", ISRC: "USAB12500010"}
		if err := store.CreateTrack(ctx, track); err != nil {
			t.Fatalf("CreateTrack failed: %v", err)
		}

		if err := store.CreateSplit(ctx, &models.Split{ArtistID: artist.ID, TrackID: track.ID, Percent: 30}); err != nil {
			t.Fatalf("CreateSplit failed: %v", err)
		}
		if err := store.CreateSplit(ctx, &models.Split{ArtistID: artist.ID, TrackID: track.ID, Percent: 20, Recoupable: true}); err != nil {
			t.Fatalf("CreateSplit failed: %v", err)
		}

		splits, err := store.ListSplitsByArtist(ctx, artist.ID)
		if err != nil {
			t.Fatalf("ListSplitsByArtist failed: %v", err)
		}
		if len(splits) != 2 {
			t.Fatalf("splits = %d, want 2 (duplicate pair rows preserved)", len(splits))
		}
	})

	t.Run("Earnings window filtering is inclusive", func(t *testing.T) {
		track := &models.Track{Title: "Windowed", ISRC: "USAB12500011"}
		if err := store.CreateTrack(ctx, track); err != nil {
			t.Fatalf("CreateTrack failed: %v", err)
		}
		for _, period := range []string{"2025-01", "2025-02", "2025-03"} {
			err := store.CreateEarning(ctx, &models.Earning{
				TrackID: track.ID, Period: period, Store: "Spotify", Amount: 10,
			})
			if err != nil {
				t.Fatalf("CreateEarning failed: %v", err)
			}
		}

		got, err := store.ListEarningsForTracks(ctx, []string{track.ID}, "2025-01", "2025-02")
		if err != nil {
			t.Fatalf("ListEarningsForTracks failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("bounded list = %d rows, want 2", len(got))
		}

		got, err = store.ListEarningsForTracks(ctx, []string{track.ID}, "", "")
		if err != nil {
			t.Fatalf("ListEarningsForTracks failed: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("unbounded list = %d rows, want 3", len(got))
		}

		got, err = store.ListEarningsForTracks(ctx, nil, "", "")
		if err != nil {
			t.Fatalf("ListEarningsForTracks failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("empty track set = %d rows, want 0", len(got))
		}
	})

	t.Run("CreateEarning rejects malformed period", func(t *testing.T) {
		track := &models.Track{Title: "Bad Period", ISRC: "USAB12500012"}
		if err := store.CreateTrack(ctx, track); err != nil {
			t.Fatalf("CreateTrack failed: %v", err)
		}
		err := store.CreateEarning(ctx, &models.Earning{TrackID: track.ID, Period: "2025-3", Store: "Spotify", Amount: 10})
		if err == nil {
			t.Error("expected error for malformed period")
		}
	})

	t.Run("ListStatementRows joins track metadata for one period", func(t *testing.T) {
		track := &models.Track{Title: "Joined", ISRC: "USAB12500013"}
		if err := store.CreateTrack(ctx, track); err != nil {
			t.Fatalf("CreateTrack failed: %v", err)
		}
		for _, period := range []string{"2025-05", "2025-06"} {
			err := store.CreateEarning(ctx, &models.Earning{
				TrackID: track.ID, Period: period, Store: "Apple Music", Amount: 42.5, Currency: "EUR",
			})
			if err != nil {
				t.Fatalf("CreateEarning failed: %v", err)
			}
		}

		rows, err := store.ListStatementRows(ctx, []string{track.ID}, "2025-05")
		if err != nil {
			t.Fatalf("ListStatementRows failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("rows = %d, want 1 (exact period match)", len(rows))
		}
		row := rows[0]
		if row.TrackTitle != "Joined" || row.ISRC != "USAB12500013" || row.Currency != "EUR" || row.Gross != 42.5 {
			t.Errorf("row = %+v", row)
		}
	})

	t.Run("CreateAdvance defaults remaining and status", func(t *testing.T) {
		artist := &models.Artist{Name: "Advanced"}
		if err := store.CreateArtist(ctx, artist); err != nil {
			t.Fatalf("CreateArtist failed: %v", err)
		}

		advance := &models.Advance{ArtistID: artist.ID, AmountUSD: 500}
		if err := store.CreateAdvance(ctx, advance); err != nil {
			t.Fatalf("CreateAdvance failed: %v", err)
		}
		if advance.RemainingUSD != 500 {
			t.Errorf("RemainingUSD = %v, want 500", advance.RemainingUSD)
		}
		if advance.Status != models.LiabilityOpen {
			t.Errorf("Status = %v, want open", advance.Status)
		}

		open, err := store.ListOpenAdvances(ctx, artist.ID)
		if err != nil {
			t.Fatalf("ListOpenAdvances failed: %v", err)
		}
		if len(open) != 1 {
			t.Fatalf("open advances = %d, want 1", len(open))
		}

		// Closing removes it from the open set.
		closed := models.LiabilityClosed
		if err := store.UpdateAdvance(ctx, advance.ID, nil, &closed); err != nil {
			t.Fatalf("UpdateAdvance failed: %v", err)
		}
		open, err = store.ListOpenAdvances(ctx, artist.ID)
		if err != nil {
			t.Fatalf("ListOpenAdvances failed: %v", err)
		}
		if len(open) != 0 {
			t.Errorf("open advances after close = %d, want 0", len(open))
		}
	})

	t.Run("UpdateAdvance missing returns ErrNotFound", func(t *testing.T) {
		remaining := 10.0
		err := store.UpdateAdvance(ctx, "nope", &remaining, nil)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateAdvance error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListOpenRecoupableCosts filters status and flag", func(t *testing.T) {
		artist := &models.Artist{Name: "Costly"}
		if err := store.CreateArtist(ctx, artist); err != nil {
			t.Fatalf("CreateArtist failed: %v", err)
		}

		costs := []*models.RecoupCost{
			{ArtistID: artist.ID, Description: "mastering", AmountUSD: 100, Recoupable: true},
			{ArtistID: artist.ID, Description: "promo gift", AmountUSD: 50, Recoupable: false},
			{ArtistID: artist.ID, Description: "video", AmountUSD: 200, Recoupable: true, Status: models.LiabilityClosed},
		}
		for _, cost := range costs {
			if err := store.CreateRecoupCost(ctx, cost); err != nil {
				t.Fatalf("CreateRecoupCost failed: %v", err)
			}
		}

		open, err := store.ListOpenRecoupableCosts(ctx, artist.ID)
		if err != nil {
			t.Fatalf("ListOpenRecoupableCosts failed: %v", err)
		}
		if len(open) != 1 || open[0].Description != "mastering" {
			t.Errorf("open recoupable costs = %+v, want only mastering", open)
		}
	})

	t.Run("Payout lifecycle", func(t *testing.T) {
		artist := &models.Artist{Name: "Paid"}
		if err := store.CreateArtist(ctx, artist); err != nil {
			t.Fatalf("CreateArtist failed: %v", err)
		}

		payout := &models.Payout{ArtistID: artist.ID, AmountUSD: 75, Method: "paypal"}
		if err := store.CreatePayout(ctx, payout); err != nil {
			t.Fatalf("CreatePayout failed: %v", err)
		}
		if payout.Status != models.PayoutPending {
			t.Errorf("default status = %v, want PENDING", payout.Status)
		}

		if err := store.UpdatePayoutStatus(ctx, payout.ID, models.PayoutApproved); err != nil {
			t.Fatalf("UpdatePayoutStatus failed: %v", err)
		}
		if err := store.UpdatePayoutStatus(ctx, payout.ID, "SHRUG"); err == nil {
			t.Error("expected error for unknown status")
		}

		payouts, err := store.ListPayoutsByArtist(ctx, artist.ID)
		if err != nil {
			t.Fatalf("ListPayoutsByArtist failed: %v", err)
		}
		if len(payouts) != 1 || payouts[0].Status != models.PayoutApproved {
			t.Errorf("payouts = %+v", payouts)
		}
	})
}

func TestLiabilitySourceUnavailable(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "old.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	// Simulate a database provisioned before recoupment shipped.
	if _, err := store.db.Exec("DROP TABLE recoup_costs"); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	_, err = store.ListOpenRecoupableCosts(ctx, "whoever")
	if !errors.Is(err, storage.ErrSourceUnavailable) {
		t.Errorf("ListOpenRecoupableCosts error = %v, want ErrSourceUnavailable", err)
	}

	// The advances table is still present and must keep working.
	if _, err := store.ListOpenAdvances(ctx, "whoever"); err != nil {
		t.Errorf("ListOpenAdvances failed: %v", err)
	}
}
