package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kushtunes/royalty/internal/ledger"
	"github.com/kushtunes/royalty/internal/middleware"
	"github.com/kushtunes/royalty/internal/models"
	"github.com/kushtunes/royalty/internal/statement"
)

// handleBalance returns the authenticated artist's balance, optionally
// windowed by start/end date query parameters.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	artistID := middleware.GetArtistID(r.Context())
	if artistID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	win, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bal, err := s.engine.ArtistBalanceUSD(r.Context(), artistID, win)
	if err != nil {
		slog.Error("Balance computation failed", "artist_id", artistID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, bal)
}

// handleOpenRecoup returns the artist's outstanding recoupable debt, for
// the balance-preview UI.
func (s *Server) handleOpenRecoup(w http.ResponseWriter, r *http.Request) {
	artistID := middleware.GetArtistID(r.Context())
	if artistID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	open, err := s.engine.OpenRecoupUSD(r.Context(), artistID)
	if err != nil {
		slog.Error("Open recoup query failed", "artist_id", artistID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"openRecoupUSD": open})
}

// handleLabelBalance sums balances across the label's roster.
func (s *Server) handleLabelBalance(w http.ResponseWriter, r *http.Request) {
	labelID := middleware.GetLabelID(r.Context())
	if labelID == "" {
		writeError(w, http.StatusForbidden, "label identity required")
		return
	}

	win, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	roster, err := s.store.ListArtistsByLabel(r.Context(), labelID)
	if err != nil {
		storeError(w, err)
		return
	}
	artistIDs := make([]string, len(roster))
	for i, artist := range roster {
		artistIDs[i] = artist.ID
	}

	bal, err := s.engine.RosterBalanceUSD(r.Context(), artistIDs, win)
	if err != nil {
		slog.Error("Label rollup failed", "label_id", labelID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Artists          int     `json:"artists"`
		EarnedUSD        float64 `json:"earnedUSD"`
		RecoupAppliedUSD float64 `json:"recoupAppliedUSD"`
		PaidOrPendingUSD float64 `json:"paidOrPendingUSD"`
		AvailableUSD     float64 `json:"availableUSD"`
	}{
		Artists:          len(artistIDs),
		EarnedUSD:        bal.EarnedUSD,
		RecoupAppliedUSD: bal.RecoupAppliedUSD,
		PaidOrPendingUSD: bal.PaidOrPendingUSD,
		AvailableUSD:     bal.AvailableUSD,
	})
}

// handleStatement streams a per-period statement as CSV or plaintext.
func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	artistID := middleware.GetArtistID(r.Context())
	if artistID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	period := r.URL.Query().Get("period")
	if !models.ValidPeriod(period) {
		writeError(w, http.StatusBadRequest, "period must match YYYY-MM")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "text" {
		writeError(w, http.StatusBadRequest, "format must be csv or text")
		return
	}

	st, err := statement.Build(r.Context(), s.store, s.conv, artistID, period)
	if err != nil {
		slog.Error("Statement build failed", "artist_id", artistID, "period", period, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=statement-%s.csv", period))
		if err := statement.WriteCSV(w, st); err != nil {
			slog.Error("Statement CSV write failed", "error", err)
		}
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := statement.WriteText(w, st); err != nil {
			slog.Error("Statement text write failed", "error", err)
		}
	}
}

// handleRequestPayout creates a pending payout for the authenticated
// artist, capped by their current available balance.
func (s *Server) handleRequestPayout(w http.ResponseWriter, r *http.Request) {
	artistID := middleware.GetArtistID(r.Context())
	if artistID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		AmountUSD float64 `json:"amountUSD"`
		Method    string  `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AmountUSD <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if req.Method == "" {
		req.Method = "bank"
	}

	bal, err := s.engine.ArtistBalanceUSD(r.Context(), artistID, ledger.Window{})
	if err != nil {
		slog.Error("Balance check for payout failed", "artist_id", artistID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if req.AmountUSD > bal.AvailableUSD {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("amount %.2f exceeds available balance %.2f", req.AmountUSD, bal.AvailableUSD))
		return
	}

	payout := &models.Payout{
		ArtistID:  artistID,
		AmountUSD: req.AmountUSD,
		Method:    req.Method,
		Status:    models.PayoutPending,
	}
	if err := s.store.CreatePayout(r.Context(), payout); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("Payout requested", "artist_id", artistID, "payout_id", payout.ID, "amount_usd", payout.AmountUSD)
	writeJSON(w, http.StatusCreated, payout)
}
