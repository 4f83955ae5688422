package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kushtunes/royalty/internal/models"
)

// liabilityPatch is the partial-update body for advances and costs.
// Absent fields are left untouched.
type liabilityPatch struct {
	RemainingUSD *float64                `json:"remainingUSD"`
	Status       *models.LiabilityStatus `json:"status"`
}

// handleCreateAdvance records a new advance against an artist.
func (s *Server) handleCreateAdvance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArtistID  string  `json:"artistId"`
		AmountUSD float64 `json:"amountUSD"`
		Note      string  `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ArtistID == "" || req.AmountUSD <= 0 {
		writeError(w, http.StatusBadRequest, "artistId and a positive amountUSD are required")
		return
	}

	if _, err := s.store.GetArtist(r.Context(), req.ArtistID); err != nil {
		storeError(w, err)
		return
	}

	advance := &models.Advance{
		ArtistID:  req.ArtistID,
		AmountUSD: req.AmountUSD,
		Note:      req.Note,
	}
	if err := s.store.CreateAdvance(r.Context(), advance); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("Advance created", "advance_id", advance.ID, "artist_id", advance.ArtistID, "amount_usd", advance.AmountUSD)
	writeJSON(w, http.StatusCreated, advance)
}

// handleUpdateAdvance adjusts an advance's remaining balance or status.
func (s *Server) handleUpdateAdvance(w http.ResponseWriter, r *http.Request) {
	var patch liabilityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be open or closed")
		return
	}

	id := r.PathValue("id")
	if err := s.store.UpdateAdvance(r.Context(), id, patch.RemainingUSD, patch.Status); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleCreateCost records a new recoupable cost against an artist.
func (s *Server) handleCreateCost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArtistID    string  `json:"artistId"`
		Description string  `json:"description"`
		AmountUSD   float64 `json:"amountUSD"`
		Recoupable  *bool   `json:"recoupable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ArtistID == "" || req.AmountUSD <= 0 {
		writeError(w, http.StatusBadRequest, "artistId and a positive amountUSD are required")
		return
	}

	if _, err := s.store.GetArtist(r.Context(), req.ArtistID); err != nil {
		storeError(w, err)
		return
	}

	recoupable := true
	if req.Recoupable != nil {
		recoupable = *req.Recoupable
	}
	cost := &models.RecoupCost{
		ArtistID:    req.ArtistID,
		Description: req.Description,
		AmountUSD:   req.AmountUSD,
		Recoupable:  recoupable,
	}
	if err := s.store.CreateRecoupCost(r.Context(), cost); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("Recoup cost created", "cost_id", cost.ID, "artist_id", cost.ArtistID, "amount_usd", cost.AmountUSD)
	writeJSON(w, http.StatusCreated, cost)
}

// handleUpdateCost adjusts a cost's remaining balance or status.
func (s *Server) handleUpdateCost(w http.ResponseWriter, r *http.Request) {
	var patch liabilityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be open or closed")
		return
	}

	id := r.PathValue("id")
	if err := s.store.UpdateRecoupCost(r.Context(), id, patch.RemainingUSD, patch.Status); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleUpdatePayout moves a payout to a new lifecycle state.
func (s *Server) handleUpdatePayout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.PayoutStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown payout status")
		return
	}

	id := r.PathValue("id")
	if err := s.store.UpdatePayoutStatus(r.Context(), id, req.Status); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("Payout status updated", "payout_id", id, "status", req.Status)
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}
