// Package server exposes the balance engine and statement exports over a
// JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kushtunes/royalty/internal/auth"
	"github.com/kushtunes/royalty/internal/currency"
	"github.com/kushtunes/royalty/internal/ledger"
	"github.com/kushtunes/royalty/internal/middleware"
	"github.com/kushtunes/royalty/internal/storage"
)

// Server wires storage, the balance engine, and auth into HTTP handlers.
type Server struct {
	store  storage.Store
	conv   *currency.Converter
	engine *ledger.Engine
	jwt    *auth.JWTManager
}

// New creates a Server.
func New(store storage.Store, conv *currency.Converter, jwtManager *auth.JWTManager) *Server {
	return &Server{
		store:  store,
		conv:   conv,
		engine: ledger.NewEngine(store, conv),
		jwt:    jwtManager,
	}
}

// Handler returns the fully assembled HTTP handler: authenticated API
// routes plus unauthenticated health and metrics endpoints, all wrapped in
// logging, CORS, and metrics middleware.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/balance", s.handleBalance)
	api.HandleFunc("GET /api/recoup", s.handleOpenRecoup)
	api.HandleFunc("GET /api/label/balance", s.handleLabelBalance)
	api.HandleFunc("GET /api/statement", s.handleStatement)
	api.HandleFunc("POST /api/payouts", s.handleRequestPayout)

	admin := http.NewServeMux()
	admin.HandleFunc("POST /api/admin/advances", s.handleCreateAdvance)
	admin.HandleFunc("PATCH /api/admin/advances/{id}", s.handleUpdateAdvance)
	admin.HandleFunc("POST /api/admin/costs", s.handleCreateCost)
	admin.HandleFunc("PATCH /api/admin/costs/{id}", s.handleUpdateCost)
	admin.HandleFunc("PATCH /api/admin/payouts/{id}", s.handleUpdatePayout)
	api.Handle("/api/admin/", middleware.RequireAdmin(admin))

	root := http.NewServeMux()
	root.Handle("/api/", middleware.RequireAuth(s.jwt)(api))
	root.Handle("GET /metrics", promhttp.Handler())
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return middleware.Logging(middleware.Metrics(middleware.CORS(root)))
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// storeError maps storage failures onto HTTP responses.
func storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	slog.Error("Storage operation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// parseWindow reads optional start/end ISO-8601 date query parameters.
// Bad date strings are a client error; the engine never sees them.
func parseWindow(r *http.Request) (ledger.Window, error) {
	var win ledger.Window

	parse := func(s string) (time.Time, error) {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, nil
		}
		return time.Parse(time.RFC3339, s)
	}

	if s := r.URL.Query().Get("start"); s != "" {
		t, err := parse(s)
		if err != nil {
			return win, errors.New("invalid start date")
		}
		win.Start = t
	}
	if s := r.URL.Query().Get("end"); s != "" {
		t, err := parse(s)
		if err != nil {
			return win, errors.New("invalid end date")
		}
		win.End = t
	}
	return win, nil
}
