package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushtunes/royalty/internal/auth"
	"github.com/kushtunes/royalty/internal/currency"
	"github.com/kushtunes/royalty/internal/ledger"
	"github.com/kushtunes/royalty/internal/models"
	"github.com/kushtunes/royalty/internal/storage/sqlite"
)

type testEnv struct {
	store   *sqlite.SQLiteStore
	jwt     *auth.JWTManager
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	conv := currency.NewConverter(map[string]float64{"EUR": 1.1})
	srv := New(store, conv, jwtManager)

	return &testEnv{store: store, jwt: jwtManager, handler: srv.Handler()}
}

func (e *testEnv) request(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// seedArtist creates an artist with one fully-owned track, a $100 USD
// earning in 2025-03, a $30 open advance, and a $20 pending payout.
func seedArtist(t *testing.T, env *testEnv) *models.Artist {
	t.Helper()
	ctx := context.Background()

	artist := &models.Artist{Name: "Nadia Kane", LabelID: "label-1"}
	require.NoError(t, env.store.CreateArtist(ctx, artist))

	track := &models.Track{Title: "Midnight Run", ISRC: "USAB12500001"}
	require.NoError(t, env.store.CreateTrack(ctx, track))
	require.NoError(t, env.store.CreateSplit(ctx, &models.Split{
		ArtistID: artist.ID, TrackID: track.ID, Percent: 100, Recoupable: true,
	}))
	require.NoError(t, env.store.CreateEarning(ctx, &models.Earning{
		TrackID: track.ID, Period: "2025-03", Store: "Spotify", Amount: 100, Currency: "USD",
	}))
	require.NoError(t, env.store.CreateAdvance(ctx, &models.Advance{
		ArtistID: artist.ID, AmountUSD: 30,
	}))
	require.NoError(t, env.store.CreatePayout(ctx, &models.Payout{
		ArtistID: artist.ID, AmountUSD: 20, Method: "bank",
	}))
	return artist
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/balance", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/balance", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBalanceEndpoint(t *testing.T) {
	env := newTestEnv(t)
	artist := seedArtist(t, env)

	token, err := env.jwt.Generate(artist.ID, "", false)
	require.NoError(t, err)

	rec := env.request(t, http.MethodGet, "/api/balance", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var bal ledger.Balance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bal))
	assert.InDelta(t, 100, bal.EarnedUSD, 0.005)
	assert.InDelta(t, 30, bal.RecoupAppliedUSD, 0.005)
	assert.InDelta(t, 20, bal.PaidOrPendingUSD, 0.005)
	assert.InDelta(t, 50, bal.AvailableUSD, 0.005)
}

func TestBalanceInvalidDates(t *testing.T) {
	env := newTestEnv(t)
	artist := seedArtist(t, env)
	token, err := env.jwt.Generate(artist.ID, "", false)
	require.NoError(t, err)

	rec := env.request(t, http.MethodGet, "/api/balance?start=March+2025", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/balance?end=2025-13-99", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Reversed bounds are normalized, not rejected.
	rec = env.request(t, http.MethodGet, "/api/balance?start=2025-12-01&end=2025-01-01", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenRecoupEndpoint(t *testing.T) {
	env := newTestEnv(t)
	artist := seedArtist(t, env)
	token, err := env.jwt.Generate(artist.ID, "", false)
	require.NoError(t, err)

	rec := env.request(t, http.MethodGet, "/api/recoup", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 30, body["openRecoupUSD"], 0.005)
}

func TestLabelBalanceEndpoint(t *testing.T) {
	env := newTestEnv(t)
	artist := seedArtist(t, env)

	// Label token, no artist identity needed.
	token, err := env.jwt.Generate(artist.ID, "label-1", false)
	require.NoError(t, err)

	rec := env.request(t, http.MethodGet, "/api/label/balance", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Artists      int     `json:"artists"`
		EarnedUSD    float64 `json:"earnedUSD"`
		AvailableUSD float64 `json:"availableUSD"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Artists)
	assert.InDelta(t, 100, body.EarnedUSD, 0.005)

	// A token without a label gets refused.
	noLabel, err := env.jwt.Generate(artist.ID, "", false)
	require.NoError(t, err)
	rec = env.request(t, http.MethodGet, "/api/label/balance", noLabel, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStatementEndpoint(t *testing.T) {
	env := newTestEnv(t)
	artist := seedArtist(t, env)
	token, err := env.jwt.Generate(artist.ID, "", false)
	require.NoError(t, err)

	rec := env.request(t, http.MethodGet, "/api/statement?period=2025-3", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "malformed period must be rejected")

	rec = env.request(t, http.MethodGet, "/api/statement?period=2025-03", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Midnight Run")
	assert.Contains(t, rec.Body.String(), "100.00")

	// A period with no earnings still yields a header-only CSV.
	rec = env.request(t, http.MethodGet, "/api/statement?period=2030-01", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 1)

	rec = env.request(t, http.MethodGet, "/api/statement?period=2025-03&format=text", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Royalty Statement")
	assert.Contains(t, rec.Body.String(), "100.0%")
}

func TestRequestPayout(t *testing.T) {
	env := newTestEnv(t)
	artist := seedArtist(t, env)
	token, err := env.jwt.Generate(artist.ID, "", false)
	require.NoError(t, err)

	// Available is 50; asking for more is refused.
	rec := env.request(t, http.MethodPost, "/api/payouts", token, `{"amountUSD": 60}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/payouts", token, `{"amountUSD": -5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/payouts", token, `{"amountUSD": 40, "method": "paypal"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The new pending payout claims the balance immediately.
	rec = env.request(t, http.MethodGet, "/api/balance", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var bal ledger.Balance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bal))
	assert.InDelta(t, 60, bal.PaidOrPendingUSD, 0.005)
	assert.InDelta(t, 10, bal.AvailableUSD, 0.005)
}

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv(t)
	artist := seedArtist(t, env)

	userToken, err := env.jwt.Generate(artist.ID, "", false)
	require.NoError(t, err)
	adminToken, err := env.jwt.Generate("admin-1", "", true)
	require.NoError(t, err)

	body := `{"artistId": "` + artist.ID + `", "amountUSD": 250, "note": "tour support"}`

	rec := env.request(t, http.MethodPost, "/api/admin/advances", userToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/admin/advances", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var advance models.Advance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &advance))
	assert.Equal(t, 250.0, advance.RemainingUSD)

	rec = env.request(t, http.MethodPatch, "/api/admin/advances/"+advance.ID, adminToken, `{"status": "closed"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodPatch, "/api/admin/advances/nope", adminToken, `{"status": "closed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodPatch, "/api/admin/advances/"+advance.ID, adminToken, `{"status": "sideways"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
