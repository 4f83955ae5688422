package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kushtunes/royalty/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ArtistIDKey is the context key for the authenticated artist ID.
	ArtistIDKey contextKey = "artist_id"
	// LabelIDKey is the context key for the authenticated label ID.
	LabelIDKey contextKey = "label_id"
	// AdminKey is the context key for the admin flag.
	AdminKey contextKey = "admin"
)

// GetArtistID extracts the artist ID from the context.
// Returns empty string if not found.
func GetArtistID(ctx context.Context) string {
	artistID, _ := ctx.Value(ArtistIDKey).(string)
	return artistID
}

// GetLabelID extracts the label ID from the context.
// Returns empty string if not found.
func GetLabelID(ctx context.Context) string {
	labelID, _ := ctx.Value(LabelIDKey).(string)
	return labelID
}

// IsAdmin reports whether the context carries an admin identity.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(AdminKey).(bool)
	return admin
}

// RequireAuth returns middleware that validates bearer tokens and requires
// authentication. It extracts the token from the Authorization header,
// validates it, and adds the artist/label identity to the request context.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, auth.ErrMissingToken.Error())
				return
			}

			// Parse Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				unauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			ctx := context.WithValue(r.Context(), ArtistIDKey, claims.ArtistID)
			ctx = context.WithValue(ctx, LabelIDKey, claims.LabelID)
			ctx = context.WithValue(ctx, AdminKey, claims.Admin)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns middleware that rejects non-admin identities.
// It must run inside RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
