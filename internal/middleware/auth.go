package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/flashchat/flashchat-go/internal/crypto"
	"github.com/flashchat/flashchat-go/internal/model"
)

// TokenCookie is the name of the session cookie carrying the signed token.
const TokenCookie = "token"

type contextKey string

const identityKey contextKey = "identity"

// Auth returns middleware that validates the session token cookie. Missing,
// malformed, and expired tokens all deny access with 401; on success the
// embedded identity is stored in the request context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				writeJSONError(w, http.StatusUnauthorized, "token missing")
				return
			}

			claims, err := crypto.ValidateToken(cookie.Value, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the request context.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey).(model.Identity)
	return id, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
