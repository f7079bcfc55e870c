package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the userID value.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth is a middleware that enforces authentication on protected
// routes. It reads the bearer token from the Authorization header,
// validates it, and stores the asserted userID in the request context.
// Requests with a missing, malformed, or expired token are rejected with
// 401 before the handler runs; the body says whether the token expired so
// clients know a re-login will help.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "token missing")
				return
			}

			userID, err := tokens.Validate(tokenStr)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					unauthorized(w, "token expired")
				} else {
					unauthorized(w, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context. Returns ("", false) if the request carried no valid token.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// bearerToken extracts the opaque token string from an
// "Authorization: Bearer <token>" header. The scheme match is
// case-insensitive, per RFC 7235.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"` + message + `"}`))
}
