package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// ContextKey is used for storing claims in request context.
type ContextKey string

// ClaimsKey is the context key under which verified claims are stored.
const ClaimsKey ContextKey = "claims"

// Middleware handles bearer-token authentication.
type Middleware struct {
	verifier *Verifier
}

// NewMiddleware creates a new auth middleware around a verifier.
func NewMiddleware(verifier *Verifier) *Middleware {
	return &Middleware{verifier: verifier}
}

// RequireAuth wraps a handler so it requires a valid bearer token.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			writeAuthError(w, "Authentication required")
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			writeAuthError(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// extractBearerToken extracts the token from the Authorization header.
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errMissingToken
	}

	return parts[1], nil
}

var errMissingToken = &authError{"missing or malformed bearer token"}

type authError struct{ msg string }

func (e *authError) Error() string { return e.msg }

// writeAuthError writes a 401 response in the API envelope shape.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"result":  "error",
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
