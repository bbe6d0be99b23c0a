package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func protectedHandler(t *testing.T, m *Middleware) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(ClaimsKey).(*Claims)
		if !ok || claims == nil {
			t.Error("claims missing from request context")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthAcceptsValidBearer(t *testing.T) {
	m := NewMiddleware(NewVerifier("test-secret"))
	tokenString := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "operator-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()

	protectedHandler(t, m)(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	m := NewMiddleware(NewVerifier("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	rec := httptest.NewRecorder()

	m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without credentials")
	})(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", "some-token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
	}

	m := NewMiddleware(NewVerifier("test-secret"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler reached with malformed credentials")
			})(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	m := NewMiddleware(NewVerifier("test-secret"))
	tokenString := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "operator-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()

	m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with an invalid token")
	})(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
