package http

import (
	"net/http"
	"testing"
)

func TestAuthMiddleware_MissingToken(t *testing.T) {
	r, _, _ := setupRouter()

	rec := performRequest(r, http.MethodGet, "/users/me", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	r, _, _ := setupRouter()

	rec := performAuthedRequest(r, http.MethodGet, "/users/me", nil, "a1b2c3d4")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestAuthMiddleware_ForeignSignedToken(t *testing.T) {
	// Dos routers con el mismo secreto pero registros separados: un token
	// emitido por uno no resuelve en el otro.
	r1, _, _ := setupRouter()
	r2, _, _ := setupRouter()
	_, token := registerTestUser(t, r1, "user@example.com", "secret123")

	rec := performAuthedRequest(r2, http.MethodGet, "/users/me", nil, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r, _, _ := setupRouter()
	_, token := registerTestUser(t, r, "user@example.com", "secret123")

	rec := performAuthedRequest(r, http.MethodGet, "/users/me", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
}
