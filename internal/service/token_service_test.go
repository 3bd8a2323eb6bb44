package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"todo-api/internal/domain"
)

func seedUser(repo *mockUserRepo, id, email string) domain.User {
	user := domain.User{
		ID:        id,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	repo.usersByID[id] = user
	repo.usersByEmail[email] = id
	return user
}

func TestTokenService_IssueVerify(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewTokenService("secret", repo, NewMemoryTokenRegistry())

	token, err := svc.Issue(context.Background(), "u1", domain.ScopeAuth)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Scope != domain.ScopeAuth {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenService_VerifyTampered(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewTokenService("secret", repo, NewMemoryTokenRegistry())

	token, err := svc.Issue(context.Background(), "u1", domain.ScopeAuth)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.Verify("garbage"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_ResolveActiveToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewTokenService("secret", repo, NewMemoryTokenRegistry())
	user := seedUser(repo, "u1", "user@example.com")

	token, err := svc.Issue(context.Background(), user.ID, domain.ScopeAuth)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	resolved, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != user.ID || resolved.Email != user.Email {
		t.Fatalf("unexpected user: %+v", resolved)
	}
}

func TestTokenService_ResolveRevokedToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewTokenService("secret", repo, NewMemoryTokenRegistry())
	user := seedUser(repo, "u1", "user@example.com")

	token, err := svc.Issue(context.Background(), user.ID, domain.ScopeAuth)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := svc.Revoke(context.Background(), user.ID, token); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	// Revocado y basura son indistinguibles para el caller.
	if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_ResolveForeignToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewTokenService("secret", repo, NewMemoryTokenRegistry())
	user := seedUser(repo, "u1", "user@example.com")

	// Firmado con el mismo secreto pero registrado en otro proceso: la firma
	// es válida y aun así no debe resolver.
	other := NewTokenService("secret", repo, NewMemoryTokenRegistry())
	foreign, err := other.Issue(context.Background(), user.ID, domain.ScopeAuth)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Resolve(context.Background(), foreign); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_ResolveWrongScope(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewTokenService("secret", repo, NewMemoryTokenRegistry())
	user := seedUser(repo, "u1", "user@example.com")

	token, err := svc.Issue(context.Background(), user.ID, "export")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_ResolveUnknownUser(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewTokenService("secret", repo, NewMemoryTokenRegistry())

	// Token activo para un usuario que ya no existe en el store.
	token, err := svc.Issue(context.Background(), "ghost", domain.ScopeAuth)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_DifferentSecret(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewTokenService("secret", repo, NewMemoryTokenRegistry())
	other := NewTokenService("other-secret", repo, NewMemoryTokenRegistry())

	token, err := other.Issue(context.Background(), "u1", domain.ScopeAuth)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
