package service

import (
	"context"
	"strings"
	"sync"

	"todo-api/internal/domain"
)

// TokenRegistry es la autoridad de revocación: guarda la lista de tokens
// activos por usuario. Un token firmado que no figura aquí se trata igual que
// un token inválido.
type TokenRegistry interface {
	Append(ctx context.Context, userID, scope, token string) error
	Contains(ctx context.Context, userID, scope, token string) (bool, error)
	Remove(ctx context.Context, userID, token string) error
}

type memoryTokenRegistry struct {
	mu     sync.Mutex
	tokens map[string][]domain.UserToken
}

// NewMemoryTokenRegistry crea un registro en memoria, pensado para tests y
// como fallback sin almacenamiento externo.
func NewMemoryTokenRegistry() TokenRegistry {
	return &memoryTokenRegistry{
		tokens: make(map[string][]domain.UserToken),
	}
}

func (r *memoryTokenRegistry) Append(_ context.Context, userID, scope, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if strings.TrimSpace(token) == "" {
		return nil
	}
	// Duplicados permitidos: la lista no se deduplica.
	r.tokens[userID] = append(r.tokens[userID], domain.UserToken{Scope: scope, Token: token})
	return nil
}

func (r *memoryTokenRegistry) Contains(_ context.Context, userID, scope, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.tokens[userID] {
		if entry.Scope == scope && entry.Token == token {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryTokenRegistry) Remove(_ context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.tokens[userID]
	kept := entries[:0]
	for _, entry := range entries {
		if entry.Token != token {
			kept = append(kept, entry)
		}
	}
	r.tokens[userID] = kept
	return nil
}
