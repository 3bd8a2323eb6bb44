package service

import (
	"context"
	"testing"

	"todo-api/internal/domain"
)

func TestMemoryTokenRegistry_AppendContainsRemove(t *testing.T) {
	registry := NewMemoryTokenRegistry()
	ctx := context.Background()

	if err := registry.Append(ctx, "u1", domain.ScopeAuth, "tok1"); err != nil {
		t.Fatalf("append: %v", err)
	}

	ok, err := registry.Contains(ctx, "u1", domain.ScopeAuth, "tok1")
	if err != nil || !ok {
		t.Fatalf("expected token active, got ok=%v err=%v", ok, err)
	}

	// Otro usuario u otro scope no matchean.
	if ok, _ := registry.Contains(ctx, "u2", domain.ScopeAuth, "tok1"); ok {
		t.Fatalf("token matched wrong user")
	}
	if ok, _ := registry.Contains(ctx, "u1", "export", "tok1"); ok {
		t.Fatalf("token matched wrong scope")
	}

	if err := registry.Remove(ctx, "u1", "tok1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, _ := registry.Contains(ctx, "u1", domain.ScopeAuth, "tok1"); ok {
		t.Fatalf("token still active after remove")
	}
}

func TestMemoryTokenRegistry_DuplicatesKept(t *testing.T) {
	registry := NewMemoryTokenRegistry().(*memoryTokenRegistry)
	ctx := context.Background()

	if err := registry.Append(ctx, "u1", domain.ScopeAuth, "tok1"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := registry.Append(ctx, "u1", domain.ScopeAuth, "tok1"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := len(registry.tokens["u1"]); got != 2 {
		t.Fatalf("expected duplicates kept, got %d entries", got)
	}
}

func TestMemoryTokenRegistry_RemoveOnlyMatching(t *testing.T) {
	registry := NewMemoryTokenRegistry()
	ctx := context.Background()

	_ = registry.Append(ctx, "u1", domain.ScopeAuth, "tok1")
	_ = registry.Append(ctx, "u1", domain.ScopeAuth, "tok2")

	if err := registry.Remove(ctx, "u1", "tok1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, _ := registry.Contains(ctx, "u1", domain.ScopeAuth, "tok2"); !ok {
		t.Fatalf("unrelated token was removed")
	}
}
