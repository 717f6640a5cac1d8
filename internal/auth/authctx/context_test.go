package authctx

import (
	"context"
	"errors"
	"testing"
)

func TestSetAndGet(t *testing.T) {
	ctx := Set(context.Background(), Identity{UserID: "user-1"})

	id, ok := Get(ctx)
	if !ok {
		t.Fatal("expected identity in context")
	}
	if id.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", id.UserID)
	}
}

func TestGet_Empty(t *testing.T) {
	if _, ok := Get(context.Background()); ok {
		t.Error("expected no identity in empty context")
	}
}

func TestGetOrError(t *testing.T) {
	if _, err := GetOrError(context.Background()); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("expected ErrNoIdentity, got %v", err)
	}

	ctx := Set(context.Background(), Identity{UserID: "user-1"})
	id, err := GetOrError(ctx)
	if err != nil {
		t.Fatalf("GetOrError: %v", err)
	}
	if id.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", id.UserID)
	}
}

func TestMustGet_PanicsWhenMissing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing identity")
		}
	}()
	MustGet(context.Background())
}
