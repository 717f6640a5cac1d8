package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/skillsenselab/authd/internal/logger"
)

var dbSeq atomic.Int64

// newTestStore opens a private in-memory database per test.
func newTestStore(t *testing.T) *UserStore {
	t.Helper()

	dsn := fmt.Sprintf("file:usertest%d?mode=memory&cache=shared", dbSeq.Add(1))
	// A single connection serializes writes, so concurrent creates surface
	// the unique-index violation rather than SQLite lock contention.
	db, err := Open(context.Background(), Config{
		DSN:          dsn,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		MaxRetries:   1,
		AutoMigrate:  true,
	}, logger.NewDefault("store-test"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db.Users()
}

func TestCreateAndFind(t *testing.T) {
	users := newTestStore(t)
	ctx := context.Background()

	created, err := users.Create(ctx, "Jane Doe", "jane@example.com", "hash-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}

	byEmail, err := users.FindByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail.ID != created.ID || byEmail.Name != "Jane Doe" || byEmail.PasswordHash != "hash-1" {
		t.Errorf("unexpected record: %+v", byEmail)
	}

	byID, err := users.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.Email != "jane@example.com" {
		t.Errorf("unexpected email: %q", byID.Email)
	}
}

func TestFind_NotFound(t *testing.T) {
	users := newTestStore(t)
	ctx := context.Background()

	if _, err := users.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByEmail: expected ErrNotFound, got %v", err)
	}
	if _, err := users.FindByID(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID: expected ErrNotFound, got %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	users := newTestStore(t)
	ctx := context.Background()

	if _, err := users.Create(ctx, "Jane", "jane@example.com", "hash-1"); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := users.Create(ctx, "Other Jane", "jane@example.com", "hash-2"); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreate_EmailNormalized(t *testing.T) {
	users := newTestStore(t)
	ctx := context.Background()

	created, err := users.Create(ctx, "Jane", "  Jane@Example.COM  ", "hash-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Email != "jane@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}

	// A differently-cased duplicate still violates the index.
	if _, err := users.Create(ctx, "Jane", "JANE@example.com", "hash-2"); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail for case variant, got %v", err)
	}

	// Lookup with a different case finds the record.
	if _, err := users.FindByEmail(ctx, "JANE@EXAMPLE.COM"); err != nil {
		t.Errorf("FindByEmail with case variant: %v", err)
	}
}

func TestCreate_ConcurrentDuplicates(t *testing.T) {
	users := newTestStore(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	var successes, duplicates atomic.Int64

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := users.Create(ctx, "Jane", "jane@example.com", fmt.Sprintf("hash-%d", n))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrDuplicateEmail):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes.Load())
	}
	if duplicates.Load() != attempts-1 {
		t.Errorf("expected %d duplicates, got %d", attempts-1, duplicates.Load())
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Jane@Example.COM", "jane@example.com"},
		{"  jane@example.com  ", "jane@example.com"},
		{"jane@example.com", "jane@example.com"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
