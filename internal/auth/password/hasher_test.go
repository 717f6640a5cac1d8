package password

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	h := NewBcryptHasher(WithCost(bcrypt.MinCost))
	ctx := context.Background()

	hash, err := h.Hash(ctx, "correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if strings.Contains(hash, "correct horse") {
		t.Error("hash must not contain the plaintext")
	}

	if err := h.Verify(ctx, "correct horse", hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := h.Verify(ctx, "wrong password", hash); !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestBcryptHash_TooLong(t *testing.T) {
	h := NewBcryptHasher(WithCost(bcrypt.MinCost))
	if _, err := h.Hash(context.Background(), strings.Repeat("x", 73)); err == nil {
		t.Error("expected error for password over the bcrypt limit")
	}
}

func TestBcryptHash_DistinctSalts(t *testing.T) {
	h := NewBcryptHasher(WithCost(bcrypt.MinCost))
	ctx := context.Background()

	h1, err := h.Hash(ctx, "correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := h.Hash(ctx, "correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestArgon2HashAndVerify(t *testing.T) {
	h := NewArgon2Hasher(WithArgon2Memory(8 * 1024))
	ctx := context.Background()

	hash, err := h.Hash(ctx, "correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %s", hash)
	}

	if err := h.Verify(ctx, "correct horse", hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := h.Verify(ctx, "wrong password", hash); !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
	if err := h.Verify(ctx, "correct horse", "garbage"); !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch for malformed hash, got %v", err)
	}
}

func TestBounded_RespectsCancellation(t *testing.T) {
	h := NewBounded(NewBcryptHasher(WithCost(bcrypt.MinCost)), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, "correct horse"); err == nil {
		t.Error("expected error when context already canceled")
	}
	if err := h.Verify(ctx, "correct horse", "hash"); err == nil {
		t.Error("expected error when context already canceled")
	}
}

func TestBounded_PassesThrough(t *testing.T) {
	h := NewBounded(NewBcryptHasher(WithCost(bcrypt.MinCost)), 2)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if err := h.Verify(ctx, "correct horse", hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}
}

func TestNewHasher_FromConfig(t *testing.T) {
	cfg := Config{Algorithm: AlgorithmBcrypt, BcryptCost: bcrypt.MinCost}
	h := NewHasher(cfg)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if err := h.Verify(ctx, "correct horse", hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Algorithm: "md5"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported algorithm")
	}

	cfg = Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}
