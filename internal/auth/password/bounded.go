package password

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Bounded wraps a Hasher with a weighted semaphore so at most maxConcurrent
// hash computations run at once. Waiting respects context cancellation, so a
// request abandoned at connection close does not occupy a slot.
type Bounded struct {
	inner Hasher
	sem   *semaphore.Weighted
}

// NewBounded creates a concurrency-limited hasher. maxConcurrent <= 0 uses
// GOMAXPROCS.
func NewBounded(inner Hasher, maxConcurrent int) *Bounded {
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}
	return &Bounded{
		inner: inner,
		sem:   semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

func (b *Bounded) Hash(ctx context.Context, password string) (string, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("password: acquire hash slot: %w", err)
	}
	defer b.sem.Release(1)
	return b.inner.Hash(ctx, password)
}

func (b *Bounded) Verify(ctx context.Context, password, hash string) error {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("password: acquire hash slot: %w", err)
	}
	defer b.sem.Release(1)
	return b.inner.Verify(ctx, password, hash)
}
