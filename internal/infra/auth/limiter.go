package auth

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// hashLimiter bounds the number of concurrently running hash computations so a
// burst of logins cannot monopolise every CPU.
type hashLimiter struct {
	sem *semaphore.Weighted
}

func newHashLimiter(slots int) *hashLimiter {
	if slots <= 0 {
		slots = 1
	}

	return &hashLimiter{sem: semaphore.NewWeighted(int64(slots))}
}

// run executes fn once a slot is free.
func (l *hashLimiter) run(ctx context.Context, fn func()) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return errors.Wrap(err, "waiting for a hashing slot")
	}
	defer l.sem.Release(1)

	fn()

	return nil
}
