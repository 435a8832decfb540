package repository

import (
	"context"
)

// Locker provides named mutual exclusion shared across API replicas.
type Locker interface {
	// Acquire blocks until key is held or ctx is done.
	// The returned release function must be called exactly once.
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}
