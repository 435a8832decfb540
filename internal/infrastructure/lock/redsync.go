// Package lock provides named mutual exclusion across API replicas backed by Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

const keyPrefix = "lock:"

// ErrNotHeld is returned by a release function when the lock expired before release.
var ErrNotHeld = errors.New("lock no longer held")

// Config holds lock timing settings.
type Config struct {
	// Expiry bounds how long a crashed holder can block others.
	Expiry time.Duration
	// Tries is the number of acquisition attempts before giving up.
	Tries int
	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration
}

// DefaultConfig returns settings suited to short toggle critical sections.
func DefaultConfig() Config {
	return Config{
		Expiry:     5 * time.Second,
		Tries:      20,
		RetryDelay: 50 * time.Millisecond,
	}
}

// RedisLocker implements repository.Locker with redsync.
type RedisLocker struct {
	rs  *redsync.Redsync
	cfg Config
}

// NewRedisLocker creates a locker over an existing Redis client.
func NewRedisLocker(client redis.UniversalClient, cfg Config) *RedisLocker {
	return &RedisLocker{
		rs:  redsync.New(goredis.NewPool(client)),
		cfg: cfg,
	}
}

// Acquire blocks until key is held, the retry budget is spent or ctx is done.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	mutex := l.rs.NewMutex(keyPrefix+key,
		redsync.WithExpiry(l.cfg.Expiry),
		redsync.WithTries(l.cfg.Tries),
		redsync.WithRetryDelay(l.cfg.RetryDelay),
	)

	if err := mutex.LockContext(ctx); err != nil {
		metrics.LockAcquisitionsTotal.WithLabelValues(metrics.LockFailed).Inc()
		return nil, fmt.Errorf("acquire lock %q: %w", key, err)
	}
	metrics.LockAcquisitionsTotal.WithLabelValues(metrics.LockAcquired).Inc()

	release := func(ctx context.Context) error {
		ok, err := mutex.UnlockContext(ctx)
		if err != nil {
			return fmt.Errorf("release lock %q: %w", key, err)
		}
		if !ok {
			return ErrNotHeld
		}
		return nil
	}
	return release, nil
}

var _ repository.Locker = (*RedisLocker)(nil)
