package usecase

import (
	"context"
	"log/slog"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// acquire takes key on locker and returns the matching release.
// A nil locker or a failed acquisition yields a no-op release; callers
// still rely on the store's unique constraints and row locks.
func acquire(ctx context.Context, locker repository.Locker, key string) func() {
	if locker == nil {
		return func() {}
	}

	release, err := locker.Acquire(ctx, key)
	if err != nil {
		slog.Warn("failed to acquire lock, continuing without it",
			"key", key,
			"error", err,
		)
		return func() {}
	}

	return func() {
		// The request context may already be cancelled when the handler returns.
		if err := release(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("failed to release lock",
				"key", key,
				"error", err,
			)
		}
	}
}

// persistErr classifies an unclassified store failure as PersistenceFailed.
// Errors that already carry a kind (NotFound, Conflict) pass through.
func persistErr(message string, err error) error {
	if apperr.KindOf(err) != apperr.KindInternal {
		return err
	}
	return apperr.Wrap(apperr.KindPersistenceFailed, message, err)
}
