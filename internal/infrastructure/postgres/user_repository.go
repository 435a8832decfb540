package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db TxDB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db TxDB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by its unique identifier.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const query = `
		SELECT id, username, full_name, avatar, watch_history, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableUsers)
	var (
		user    model.User
		history []uuid.UUID
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.Avatar,
		&history,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	user.WatchHistory = model.WatchHistory(history)

	return &user, nil
}

// UpdateWatchHistory reads the history under a row lock, applies fn and writes it back
// in the same transaction, so concurrent watches by one user never lose an entry.
func (r *UserRepository) UpdateWatchHistory(
	ctx context.Context,
	userID uuid.UUID,
	fn func(model.WatchHistory) model.WatchHistory,
) (model.WatchHistory, error) {
	var next model.WatchHistory
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		const selectQuery = `SELECT watch_history FROM users WHERE id = $1 FOR UPDATE`

		metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableUsers)
		var current []uuid.UUID
		if err := tx.QueryRow(ctx, selectQuery, userID).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		next = fn(model.WatchHistory(current))

		const updateQuery = `UPDATE users SET watch_history = $2, updated_at = $3 WHERE id = $1`

		metrics.ObserveQuery(metrics.DBQueryUpdate, metrics.TableUsers)
		if _, err := tx.Exec(ctx, updateQuery, userID, []uuid.UUID(next), time.Now()); err != nil {
			return fmt.Errorf("failed to update watch history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return next, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
