package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// TweetRepository implements repository.TweetRepository using PostgreSQL.
type TweetRepository struct {
	db DBTX
}

// NewTweetRepository creates a new TweetRepository instance.
func NewTweetRepository(db DBTX) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	const query = `SELECT id, owner_id, content, created_at FROM tweets WHERE id = $1`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableTweets)
	var t model.Tweet
	if err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to get tweet by ID: %w", err)
	}

	return &t, nil
}

var _ repository.TweetRepository = (*TweetRepository)(nil)
