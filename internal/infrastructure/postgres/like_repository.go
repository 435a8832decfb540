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

// likeTargetColumns maps a target kind to its nullable foreign-key column.
var likeTargetColumns = map[model.LikeTargetKind]string{
	model.LikeTargetVideo:   "video_id",
	model.LikeTargetComment: "comment_id",
	model.LikeTargetTweet:   "tweet_id",
}

// LikeRepository implements repository.LikeRepository using PostgreSQL.
type LikeRepository struct {
	db DBTX
}

// NewLikeRepository creates a new LikeRepository instance.
func NewLikeRepository(db DBTX) *LikeRepository {
	return &LikeRepository{db: db}
}

// Find returns the like of target by likedBy.
func (r *LikeRepository) Find(ctx context.Context, likedBy uuid.UUID, target model.LikeTarget) (*model.Like, error) {
	column, ok := likeTargetColumns[target.Kind]
	if !ok {
		return nil, model.ErrInvalidLikeTarget
	}

	query := `
		SELECT id, liked_by, video_id, comment_id, tweet_id, created_at
		FROM likes
		WHERE liked_by = $1 AND ` + column + ` = $2
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableLikes)
	var like model.Like
	err := r.db.QueryRow(ctx, query, likedBy, target.ID).Scan(
		&like.ID,
		&like.LikedBy,
		&like.VideoID,
		&like.CommentID,
		&like.TweetID,
		&like.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrLikeNotFound
		}
		return nil, fmt.Errorf("failed to find like: %w", err)
	}

	return &like, nil
}

// Create inserts a like. The partial unique indexes turn a concurrent duplicate into zero rows.
func (r *LikeRepository) Create(ctx context.Context, like *model.Like) error {
	const query = `
		INSERT INTO likes (id, liked_by, video_id, comment_id, tweet_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING
	`

	metrics.ObserveQuery(metrics.DBQueryInsert, metrics.TableLikes)
	tag, err := r.db.Exec(ctx, query,
		like.ID,
		like.LikedBy,
		like.VideoID,
		like.CommentID,
		like.TweetID,
		like.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateLike
		}
		return fmt.Errorf("failed to create like: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrDuplicateLike
	}

	return nil
}

// Delete removes a like by ID.
func (r *LikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM likes WHERE id = $1`

	metrics.ObserveQuery(metrics.DBQueryDelete, metrics.TableLikes)
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrLikeNotFound
	}

	return nil
}

// ListLikedVideos returns the videos liked by userID, most recent like first.
func (r *LikeRepository) ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]*model.Video, error) {
	const query = `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		WHERE l.liked_by = $1
		ORDER BY l.created_at DESC
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableLikes)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked videos: %w", err)
	}
	return collectVideos(rows)
}

var _ repository.LikeRepository = (*LikeRepository)(nil)
