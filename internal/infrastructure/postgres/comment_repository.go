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

// CommentRepository implements repository.CommentRepository using PostgreSQL.
type CommentRepository struct {
	db DBTX
}

// NewCommentRepository creates a new CommentRepository instance.
func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	const query = `
		INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	metrics.ObserveQuery(metrics.DBQueryInsert, metrics.TableComments)
	_, err := r.db.Exec(ctx, query, c.ID, c.VideoID, c.OwnerID, c.Content, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	const query = `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableComments)
	c, err := scanComment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment by ID: %w", err)
	}

	return c, nil
}

// ListByVideo returns one page of comments, oldest first.
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, p model.Pagination) ([]*model.Comment, error) {
	const query = `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments
		WHERE video_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableComments)
	rows, err := r.db.Query(ctx, query, videoID, p.Limit, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepository) CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM comments WHERE video_id = $1`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableComments)
	var total int64
	if err := r.db.QueryRow(ctx, query, videoID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return total, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	const query = `
		UPDATE comments
		SET content = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, video_id, owner_id, content, created_at, updated_at
	`

	metrics.ObserveQuery(metrics.DBQueryUpdate, metrics.TableComments)
	c, err := scanComment(r.db.QueryRow(ctx, query, id, content, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return c, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM comments WHERE id = $1`

	metrics.ObserveQuery(metrics.DBQueryDelete, metrics.TableComments)
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	var c model.Comment
	if err := row.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
