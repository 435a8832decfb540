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

const videoColumns = `id, owner_id, title, description, video_url, thumbnail_url, duration, views, is_published, created_at, updated_at`

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create persists a new video entity.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (` + videoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	metrics.ObserveQuery(metrics.DBQueryInsert, metrics.TableVideos)
	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.Duration,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateVideo
		}
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video by its unique identifier.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const query = `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE id = $1
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableVideos)
	video, err := scanVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	return video, nil
}

// GetByIDs retrieves videos in the order of ids, skipping unknown IDs.
func (r *VideoRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Video, error) {
	if len(ids) == 0 {
		return []*model.Video{}, nil
	}

	const query = `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at
		FROM unnest($1::uuid[]) WITH ORDINALITY AS ids(id, ord)
		JOIN videos v ON v.id = ids.id
		ORDER BY ids.ord
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableVideos)
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos by IDs: %w", err)
	}
	return collectVideos(rows)
}

// GetByOwnerID retrieves all videos belonging to a user.
func (r *VideoRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	const query = `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableVideos)
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos by owner ID: %w", err)
	}
	return collectVideos(rows)
}

// Update persists changes to an existing video entity.
func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	const query = `
		UPDATE videos
		SET title = $2, description = $3, thumbnail_url = $4, is_published = $5, updated_at = $6
		WHERE id = $1
	`

	video.UpdatedAt = time.Now()

	metrics.ObserveQuery(metrics.DBQueryUpdate, metrics.TableVideos)
	tag, err := r.db.Exec(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.ThumbnailURL,
		video.IsPublished,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// Delete removes a video record.
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM videos WHERE id = $1`

	metrics.ObserveQuery(metrics.DBQueryDelete, metrics.TableVideos)
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// IncrementViews adds one view in a single statement so concurrent watches are never lost.
func (r *VideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	const query = `
		UPDATE videos
		SET views = views + 1
		WHERE id = $1
		RETURNING views
	`

	metrics.ObserveQuery(metrics.DBQueryUpdate, metrics.TableVideos)
	var views int64
	if err := r.db.QueryRow(ctx, query, id).Scan(&views); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrVideoNotFound
		}
		return 0, fmt.Errorf("failed to increment views: %w", err)
	}

	return views, nil
}

// Feed returns one page of enriched videos.
func (r *VideoRepository) Feed(ctx context.Context, q model.FeedQuery) ([]*model.FeedVideo, error) {
	query, args, err := buildFeedQuery(q)
	if err != nil {
		return nil, err
	}

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableVideos)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer rows.Close()

	videos := []*model.FeedVideo{}
	for rows.Next() {
		var fv model.FeedVideo
		err := rows.Scan(
			&fv.ID,
			&fv.OwnerID,
			&fv.Title,
			&fv.Description,
			&fv.VideoURL,
			&fv.ThumbnailURL,
			&fv.Duration,
			&fv.Views,
			&fv.IsPublished,
			&fv.CreatedAt,
			&fv.UpdatedAt,
			&fv.Owner.FullName,
			&fv.Owner.Avatar,
			&fv.LikesCount,
			&fv.SubscribersCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed video: %w", err)
		}
		videos = append(videos, &fv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed: %w", err)
	}

	return videos, nil
}

// CountFeed returns the number of videos matching the feed filters.
func (r *VideoRepository) CountFeed(ctx context.Context, q model.FeedQuery) (int64, error) {
	query, args := buildFeedCount(q)

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableVideos)
	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count feed: %w", err)
	}

	return total, nil
}

// ChannelStats aggregates an owner's counters in one round trip.
func (r *VideoRepository) ChannelStats(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1),
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1),
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1),
			(SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1)
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableVideos)
	var stats model.ChannelStats
	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&stats.TotalSubscribers,
		&stats.TotalVideos,
		&stats.TotalViews,
		&stats.TotalLikes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}

	return &stats, nil
}

// scanVideo scans a single row selected with videoColumns into a Video model.
func scanVideo(row pgx.Row) (*model.Video, error) {
	var video model.Video

	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Duration,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &video, nil
}

// collectVideos drains rows selected with videoColumns and closes them.
func collectVideos(rows pgx.Rows) ([]*model.Video, error) {
	defer rows.Close()

	videos := []*model.Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}

	return videos, nil
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)
