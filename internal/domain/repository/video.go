package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// VideoRepository defines the interface for video persistence operations.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type VideoRepository interface {
	// Create persists a new video entity.
	// Returns ErrDuplicateVideo if the video already exists.
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video by its unique identifier.
	// Returns nil and ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// GetByIDs retrieves the videos with the given IDs in the order of ids.
	// Unknown IDs are skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Video, error)

	// GetByOwnerID retrieves all videos belonging to a user, newest first.
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)

	// Update persists the mutable fields of an existing video.
	// Returns ErrVideoNotFound if the video does not exist.
	Update(ctx context.Context, video *model.Video) error

	// Delete removes a video.
	// Returns ErrVideoNotFound if the video does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViews atomically adds one view and returns the new count.
	// Returns ErrVideoNotFound if the video does not exist.
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)

	// Feed returns one page of videos matching q, enriched with like and subscriber counts.
	Feed(ctx context.Context, q model.FeedQuery) ([]*model.FeedVideo, error)

	// CountFeed returns the number of videos matching q's filters, ignoring pagination.
	CountFeed(ctx context.Context, q model.FeedQuery) (int64, error)

	// ChannelStats aggregates subscriber, video, view and like counters for an owner.
	ChannelStats(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error)
}

// UserRepository defines the user reads and watch-history writes the platform needs.
type UserRepository interface {
	// GetByID retrieves a user.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// UpdateWatchHistory applies fn to the user's current history and persists the result.
	// Implementations must serialise concurrent updates for the same user.
	UpdateWatchHistory(ctx context.Context, userID uuid.UUID, fn func(model.WatchHistory) model.WatchHistory) (model.WatchHistory, error)
}
