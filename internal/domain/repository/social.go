package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// LikeRepository persists likes. A unique (actor, target) constraint backs the toggle invariant.
type LikeRepository interface {
	// Find returns the like of target by likedBy, or ErrLikeNotFound.
	Find(ctx context.Context, likedBy uuid.UUID, target model.LikeTarget) (*model.Like, error)

	// Create inserts a like. Returns ErrDuplicateLike if the pair is already liked.
	Create(ctx context.Context, like *model.Like) error

	// Delete removes a like by ID. Returns ErrLikeNotFound if it no longer exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListLikedVideos returns the videos liked by userID, most recent like first.
	ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]*model.Video, error)
}

// SubscriptionRepository persists channel subscriptions.
type SubscriptionRepository interface {
	// Find returns the subscription of subscriberID to channelID, or ErrSubscriptionNotFound.
	Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*model.Subscription, error)

	// Create inserts a subscription. Returns ErrDuplicateSubscription if it already exists.
	Create(ctx context.Context, sub *model.Subscription) error

	// Delete removes a subscription by ID. Returns ErrSubscriptionNotFound if it no longer exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByChannel returns the subscribers of channelID.
	ListByChannel(ctx context.Context, channelID uuid.UUID) ([]*model.Subscription, error)

	// ListBySubscriber returns the channels subscriberID follows.
	ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*model.Subscription, error)
}

// CommentRepository persists video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error

	// GetByID returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// ListByVideo returns one page of a video's comments, oldest first.
	ListByVideo(ctx context.Context, videoID uuid.UUID, p model.Pagination) ([]*model.Comment, error)

	CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error)

	// UpdateContent replaces a comment's content and returns the updated comment.
	// Returns ErrCommentNotFound if the comment does not exist.
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error)

	// Delete returns ErrCommentNotFound if the comment does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TweetRepository exposes the tweet lookups needed for tweet likes.
type TweetRepository interface {
	// GetByID returns ErrTweetNotFound if the tweet does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
}

// PlaylistRepository persists playlists and their ordered video lists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error

	// GetByID returns ErrPlaylistNotFound if the playlist does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error)

	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Playlist, error)

	// UpdateDetails persists name and description.
	UpdateDetails(ctx context.Context, playlist *model.Playlist) error

	// Delete returns ErrPlaylistNotFound if the playlist does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AppendVideo appends videoID unless already present.
	// Returns model.ErrVideoAlreadyInPlaylist when the video is already present,
	// ErrPlaylistNotFound when the playlist does not exist.
	AppendVideo(ctx context.Context, playlistID, videoID uuid.UUID) error

	// RemoveVideo removes every occurrence of videoID.
	// Returns ErrPlaylistNotFound when the playlist does not exist.
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
}
