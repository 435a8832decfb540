package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// LikeResult is the outcome of a like toggle.
// Like is the created record when Liked is true and the deleted one otherwise.
type LikeResult struct {
	Like  *model.Like
	Liked bool
}

// LikeService defines like toggles and the liked-videos listing.
type LikeService interface {
	ToggleVideoLike(ctx context.Context, actorID, videoID uuid.UUID) (*LikeResult, error)
	ToggleCommentLike(ctx context.Context, actorID, commentID uuid.UUID) (*LikeResult, error)
	ToggleTweetLike(ctx context.Context, actorID, tweetID uuid.UUID) (*LikeResult, error)

	// GetLikedVideos returns the videos actorID liked, most recent like first.
	GetLikedVideos(ctx context.Context, actorID uuid.UUID) ([]*model.Video, error)
}

type likeService struct {
	likes    repository.LikeRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	tweets   repository.TweetRepository
	locker   repository.Locker
}

// NewLikeService creates a new LikeService instance. locker may be nil.
func NewLikeService(
	likes repository.LikeRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	tweets repository.TweetRepository,
	locker repository.Locker,
) LikeService {
	return &likeService{
		likes:    likes,
		videos:   videos,
		comments: comments,
		tweets:   tweets,
		locker:   locker,
	}
}

func (s *likeService) ToggleVideoLike(ctx context.Context, actorID, videoID uuid.UUID) (*LikeResult, error) {
	return s.toggle(ctx, actorID, model.LikeTarget{Kind: model.LikeTargetVideo, ID: videoID})
}

func (s *likeService) ToggleCommentLike(ctx context.Context, actorID, commentID uuid.UUID) (*LikeResult, error) {
	return s.toggle(ctx, actorID, model.LikeTarget{Kind: model.LikeTargetComment, ID: commentID})
}

func (s *likeService) ToggleTweetLike(ctx context.Context, actorID, tweetID uuid.UUID) (*LikeResult, error) {
	return s.toggle(ctx, actorID, model.LikeTarget{Kind: model.LikeTargetTweet, ID: tweetID})
}

func (s *likeService) GetLikedVideos(ctx context.Context, actorID uuid.UUID) ([]*model.Video, error) {
	if actorID == uuid.Nil {
		return nil, model.ErrInvalidLikerID
	}

	videos, err := s.likes.ListLikedVideos(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}

	return videos, nil
}

// toggle flips the (actor, target) pair between liked and not liked.
// The pair is serialised by a lock; the unique index on likes is the backstop.
func (s *likeService) toggle(ctx context.Context, actorID uuid.UUID, target model.LikeTarget) (*LikeResult, error) {
	if actorID == uuid.Nil {
		return nil, model.ErrInvalidLikerID
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureTarget(ctx, target); err != nil {
		return nil, err
	}

	release := acquire(ctx, s.locker, fmt.Sprintf("like:%s:%s:%s", target.Kind, actorID, target.ID))
	defer release()

	existing, err := s.likes.Find(ctx, actorID, target)
	switch {
	case err == nil:
		if err := s.likes.Delete(ctx, existing.ID); err != nil {
			if errors.Is(err, repository.ErrLikeNotFound) {
				// Removed concurrently; the pair is absent either way.
				return &LikeResult{Like: existing, Liked: false}, nil
			}
			return nil, persistErr("failed to remove like", err)
		}
		return &LikeResult{Like: existing, Liked: false}, nil
	case !errors.Is(err, repository.ErrLikeNotFound):
		return nil, fmt.Errorf("find like: %w", err)
	}

	like, err := model.NewLike(actorID, target)
	if err != nil {
		return nil, err
	}

	if err := s.likes.Create(ctx, like); err != nil {
		if !errors.Is(err, repository.ErrDuplicateLike) {
			return nil, persistErr("failed to save like", err)
		}
		// Lost a race with another toggle that created the pair.
		current, findErr := s.likes.Find(ctx, actorID, target)
		if findErr != nil {
			return nil, fmt.Errorf("find like after conflict: %w", findErr)
		}
		return &LikeResult{Like: current, Liked: true}, nil
	}

	return &LikeResult{Like: like, Liked: true}, nil
}

func (s *likeService) ensureTarget(ctx context.Context, target model.LikeTarget) error {
	var err error
	switch target.Kind {
	case model.LikeTargetVideo:
		_, err = s.videos.GetByID(ctx, target.ID)
	case model.LikeTargetComment:
		_, err = s.comments.GetByID(ctx, target.ID)
	case model.LikeTargetTweet:
		_, err = s.tweets.GetByID(ctx, target.ID)
	}
	return err
}
