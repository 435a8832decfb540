package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// ErrInvalidCommentID is returned for a nil comment identifier.
var ErrInvalidCommentID = apperr.InvalidArgument("comment ID is required")

// CommentService defines video comment operations.
type CommentService interface {
	ListVideoComments(ctx context.Context, videoID uuid.UUID, p model.Pagination) (*model.CommentPage, error)
	AddComment(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, commentID uuid.UUID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) CommentService {
	return &commentService{comments: comments, videos: videos}
}

func (s *commentService) ListVideoComments(ctx context.Context, videoID uuid.UUID, p model.Pagination) (*model.CommentPage, error) {
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByVideo(ctx, videoID, p)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	total, err := s.comments.CountByVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	return &model.CommentPage{
		Comments:   comments,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: model.TotalPages(total, p.Limit),
	}, nil
}

func (s *commentService) AddComment(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*model.Comment, error) {
	comment, err := model.NewComment(videoID, ownerID, content)
	if err != nil {
		return nil, err
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, err
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, persistErr("failed to save comment", err)
	}

	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, commentID uuid.UUID, content string) (*model.Comment, error) {
	if commentID == uuid.Nil {
		return nil, ErrInvalidCommentID
	}
	if err := model.ValidateContent(content); err != nil {
		return nil, err
	}

	comment, err := s.comments.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, persistErr("failed to update comment", err)
	}

	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	if commentID == uuid.Nil {
		return ErrInvalidCommentID
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return persistErr("failed to delete comment", err)
	}

	return nil
}
