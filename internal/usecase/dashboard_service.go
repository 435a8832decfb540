package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// DashboardService reports on a channel owner's own content.
type DashboardService interface {
	// GetChannelStats aggregates subscriber, video, view and like totals.
	// An owner with no videos gets zero totals, not an error.
	GetChannelStats(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error)

	// GetChannelVideos lists the owner's videos, newest first.
	GetChannelVideos(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)
}

type dashboardService struct {
	videos repository.VideoRepository
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(videos repository.VideoRepository) DashboardService {
	return &dashboardService{videos: videos}
}

func (s *dashboardService) GetChannelStats(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	stats, err := s.videos.ChannelStats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("channel stats: %w", err)
	}

	return stats, nil
}

func (s *dashboardService) GetChannelVideos(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	videos, err := s.videos.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("channel videos: %w", err)
	}

	return videos, nil
}
