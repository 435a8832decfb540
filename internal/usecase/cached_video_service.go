package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// CachedVideoServiceConfig holds configuration for CachedVideoService.
type CachedVideoServiceConfig struct {
	// CacheTTL is the TTL for cached video records.
	CacheTTL time.Duration
}

// DefaultCachedVideoServiceConfig returns the default configuration.
func DefaultCachedVideoServiceConfig() CachedVideoServiceConfig {
	return CachedVideoServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedVideoService wraps VideoService with caching capabilities.
// Only single-video reads are cached; every mutation of a video evicts its entry.
type cachedVideoService struct {
	delegate VideoService
	cache    cache.VideoCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedVideoService creates a new CachedVideoService wrapping the provided VideoService.
func NewCachedVideoService(
	delegate VideoService,
	videoCache cache.VideoCache,
	cfg CachedVideoServiceConfig,
) VideoService {
	return &cachedVideoService{
		delegate: delegate,
		cache:    videoCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// ListVideos is never cached: its counters change with every like and subscription.
func (s *cachedVideoService) ListVideos(ctx context.Context, q model.FeedQuery) (*model.FeedPage, error) {
	return s.delegate.ListVideos(ctx, q)
}

func (s *cachedVideoService) PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	return s.delegate.PublishVideo(ctx, input)
}

// GetVideo is cache-aside behind singleflight. The shared load runs detached
// from the leader's cancellation so one aborted request cannot fail the others.
func (s *cachedVideoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	loadCtx := context.WithoutCancel(ctx)
	result, err, shared := s.sfGroup.Do(videoID.String(), func() (any, error) {
		return s.getVideoWithCache(loadCtx, videoID)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	// Callers may mutate the result; shared singleflight results must stay intact.
	video := *result.(*model.Video)
	return &video, nil
}

func (s *cachedVideoService) getVideoWithCache(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	video, err := s.cache.Get(ctx, videoID)
	if err != nil {
		slog.WarnContext(ctx, "cache get failed, falling back to database",
			"video_id", videoID,
			"error", err,
		)
	}

	if video != nil {
		return video, nil
	}

	video, err = s.delegate.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, video, s.cacheTTL); err != nil {
		slog.WarnContext(ctx, "failed to cache video",
			"video_id", videoID,
			"error", err,
		)
	}

	return video, nil
}

func (s *cachedVideoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error) {
	defer s.invalidate(ctx, input.VideoID)
	return s.delegate.UpdateVideo(ctx, input)
}

func (s *cachedVideoService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	defer s.invalidate(ctx, videoID)
	return s.delegate.DeleteVideo(ctx, videoID)
}

func (s *cachedVideoService) TogglePublishStatus(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	defer s.invalidate(ctx, videoID)
	return s.delegate.TogglePublishStatus(ctx, videoID)
}

// AddToWatchHistory evicts the entry because the view counter changed.
func (s *cachedVideoService) AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) (model.WatchHistory, error) {
	defer s.invalidate(ctx, videoID)
	return s.delegate.AddToWatchHistory(ctx, userID, videoID)
}

// invalidate runs after the delegate whether or not it failed, since a
// failure may follow a partial write. A stale entry lives at most one TTL.
func (s *cachedVideoService) invalidate(ctx context.Context, videoID uuid.UUID) {
	if err := s.cache.Delete(context.WithoutCancel(ctx), videoID); err != nil {
		slog.WarnContext(ctx, "failed to invalidate cached video",
			"video_id", videoID,
			"error", err,
		)
	}
}
