package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

var (
	// ErrMissingVideoFile is returned when a publish request carries no video file.
	ErrMissingVideoFile = apperr.InvalidArgument("video file is required")

	// ErrMissingThumbnail is returned when a publish request carries no thumbnail.
	ErrMissingThumbnail = apperr.InvalidArgument("thumbnail is required")

	// ErrInvalidVideoID is returned for a nil video identifier.
	ErrInvalidVideoID = apperr.InvalidArgument("video ID is required")

	// ErrInvalidUserID is returned for a nil user identifier.
	ErrInvalidUserID = apperr.InvalidArgument("user ID is required")
)

// PublishVideoInput contains the input parameters for publishing a video.
// VideoPath and ThumbnailPath are local files owned by the caller.
type PublishVideoInput struct {
	OwnerID       uuid.UUID
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoInput contains the input parameters for updating a video.
// An empty ThumbnailPath keeps the current thumbnail.
type UpdateVideoInput struct {
	VideoID       uuid.UUID
	Title         string
	Description   string
	ThumbnailPath string
}

// VideoService defines the interface for video business logic operations.
type VideoService interface {
	// ListVideos returns one page of the enriched video feed.
	ListVideos(ctx context.Context, q model.FeedQuery) (*model.FeedPage, error)

	// PublishVideo uploads both assets and creates the video record.
	PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error)

	// GetVideo retrieves video information by ID.
	GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// UpdateVideo replaces title and description, and optionally the thumbnail.
	UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error)

	// DeleteVideo removes the video asset, then the thumbnail asset, then the record.
	// A failed asset deletion aborts the operation without restoring the other asset.
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error

	// TogglePublishStatus flips the publish flag and returns the updated video.
	TogglePublishStatus(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// AddToWatchHistory counts a view and moves videoID to the front of the user's history.
	AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) (model.WatchHistory, error)
}

type videoService struct {
	repo    repository.VideoRepository
	users   repository.UserRepository
	media   repository.MediaStore
	cleanup repository.CleanupQueue
	locker  repository.Locker
}

// NewVideoService creates a new VideoService instance.
// cleanup and locker may be nil.
func NewVideoService(
	repo repository.VideoRepository,
	users repository.UserRepository,
	media repository.MediaStore,
	cleanup repository.CleanupQueue,
	locker repository.Locker,
) VideoService {
	return &videoService{
		repo:    repo,
		users:   users,
		media:   media,
		cleanup: cleanup,
		locker:  locker,
	}
}

func (s *videoService) ListVideos(ctx context.Context, q model.FeedQuery) (*model.FeedPage, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	videos, err := s.repo.Feed(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}

	total, err := s.repo.CountFeed(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count feed: %w", err)
	}

	return model.NewFeedPage(videos, q.Pagination, total), nil
}

// PublishVideo validates every field before touching the media store.
// Assets uploaded before a later failure are queued for cleanup.
func (s *videoService) PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	if input.OwnerID == uuid.Nil {
		return nil, model.ErrInvalidOwnerID
	}
	if err := model.ValidateDetails(input.Title, input.Description); err != nil {
		return nil, err
	}
	if input.VideoPath == "" {
		return nil, ErrMissingVideoFile
	}
	if input.ThumbnailPath == "" {
		return nil, ErrMissingThumbnail
	}

	videoAsset, err := s.media.Upload(ctx, input.VideoPath, repository.MediaKindVideo)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUploadFailed, "failed to upload video file", err)
	}

	thumbAsset, err := s.media.Upload(ctx, input.ThumbnailPath, repository.MediaKindImage)
	if err != nil {
		s.enqueueCleanup(ctx, videoAsset.URL, repository.MediaKindVideo, "thumbnail upload failed")
		return nil, apperr.Wrap(apperr.KindUploadFailed, "failed to upload thumbnail", err)
	}

	video, err := model.NewVideo(input.OwnerID, input.Title, input.Description, videoAsset.URL, thumbAsset.URL, videoAsset.Duration)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, video); err != nil {
		s.enqueueCleanup(ctx, videoAsset.URL, repository.MediaKindVideo, "video record not created")
		s.enqueueCleanup(ctx, thumbAsset.URL, repository.MediaKindImage, "video record not created")
		return nil, persistErr("failed to save video", err)
	}

	return video, nil
}

func (s *videoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}
	return s.repo.GetByID(ctx, videoID)
}

func (s *videoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error) {
	if input.VideoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}
	if err := model.ValidateDetails(input.Title, input.Description); err != nil {
		return nil, err
	}

	video, err := s.repo.GetByID(ctx, input.VideoID)
	if err != nil {
		return nil, err
	}

	var newThumb, oldThumb string
	if input.ThumbnailPath != "" {
		asset, err := s.media.Upload(ctx, input.ThumbnailPath, repository.MediaKindImage)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindUploadFailed, "failed to upload thumbnail", err)
		}
		newThumb = asset.URL
		oldThumb = video.SetThumbnailURL(newThumb)
	}

	if err := video.UpdateDetails(input.Title, input.Description); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, video); err != nil {
		if newThumb != "" {
			s.enqueueCleanup(ctx, newThumb, repository.MediaKindImage, "video update failed")
		}
		return nil, persistErr("failed to update video", err)
	}

	if oldThumb != "" && oldThumb != newThumb {
		s.enqueueCleanup(ctx, oldThumb, repository.MediaKindImage, "thumbnail replaced")
	}

	return video, nil
}

func (s *videoService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	if videoID == uuid.Nil {
		return ErrInvalidVideoID
	}

	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}

	if _, err := s.media.Delete(ctx, video.VideoURL, repository.MediaKindVideo); err != nil {
		return apperr.Wrap(apperr.KindStorageFailed, "failed to delete video file", err)
	}

	if _, err := s.media.Delete(ctx, video.ThumbnailURL, repository.MediaKindImage); err != nil {
		return apperr.Wrap(apperr.KindStorageFailed, "failed to delete thumbnail", err)
	}

	if err := s.repo.Delete(ctx, videoID); err != nil {
		return persistErr("failed to delete video", err)
	}

	return nil
}

func (s *videoService) TogglePublishStatus(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}

	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	video.TogglePublish()

	if err := s.repo.Update(ctx, video); err != nil {
		return nil, persistErr("failed to update publish status", err)
	}

	return video, nil
}

// AddToWatchHistory increments the view counter on every call, so it is
// idempotent in history content only.
func (s *videoService) AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) (model.WatchHistory, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}

	if _, err := s.repo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.repo.IncrementViews(ctx, videoID); err != nil {
		return nil, persistErr("failed to count view", err)
	}

	release := acquire(ctx, s.locker, "watch-history:"+userID.String())
	defer release()

	history, err := s.users.UpdateWatchHistory(ctx, userID, func(h model.WatchHistory) model.WatchHistory {
		return h.Push(videoID, model.MaxWatchHistory)
	})
	if err != nil {
		return nil, persistErr("failed to update watch history", err)
	}

	return history, nil
}

// enqueueCleanup schedules deletion of an asset no record references.
// Failures are logged; the asset stays orphaned.
func (s *videoService) enqueueCleanup(ctx context.Context, url string, kind repository.MediaKind, reason string) {
	if s.cleanup == nil {
		slog.Warn("no cleanup queue configured, asset orphaned", "url", url, "kind", kind, "reason", reason)
		return
	}

	task := repository.CleanupTask{URL: url, Kind: kind, Reason: reason}
	if err := s.cleanup.PublishCleanupTask(context.WithoutCancel(ctx), task); err != nil {
		slog.Warn("failed to enqueue asset cleanup",
			"url", url,
			"kind", kind,
			"reason", reason,
			"error", err,
		)
	}
}
