package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// ErrInvalidPlaylistID is returned for a nil playlist identifier.
var ErrInvalidPlaylistID = apperr.InvalidArgument("playlist ID is required")

// PlaylistDetail is a playlist with its videos resolved in playlist order.
// Videos deleted since they were added are omitted.
type PlaylistDetail struct {
	*model.Playlist
	Videos []*model.Video
}

// PlaylistService defines playlist CRUD and membership operations.
type PlaylistService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*model.Playlist, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*PlaylistDetail, error)
	Get(ctx context.Context, playlistID uuid.UUID) (*PlaylistDetail, error)

	// Update applies the non-empty fields. At least one must be set.
	Update(ctx context.Context, playlistID uuid.UUID, name, description string) (*model.Playlist, error)
	Delete(ctx context.Context, playlistID uuid.UUID) error

	// AddVideo appends videoID. Returns model.ErrVideoAlreadyInPlaylist if present.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*model.Playlist, error)

	// RemoveVideo removes videoID. Returns model.ErrVideoNotInPlaylist if absent.
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*model.Playlist, error)
}

type playlistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
}

// NewPlaylistService creates a new PlaylistService instance.
func NewPlaylistService(playlists repository.PlaylistRepository, videos repository.VideoRepository) PlaylistService {
	return &playlistService{playlists: playlists, videos: videos}
}

func (s *playlistService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*model.Playlist, error) {
	playlist, err := model.NewPlaylist(ownerID, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, persistErr("failed to save playlist", err)
	}

	return playlist, nil
}

func (s *playlistService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*PlaylistDetail, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	playlists, err := s.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}

	details := make([]*PlaylistDetail, 0, len(playlists))
	for _, p := range playlists {
		d, err := s.resolve(ctx, p)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	return details, nil
}

func (s *playlistService) Get(ctx context.Context, playlistID uuid.UUID) (*PlaylistDetail, error) {
	if playlistID == uuid.Nil {
		return nil, ErrInvalidPlaylistID
	}

	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	return s.resolve(ctx, playlist)
}

func (s *playlistService) Update(ctx context.Context, playlistID uuid.UUID, name, description string) (*model.Playlist, error) {
	if playlistID == uuid.Nil {
		return nil, ErrInvalidPlaylistID
	}
	if name == "" && description == "" {
		return nil, model.ErrEmptyPlaylistUpdate
	}

	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if err := playlist.Rename(name, description); err != nil {
		return nil, err
	}

	if err := s.playlists.UpdateDetails(ctx, playlist); err != nil {
		return nil, persistErr("failed to update playlist", err)
	}

	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, playlistID uuid.UUID) error {
	if playlistID == uuid.Nil {
		return ErrInvalidPlaylistID
	}

	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return persistErr("failed to delete playlist", err)
	}

	return nil
}

func (s *playlistService) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	if playlistID == uuid.Nil {
		return nil, ErrInvalidPlaylistID
	}
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}

	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, err
	}

	if playlist.Contains(videoID) {
		return nil, model.ErrVideoAlreadyInPlaylist
	}

	// The store repeats the membership check atomically.
	if err := s.playlists.AppendVideo(ctx, playlistID, videoID); err != nil {
		return nil, persistErr("failed to add video to playlist", err)
	}

	if err := playlist.AddVideo(videoID); err != nil {
		return nil, err
	}

	return playlist, nil
}

func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	if playlistID == uuid.Nil {
		return nil, ErrInvalidPlaylistID
	}
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}

	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !playlist.Contains(videoID) {
		return nil, model.ErrVideoNotInPlaylist
	}

	if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, persistErr("failed to remove video from playlist", err)
	}

	if err := playlist.RemoveVideo(videoID); err != nil {
		return nil, err
	}

	return playlist, nil
}

func (s *playlistService) resolve(ctx context.Context, p *model.Playlist) (*PlaylistDetail, error) {
	videos := []*model.Video{}
	if len(p.VideoIDs) > 0 {
		var err error
		videos, err = s.videos.GetByIDs(ctx, p.VideoIDs)
		if err != nil {
			return nil, fmt.Errorf("load playlist videos: %w", err)
		}
	}
	return &PlaylistDetail{Playlist: p, Videos: videos}, nil
}
