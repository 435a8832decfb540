package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
)

// Playlist is an ordered, duplicate-free list of videos owned by a user.
type Playlist struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	VideoIDs    []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	ErrEmptyPlaylistName        = apperr.InvalidArgument("name is required")
	ErrEmptyPlaylistDescription = apperr.InvalidArgument("description is required")
	ErrEmptyPlaylistUpdate      = apperr.InvalidArgument("name or description is required")
	ErrVideoAlreadyInPlaylist   = apperr.New(apperr.KindConflict, "video already in playlist")
	ErrVideoNotInPlaylist       = apperr.New(apperr.KindNotFound, "video not found in playlist")
)

// NewPlaylist creates an empty playlist.
func NewPlaylist(ownerID uuid.UUID, name, description string) (*Playlist, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	if name == "" {
		return nil, ErrEmptyPlaylistName
	}
	if description == "" {
		return nil, ErrEmptyPlaylistDescription
	}
	now := time.Now()
	return &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		VideoIDs:    []uuid.UUID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Contains reports whether videoID is in the playlist.
func (p *Playlist) Contains(videoID uuid.UUID) bool {
	for _, id := range p.VideoIDs {
		if id == videoID {
			return true
		}
	}
	return false
}

// AddVideo appends videoID. The playlist is unchanged on error.
func (p *Playlist) AddVideo(videoID uuid.UUID) error {
	if p.Contains(videoID) {
		return ErrVideoAlreadyInPlaylist
	}
	p.VideoIDs = append(p.VideoIDs, videoID)
	p.UpdatedAt = time.Now()
	return nil
}

// RemoveVideo removes every occurrence of videoID. The playlist is unchanged on error.
func (p *Playlist) RemoveVideo(videoID uuid.UUID) error {
	if !p.Contains(videoID) {
		return ErrVideoNotInPlaylist
	}
	kept := make([]uuid.UUID, 0, len(p.VideoIDs))
	for _, id := range p.VideoIDs {
		if id != videoID {
			kept = append(kept, id)
		}
	}
	p.VideoIDs = kept
	p.UpdatedAt = time.Now()
	return nil
}

// Rename applies non-empty fields. At least one must be set.
func (p *Playlist) Rename(name, description string) error {
	if name == "" && description == "" {
		return ErrEmptyPlaylistUpdate
	}
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	p.UpdatedAt = time.Now()
	return nil
}
