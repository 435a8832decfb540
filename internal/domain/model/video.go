package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
)

// Video represents an uploaded video owned by exactly one user.
type Video struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64 // seconds
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var (
	ErrEmptyTitle       = apperr.InvalidArgument("title cannot be empty")
	ErrTitleTooLong     = apperr.InvalidArgument("title exceeds maximum length of 255 characters")
	ErrEmptyDescription = apperr.InvalidArgument("description cannot be empty")
	ErrInvalidOwnerID   = apperr.InvalidArgument("owner ID cannot be nil")
	ErrEmptyVideoURL    = apperr.InvalidArgument("video URL cannot be empty")
	ErrEmptyThumbnail   = apperr.InvalidArgument("thumbnail URL cannot be empty")
)

const maxTitleLength = 255

// NewVideo creates a published Video for the given owner and assets.
func NewVideo(ownerID uuid.UUID, title, description, videoURL, thumbnailURL string, duration float64) (*Video, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	if err := ValidateDetails(title, description); err != nil {
		return nil, err
	}
	if videoURL == "" {
		return nil, ErrEmptyVideoURL
	}
	if thumbnailURL == "" {
		return nil, ErrEmptyThumbnail
	}

	now := time.Now()
	return &Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        title,
		Description:  description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidateDetails checks the user-editable text fields of a video.
func ValidateDetails(title, description string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	if description == "" {
		return ErrEmptyDescription
	}
	return nil
}

// UpdateDetails replaces title and description.
func (v *Video) UpdateDetails(title, description string) error {
	if err := ValidateDetails(title, description); err != nil {
		return err
	}
	v.Title = title
	v.Description = description
	v.UpdatedAt = time.Now()
	return nil
}

// SetThumbnailURL replaces the thumbnail and returns the previous URL.
func (v *Video) SetThumbnailURL(url string) string {
	old := v.ThumbnailURL
	v.ThumbnailURL = url
	v.UpdatedAt = time.Now()
	return old
}

// TogglePublish flips the publish flag.
func (v *Video) TogglePublish() {
	v.IsPublished = !v.IsPublished
	v.UpdatedAt = time.Now()
}
