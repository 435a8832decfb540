package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
)

// Subscription records that Subscriber follows Channel. Its existence is the subscribed state.
type Subscription struct {
	ID           uuid.UUID
	SubscriberID uuid.UUID
	ChannelID    uuid.UUID
	CreatedAt    time.Time
}

var (
	ErrInvalidChannelID    = apperr.InvalidArgument("channel ID is required")
	ErrInvalidSubscriberID = apperr.InvalidArgument("subscriber ID is required")
)

// NewSubscription creates a subscription of subscriberID to channelID.
func NewSubscription(subscriberID, channelID uuid.UUID) (*Subscription, error) {
	if subscriberID == uuid.Nil {
		return nil, ErrInvalidSubscriberID
	}
	if channelID == uuid.Nil {
		return nil, ErrInvalidChannelID
	}
	return &Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now(),
	}, nil
}

// Comment is a user's comment on a video.
type Comment struct {
	ID        uuid.UUID
	VideoID   uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	ErrEmptyContent    = apperr.InvalidArgument("content is required")
	ErrContentTooLong  = apperr.InvalidArgument("content exceeds maximum length of 5000 characters")
	ErrInvalidVideoID  = apperr.InvalidArgument("video ID is required")
	ErrInvalidAuthorID = apperr.InvalidArgument("owner ID is required")
)

const maxCommentLength = 5000

// ValidateContent checks comment text.
func ValidateContent(content string) error {
	if content == "" {
		return ErrEmptyContent
	}
	if len(content) > maxCommentLength {
		return ErrContentTooLong
	}
	return nil
}

// NewComment creates a comment by ownerID on videoID.
func NewComment(videoID, ownerID uuid.UUID, content string) (*Comment, error) {
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}
	if ownerID == uuid.Nil {
		return nil, ErrInvalidAuthorID
	}
	if err := ValidateContent(content); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CommentPage is one page of a video's comments.
type CommentPage struct {
	Comments   []*Comment
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// Tweet is a short text post. Only its existence matters here.
type Tweet struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
}

// ChannelStats aggregates a channel owner's counters.
type ChannelStats struct {
	TotalSubscribers int64
	TotalVideos      int64
	TotalViews       int64
	TotalLikes       int64
}
