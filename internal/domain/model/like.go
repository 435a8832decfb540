package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
)

// LikeTargetKind identifies what a like refers to.
type LikeTargetKind string

const (
	LikeTargetVideo   LikeTargetKind = "video"
	LikeTargetComment LikeTargetKind = "comment"
	LikeTargetTweet   LikeTargetKind = "tweet"
)

func (k LikeTargetKind) IsValid() bool {
	switch k {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	default:
		return false
	}
}

func (k LikeTargetKind) String() string {
	return string(k)
}

// LikeTarget is the single object a like refers to.
type LikeTarget struct {
	Kind LikeTargetKind
	ID   uuid.UUID
}

var (
	ErrInvalidLikeTarget = apperr.InvalidArgument("like target must be a video, comment or tweet")
	ErrInvalidLikerID    = apperr.InvalidArgument("liker ID cannot be nil")
)

// Validate checks the target kind and identifier.
func (t LikeTarget) Validate() error {
	if !t.Kind.IsValid() || t.ID == uuid.Nil {
		return ErrInvalidLikeTarget
	}
	return nil
}

// Like records that a user liked exactly one video, comment or tweet.
// Its existence is the liked state.
type Like struct {
	ID        uuid.UUID
	LikedBy   uuid.UUID
	VideoID   *uuid.UUID
	CommentID *uuid.UUID
	TweetID   *uuid.UUID
	CreatedAt time.Time
}

// NewLike creates a like for target.
func NewLike(likedBy uuid.UUID, target LikeTarget) (*Like, error) {
	if likedBy == uuid.Nil {
		return nil, ErrInvalidLikerID
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	like := &Like{
		ID:        uuid.New(),
		LikedBy:   likedBy,
		CreatedAt: time.Now(),
	}
	id := target.ID
	switch target.Kind {
	case LikeTargetVideo:
		like.VideoID = &id
	case LikeTargetComment:
		like.CommentID = &id
	case LikeTargetTweet:
		like.TweetID = &id
	}
	return like, nil
}

// Target returns the object this like refers to.
func (l *Like) Target() LikeTarget {
	switch {
	case l.VideoID != nil:
		return LikeTarget{Kind: LikeTargetVideo, ID: *l.VideoID}
	case l.CommentID != nil:
		return LikeTarget{Kind: LikeTargetComment, ID: *l.CommentID}
	case l.TweetID != nil:
		return LikeTarget{Kind: LikeTargetTweet, ID: *l.TweetID}
	default:
		return LikeTarget{}
	}
}
