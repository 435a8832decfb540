package repository

import "github.com/hszk-dev/vidtube/internal/domain/apperr"

var (
	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = apperr.New(apperr.KindNotFound, "video not found")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "user not found")

	// ErrCommentNotFound is returned when a comment cannot be found.
	ErrCommentNotFound = apperr.New(apperr.KindNotFound, "comment not found")

	// ErrTweetNotFound is returned when a tweet cannot be found.
	ErrTweetNotFound = apperr.New(apperr.KindNotFound, "tweet not found")

	// ErrPlaylistNotFound is returned when a playlist cannot be found.
	ErrPlaylistNotFound = apperr.New(apperr.KindNotFound, "playlist not found")

	// ErrLikeNotFound is returned when no like exists for an (actor, target) pair.
	ErrLikeNotFound = apperr.New(apperr.KindNotFound, "like not found")

	// ErrSubscriptionNotFound is returned when no subscription exists for a (subscriber, channel) pair.
	ErrSubscriptionNotFound = apperr.New(apperr.KindNotFound, "subscription not found")

	// ErrDuplicateVideo is returned when attempting to create a video that already exists.
	ErrDuplicateVideo = apperr.New(apperr.KindConflict, "video already exists")

	// ErrDuplicateLike is returned when the (actor, target) pair is already liked.
	ErrDuplicateLike = apperr.New(apperr.KindConflict, "already liked")

	// ErrDuplicateSubscription is returned when the subscriber already follows the channel.
	ErrDuplicateSubscription = apperr.New(apperr.KindConflict, "already subscribed")

	// ErrObjectNotFound is returned when an object is absent from media storage.
	ErrObjectNotFound = apperr.New(apperr.KindNotFound, "object not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = apperr.New(apperr.KindStorageFailed, "bucket not found")

	// ErrInvalidMediaURL is returned when a URL does not point into the media store.
	ErrInvalidMediaURL = apperr.New(apperr.KindInvalidArgument, "media URL does not belong to this store")
)
