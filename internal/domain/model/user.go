package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxWatchHistory bounds the number of entries kept in a user's watch history.
const MaxWatchHistory = 50

// User is the subset of account data the video platform reads and writes.
type User struct {
	ID           uuid.UUID
	Username     string
	FullName     string
	Avatar       string
	WatchHistory WatchHistory
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WatchHistory lists watched video IDs, most recent first, without duplicates.
type WatchHistory []uuid.UUID

// Push records videoID as the most recent entry.
// Any earlier occurrence is removed and the result is truncated to limit entries.
// The receiver is not modified.
func (h WatchHistory) Push(videoID uuid.UUID, limit int) WatchHistory {
	next := make(WatchHistory, 0, len(h)+1)
	next = append(next, videoID)
	for _, id := range h {
		if id == videoID {
			continue
		}
		next = append(next, id)
	}
	if limit > 0 && len(next) > limit {
		next = next[:limit]
	}
	return next
}

// Contains reports whether videoID is present.
func (h WatchHistory) Contains(videoID uuid.UUID) bool {
	for _, id := range h {
		if id == videoID {
			return true
		}
	}
	return false
}
