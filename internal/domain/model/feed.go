package model

import (
	"math"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
)

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrInvalidPage      = apperr.InvalidArgument("page must be a positive integer")
	ErrInvalidLimit     = apperr.InvalidArgument("limit must be between 1 and 100")
	ErrInvalidSortField = apperr.InvalidArgument("unsupported sort field")
	ErrInvalidSortType  = apperr.InvalidArgument("sort type must be asc or desc")
)

// Pagination selects a 1-based page of fixed size.
type Pagination struct {
	Page  int
	Limit int
}

// Validate checks page and limit bounds. A page whose Offset would overflow
// int is rejected as an invalid page.
func (p Pagination) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return ErrInvalidLimit
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return ErrInvalidPage
	}
	return nil
}

// Offset is the number of records skipped before the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit), or 0 when there is nothing to page.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

// SortField names a sortable video attribute using the public API spelling.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByViews     SortField = "views"
	SortByDuration  SortField = "duration"
	SortByTitle     SortField = "title"
)

func (f SortField) IsValid() bool {
	switch f {
	case SortByCreatedAt, SortByUpdatedAt, SortByViews, SortByDuration, SortByTitle:
		return true
	default:
		return false
	}
}

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// FeedQuery describes a filtered, sorted, paginated feed request.
type FeedQuery struct {
	Pagination
	Query    string
	SortBy   SortField
	SortType SortDirection
	OwnerID  *uuid.UUID
}

// NewFeedQuery returns a query with the default page, limit and ordering.
func NewFeedQuery() FeedQuery {
	return FeedQuery{
		Pagination: Pagination{Page: DefaultPage, Limit: DefaultLimit},
		SortBy:     SortByCreatedAt,
		SortType:   SortDesc,
	}
}

// Validate checks every field before the query reaches the store.
func (q FeedQuery) Validate() error {
	if err := q.Pagination.Validate(); err != nil {
		return err
	}
	if !q.SortBy.IsValid() {
		return ErrInvalidSortField
	}
	if !q.SortType.IsValid() {
		return ErrInvalidSortType
	}
	return nil
}

// VideoOwner is the public projection of a video's owner.
type VideoOwner struct {
	FullName string
	Avatar   string
}

// FeedVideo is a video enriched with derived counters.
type FeedVideo struct {
	Video
	Owner            VideoOwner
	LikesCount       int64
	SubscribersCount int64
}

// FeedPage is one page of the video feed.
type FeedPage struct {
	Videos     []*FeedVideo
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// NewFeedPage assembles a page and derives TotalPages.
func NewFeedPage(videos []*FeedVideo, p Pagination, total int64) *FeedPage {
	if videos == nil {
		videos = []*FeedVideo{}
	}
	return &FeedPage{
		Videos:     videos,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
	}
}
