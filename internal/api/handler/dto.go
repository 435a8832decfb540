package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

const timeFormat = time.RFC3339

type VideoResponse struct {
	ID           string  `json:"id"`
	OwnerID      string  `json:"ownerId"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	VideoURL     string  `json:"videoFile"`
	ThumbnailURL string  `json:"thumbnail"`
	Duration     float64 `json:"duration"`
	Views        int64   `json:"views"`
	IsPublished  bool    `json:"isPublished"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

type OwnerResponse struct {
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

type FeedVideoResponse struct {
	VideoResponse
	Owner            OwnerResponse `json:"owner"`
	LikesCount       int64         `json:"likesCount"`
	SubscribersCount int64         `json:"subscribersCount"`
}

type FeedPageResponse struct {
	Videos     []FeedVideoResponse `json:"videos"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	Total      int64               `json:"totalVideos"`
	TotalPages int                 `json:"totalPages"`
}

type WatchHistoryResponse struct {
	WatchHistory []string `json:"watchHistory"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	VideoID   string `json:"videoId"`
	OwnerID   string `json:"ownerId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CommentPageResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Total      int64             `json:"totalComments"`
	TotalPages int               `json:"totalPages"`
}

type LikeResponse struct {
	Liked     bool    `json:"liked"`
	ID        string  `json:"id,omitempty"`
	LikedBy   string  `json:"likedBy,omitempty"`
	VideoID   *string `json:"videoId,omitempty"`
	CommentID *string `json:"commentId,omitempty"`
	TweetID   *string `json:"tweetId,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

type SubscriptionResponse struct {
	ID           string `json:"id"`
	SubscriberID string `json:"subscriberId"`
	ChannelID    string `json:"channelId"`
	CreatedAt    string `json:"createdAt"`
}

type ToggleSubscriptionResponse struct {
	Subscribed   bool                  `json:"subscribed"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}

type PlaylistResponse struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	VideoIDs    []string `json:"videoIds"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type PlaylistDetailResponse struct {
	PlaylistResponse
	Videos []VideoResponse `json:"videos"`
}

type ChannelStatsResponse struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:           v.ID.String(),
		OwnerID:      v.OwnerID.String(),
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		CreatedAt:    v.CreatedAt.Format(timeFormat),
		UpdatedAt:    v.UpdatedAt.Format(timeFormat),
	}
}

func toVideoResponses(videos []*model.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideoResponse(v))
	}
	return out
}

func toFeedPageResponse(p *model.FeedPage) FeedPageResponse {
	videos := make([]FeedVideoResponse, 0, len(p.Videos))
	for _, v := range p.Videos {
		videos = append(videos, FeedVideoResponse{
			VideoResponse:    toVideoResponse(&v.Video),
			Owner:            OwnerResponse{FullName: v.Owner.FullName, Avatar: v.Owner.Avatar},
			LikesCount:       v.LikesCount,
			SubscribersCount: v.SubscribersCount,
		})
	}
	return FeedPageResponse{
		Videos:     videos,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}

func toIDStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func toCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		VideoID:   c.VideoID.String(),
		OwnerID:   c.OwnerID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(timeFormat),
		UpdatedAt: c.UpdatedAt.Format(timeFormat),
	}
}

func toCommentPageResponse(p *model.CommentPage) CommentPageResponse {
	comments := make([]CommentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, toCommentResponse(c))
	}
	return CommentPageResponse{
		Comments:   comments,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toLikeResponse(res *usecase.LikeResult) LikeResponse {
	out := LikeResponse{Liked: res.Liked}
	if l := res.Like; l != nil {
		out.ID = l.ID.String()
		out.LikedBy = l.LikedBy.String()
		out.VideoID = optionalID(l.VideoID)
		out.CommentID = optionalID(l.CommentID)
		out.TweetID = optionalID(l.TweetID)
		out.CreatedAt = l.CreatedAt.Format(timeFormat)
	}
	return out
}

func toSubscriptionResponse(s *model.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:           s.ID.String(),
		SubscriberID: s.SubscriberID.String(),
		ChannelID:    s.ChannelID.String(),
		CreatedAt:    s.CreatedAt.Format(timeFormat),
	}
}

func toSubscriptionResponses(subs []*model.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, toSubscriptionResponse(s))
	}
	return out
}

func toPlaylistResponse(p *model.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:          p.ID.String(),
		OwnerID:     p.OwnerID.String(),
		Name:        p.Name,
		Description: p.Description,
		VideoIDs:    toIDStrings(p.VideoIDs),
		CreatedAt:   p.CreatedAt.Format(timeFormat),
		UpdatedAt:   p.UpdatedAt.Format(timeFormat),
	}
}

func toPlaylistDetailResponse(d *usecase.PlaylistDetail) PlaylistDetailResponse {
	return PlaylistDetailResponse{
		PlaylistResponse: toPlaylistResponse(d.Playlist),
		Videos:           toVideoResponses(d.Videos),
	}
}
