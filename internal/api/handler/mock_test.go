package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/api/response"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// Test helpers

func newRequest(method, target string, body io.Reader, actor uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if actor != uuid.Nil {
		req = req.WithContext(middleware.WithActorID(req.Context(), actor))
	}
	return req
}

type envelope struct {
	Success bool                `json:"success"`
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorBody `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("failed to decode envelope %q: %v", body, err)
	}
	return env
}

func decodeData(t *testing.T, body []byte, dst any) {
	t.Helper()
	env := decodeEnvelope(t, body)
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("failed to decode data %q: %v", env.Data, err)
	}
}

func wantErrorKind(t *testing.T, body []byte, kind string) {
	t.Helper()
	env := decodeEnvelope(t, body)
	if env.Success || env.Status {
		t.Errorf("success/status = %v/%v, want false/false", env.Success, env.Status)
	}
	if env.Error == nil || env.Error.Kind != kind {
		t.Errorf("error = %+v, want kind %s", env.Error, kind)
	}
}

// Mock VideoService

type mockVideoService struct {
	listVideosFn     func(ctx context.Context, q model.FeedQuery) (*model.FeedPage, error)
	publishVideoFn   func(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error)
	getVideoFn       func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	updateVideoFn    func(ctx context.Context, input usecase.UpdateVideoInput) (*model.Video, error)
	deleteVideoFn    func(ctx context.Context, videoID uuid.UUID) error
	togglePublishFn  func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	addToHistoryFn   func(ctx context.Context, userID, videoID uuid.UUID) (model.WatchHistory, error)
	publishCallCount int
}

func (m *mockVideoService) ListVideos(ctx context.Context, q model.FeedQuery) (*model.FeedPage, error) {
	if m.listVideosFn != nil {
		return m.listVideosFn(ctx, q)
	}
	return model.NewFeedPage(nil, q.Pagination, 0), nil
}

func (m *mockVideoService) PublishVideo(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error) {
	m.publishCallCount++
	if m.publishVideoFn != nil {
		return m.publishVideoFn(ctx, input)
	}
	return nil, nil
}

func (m *mockVideoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockVideoService) UpdateVideo(ctx context.Context, input usecase.UpdateVideoInput) (*model.Video, error) {
	if m.updateVideoFn != nil {
		return m.updateVideoFn(ctx, input)
	}
	return nil, nil
}

func (m *mockVideoService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	if m.deleteVideoFn != nil {
		return m.deleteVideoFn(ctx, videoID)
	}
	return nil
}

func (m *mockVideoService) TogglePublishStatus(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.togglePublishFn != nil {
		return m.togglePublishFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockVideoService) AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) (model.WatchHistory, error) {
	if m.addToHistoryFn != nil {
		return m.addToHistoryFn(ctx, userID, videoID)
	}
	return model.WatchHistory{videoID}, nil
}

// Mock CommentService

type mockCommentService struct {
	listFn   func(ctx context.Context, videoID uuid.UUID, p model.Pagination) (*model.CommentPage, error)
	addFn    func(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*model.Comment, error)
	updateFn func(ctx context.Context, commentID uuid.UUID, content string) (*model.Comment, error)
	deleteFn func(ctx context.Context, commentID uuid.UUID) error
}

func (m *mockCommentService) ListVideoComments(ctx context.Context, videoID uuid.UUID, p model.Pagination) (*model.CommentPage, error) {
	if m.listFn != nil {
		return m.listFn(ctx, videoID, p)
	}
	return &model.CommentPage{Page: p.Page, Limit: p.Limit}, nil
}

func (m *mockCommentService) AddComment(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*model.Comment, error) {
	if m.addFn != nil {
		return m.addFn(ctx, videoID, ownerID, content)
	}
	return model.NewComment(videoID, ownerID, content)
}

func (m *mockCommentService) UpdateComment(ctx context.Context, commentID uuid.UUID, content string) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, commentID, content)
	}
	return &model.Comment{ID: commentID, Content: content}, nil
}

func (m *mockCommentService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID)
	}
	return nil
}

// Mock LikeService

type mockLikeService struct {
	toggleFn      func(ctx context.Context, kind model.LikeTargetKind, actorID, targetID uuid.UUID) (*usecase.LikeResult, error)
	likedVideosFn func(ctx context.Context, actorID uuid.UUID) ([]*model.Video, error)
}

func (m *mockLikeService) toggle(ctx context.Context, kind model.LikeTargetKind, actorID, targetID uuid.UUID) (*usecase.LikeResult, error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, kind, actorID, targetID)
	}
	like, err := model.NewLike(actorID, model.LikeTarget{Kind: kind, ID: targetID})
	if err != nil {
		return nil, err
	}
	return &usecase.LikeResult{Like: like, Liked: true}, nil
}

func (m *mockLikeService) ToggleVideoLike(ctx context.Context, actorID, videoID uuid.UUID) (*usecase.LikeResult, error) {
	return m.toggle(ctx, model.LikeTargetVideo, actorID, videoID)
}

func (m *mockLikeService) ToggleCommentLike(ctx context.Context, actorID, commentID uuid.UUID) (*usecase.LikeResult, error) {
	return m.toggle(ctx, model.LikeTargetComment, actorID, commentID)
}

func (m *mockLikeService) ToggleTweetLike(ctx context.Context, actorID, tweetID uuid.UUID) (*usecase.LikeResult, error) {
	return m.toggle(ctx, model.LikeTargetTweet, actorID, tweetID)
}

func (m *mockLikeService) GetLikedVideos(ctx context.Context, actorID uuid.UUID) ([]*model.Video, error) {
	if m.likedVideosFn != nil {
		return m.likedVideosFn(ctx, actorID)
	}
	return nil, nil
}

// Mock SubscriptionService

type mockSubscriptionService struct {
	toggleFn      func(ctx context.Context, subscriberID, channelID uuid.UUID) (*usecase.SubscriptionResult, error)
	subscribersFn func(ctx context.Context, channelID uuid.UUID) ([]*model.Subscription, error)
	channelsFn    func(ctx context.Context, subscriberID uuid.UUID) ([]*model.Subscription, error)
}

func (m *mockSubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*usecase.SubscriptionResult, error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, subscriberID, channelID)
	}
	sub, err := model.NewSubscription(subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	return &usecase.SubscriptionResult{Subscription: sub, Subscribed: true}, nil
}

func (m *mockSubscriptionService) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*model.Subscription, error) {
	if m.subscribersFn != nil {
		return m.subscribersFn(ctx, channelID)
	}
	return nil, nil
}

func (m *mockSubscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*model.Subscription, error) {
	if m.channelsFn != nil {
		return m.channelsFn(ctx, subscriberID)
	}
	return nil, nil
}

// Mock PlaylistService

type mockPlaylistService struct {
	createFn      func(ctx context.Context, ownerID uuid.UUID, name, description string) (*model.Playlist, error)
	listByUserFn  func(ctx context.Context, userID uuid.UUID) ([]*usecase.PlaylistDetail, error)
	getFn         func(ctx context.Context, playlistID uuid.UUID) (*usecase.PlaylistDetail, error)
	updateFn      func(ctx context.Context, playlistID uuid.UUID, name, description string) (*model.Playlist, error)
	deleteFn      func(ctx context.Context, playlistID uuid.UUID) error
	addVideoFn    func(ctx context.Context, playlistID, videoID uuid.UUID) (*model.Playlist, error)
	removeVideoFn func(ctx context.Context, playlistID, videoID uuid.UUID) (*model.Playlist, error)
}

func (m *mockPlaylistService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*model.Playlist, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, name, description)
	}
	return model.NewPlaylist(ownerID, name, description)
}

func (m *mockPlaylistService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*usecase.PlaylistDetail, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPlaylistService) Get(ctx context.Context, playlistID uuid.UUID) (*usecase.PlaylistDetail, error) {
	if m.getFn != nil {
		return m.getFn(ctx, playlistID)
	}
	return nil, nil
}

func (m *mockPlaylistService) Update(ctx context.Context, playlistID uuid.UUID, name, description string) (*model.Playlist, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, playlistID, name, description)
	}
	return nil, nil
}

func (m *mockPlaylistService) Delete(ctx context.Context, playlistID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, playlistID)
	}
	return nil
}

func (m *mockPlaylistService) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	if m.addVideoFn != nil {
		return m.addVideoFn(ctx, playlistID, videoID)
	}
	return nil, nil
}

func (m *mockPlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	if m.removeVideoFn != nil {
		return m.removeVideoFn(ctx, playlistID, videoID)
	}
	return nil, nil
}

// Mock DashboardService

type mockDashboardService struct {
	statsFn  func(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error)
	videosFn func(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)
}

func (m *mockDashboardService) GetChannelStats(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, ownerID)
	}
	return &model.ChannelStats{}, nil
}

func (m *mockDashboardService) GetChannelVideos(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	if m.videosFn != nil {
		return m.videosFn(ctx, ownerID)
	}
	return nil, nil
}
