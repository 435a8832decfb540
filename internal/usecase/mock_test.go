package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn         func(ctx context.Context, video *model.Video) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	getByIDsFn       func(ctx context.Context, ids []uuid.UUID) ([]*model.Video, error)
	getByOwnerIDFn   func(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)
	updateFn         func(ctx context.Context, video *model.Video) error
	deleteFn         func(ctx context.Context, id uuid.UUID) error
	incrementViewsFn func(ctx context.Context, id uuid.UUID) (int64, error)
	feedFn           func(ctx context.Context, q model.FeedQuery) ([]*model.FeedVideo, error)
	countFeedFn      func(ctx context.Context, q model.FeedQuery) (int64, error)
	channelStatsFn   func(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error)
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Video, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return []*model.Video{}, nil
}

func (m *mockVideoRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	if m.getByOwnerIDFn != nil {
		return m.getByOwnerIDFn(ctx, ownerID)
	}
	return []*model.Video{}, nil
}

func (m *mockVideoRepository) Update(ctx context.Context, video *model.Video) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockVideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, id)
	}
	return 1, nil
}

func (m *mockVideoRepository) Feed(ctx context.Context, q model.FeedQuery) ([]*model.FeedVideo, error) {
	if m.feedFn != nil {
		return m.feedFn(ctx, q)
	}
	return []*model.FeedVideo{}, nil
}

func (m *mockVideoRepository) CountFeed(ctx context.Context, q model.FeedQuery) (int64, error) {
	if m.countFeedFn != nil {
		return m.countFeedFn(ctx, q)
	}
	return 0, nil
}

func (m *mockVideoRepository) ChannelStats(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error) {
	if m.channelStatsFn != nil {
		return m.channelStatsFn(ctx, ownerID)
	}
	return &model.ChannelStats{}, nil
}

// mockUserRepository keeps watch histories in memory unless overridden.
type mockUserRepository struct {
	getByIDFn            func(ctx context.Context, id uuid.UUID) (*model.User, error)
	updateWatchHistoryFn func(ctx context.Context, userID uuid.UUID, fn func(model.WatchHistory) model.WatchHistory) (model.WatchHistory, error)

	mu        sync.Mutex
	histories map[uuid.UUID]model.WatchHistory
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserRepository) UpdateWatchHistory(ctx context.Context, userID uuid.UUID, fn func(model.WatchHistory) model.WatchHistory) (model.WatchHistory, error) {
	if m.updateWatchHistoryFn != nil {
		return m.updateWatchHistoryFn(ctx, userID, fn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.histories == nil {
		m.histories = make(map[uuid.UUID]model.WatchHistory)
	}
	next := fn(m.histories[userID])
	m.histories[userID] = next
	return next, nil
}

// mockMediaStore provides a configurable mock for MediaStore.
type mockMediaStore struct {
	uploadFn func(ctx context.Context, localPath string, kind repository.MediaKind) (*repository.UploadResult, error)
	deleteFn func(ctx context.Context, url string, kind repository.MediaKind) (string, error)

	mu      sync.Mutex
	deleted []string
}

func (m *mockMediaStore) Upload(ctx context.Context, localPath string, kind repository.MediaKind) (*repository.UploadResult, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, localPath, kind)
	}
	return &repository.UploadResult{URL: "http://media/" + string(kind) + "/" + localPath}, nil
}

func (m *mockMediaStore) Delete(ctx context.Context, url string, kind repository.MediaKind) (string, error) {
	m.mu.Lock()
	m.deleted = append(m.deleted, url)
	m.mu.Unlock()
	if m.deleteFn != nil {
		return m.deleteFn(ctx, url, kind)
	}
	return url, nil
}

// mockCleanupQueue records published tasks.
type mockCleanupQueue struct {
	publishFn func(ctx context.Context, task repository.CleanupTask) error

	mu        sync.Mutex
	published []repository.CleanupTask
}

func (m *mockCleanupQueue) PublishCleanupTask(ctx context.Context, task repository.CleanupTask) error {
	m.mu.Lock()
	m.published = append(m.published, task)
	m.mu.Unlock()
	if m.publishFn != nil {
		return m.publishFn(ctx, task)
	}
	return nil
}

func (m *mockCleanupQueue) ConsumeCleanupTasks(ctx context.Context, handler func(task repository.CleanupTask) error) error {
	return nil
}

func (m *mockCleanupQueue) Close() error {
	return nil
}

// mockLocker counts acquisitions and releases.
type mockLocker struct {
	acquireFn func(ctx context.Context, key string) error

	mu       sync.Mutex
	keys     []string
	released int
}

func (m *mockLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	if m.acquireFn != nil {
		if err := m.acquireFn(ctx, key); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	m.keys = append(m.keys, key)
	m.mu.Unlock()
	return func(context.Context) error {
		m.mu.Lock()
		m.released++
		m.mu.Unlock()
		return nil
	}, nil
}

// memoryLikeRepository is an in-memory LikeRepository keyed by (actor, target).
type memoryLikeRepository struct {
	mu    sync.Mutex
	likes map[string]*model.Like

	createFn func(ctx context.Context, like *model.Like) error
}

func likeKey(likedBy uuid.UUID, target model.LikeTarget) string {
	return likedBy.String() + "/" + string(target.Kind) + "/" + target.ID.String()
}

func (m *memoryLikeRepository) Find(ctx context.Context, likedBy uuid.UUID, target model.LikeTarget) (*model.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if like, ok := m.likes[likeKey(likedBy, target)]; ok {
		return like, nil
	}
	return nil, repository.ErrLikeNotFound
}

func (m *memoryLikeRepository) Create(ctx context.Context, like *model.Like) error {
	if m.createFn != nil {
		return m.createFn(ctx, like)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.likes == nil {
		m.likes = make(map[string]*model.Like)
	}
	key := likeKey(like.LikedBy, like.Target())
	if _, ok := m.likes[key]; ok {
		return repository.ErrDuplicateLike
	}
	m.likes[key] = like
	return nil
}

func (m *memoryLikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, like := range m.likes {
		if like.ID == id {
			delete(m.likes, key)
			return nil
		}
	}
	return repository.ErrLikeNotFound
}

func (m *memoryLikeRepository) ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]*model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	videos := []*model.Video{}
	for _, like := range m.likes {
		if like.LikedBy == userID && like.VideoID != nil {
			videos = append(videos, &model.Video{ID: *like.VideoID})
		}
	}
	return videos, nil
}

func (m *memoryLikeRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.likes)
}

// memorySubscriptionRepository is an in-memory SubscriptionRepository.
type memorySubscriptionRepository struct {
	mu   sync.Mutex
	subs []*model.Subscription
}

func (m *memorySubscriptionRepository) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.SubscriberID == subscriberID && s.ChannelID == channelID {
			return s, nil
		}
	}
	return nil, repository.ErrSubscriptionNotFound
}

func (m *memorySubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.SubscriberID == sub.SubscriberID && s.ChannelID == sub.ChannelID {
			return repository.ErrDuplicateSubscription
		}
	}
	m.subs = append(m.subs, sub)
	return nil
}

func (m *memorySubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subs {
		if s.ID == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return nil
		}
	}
	return repository.ErrSubscriptionNotFound
}

func (m *memorySubscriptionRepository) ListByChannel(ctx context.Context, channelID uuid.UUID) ([]*model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Subscription{}
	for _, s := range m.subs {
		if s.ChannelID == channelID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memorySubscriptionRepository) ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Subscription{}
	for _, s := range m.subs {
		if s.SubscriberID == subscriberID {
			out = append(out, s)
		}
	}
	return out, nil
}

// mockCommentRepository provides a configurable mock for CommentRepository.
type mockCommentRepository struct {
	createFn        func(ctx context.Context, comment *model.Comment) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	listByVideoFn   func(ctx context.Context, videoID uuid.UUID, p model.Pagination) ([]*model.Comment, error)
	countByVideoFn  func(ctx context.Context, videoID uuid.UUID) (int64, error)
	updateContentFn func(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error)
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrCommentNotFound
}

func (m *mockCommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, p model.Pagination) ([]*model.Comment, error) {
	if m.listByVideoFn != nil {
		return m.listByVideoFn(ctx, videoID, p)
	}
	return []*model.Comment{}, nil
}

func (m *mockCommentRepository) CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error) {
	if m.countByVideoFn != nil {
		return m.countByVideoFn(ctx, videoID)
	}
	return 0, nil
}

func (m *mockCommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, id, content)
	}
	return nil, repository.ErrCommentNotFound
}

func (m *mockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockTweetRepository provides a configurable mock for TweetRepository.
type mockTweetRepository struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
}

func (m *mockTweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrTweetNotFound
}

// memoryPlaylistRepository is an in-memory PlaylistRepository.
type memoryPlaylistRepository struct {
	mu        sync.Mutex
	playlists map[uuid.UUID]*model.Playlist

	appendCalls int
}

func newMemoryPlaylistRepository(playlists ...*model.Playlist) *memoryPlaylistRepository {
	m := &memoryPlaylistRepository{playlists: make(map[uuid.UUID]*model.Playlist)}
	for _, p := range playlists {
		m.playlists[p.ID] = p
	}
	return m
}

// stored returns a copy so callers cannot alias repository state.
func (m *memoryPlaylistRepository) stored(id uuid.UUID) *model.Playlist {
	p, ok := m.playlists[id]
	if !ok {
		return nil
	}
	cp := *p
	cp.VideoIDs = append([]uuid.UUID{}, p.VideoIDs...)
	return &cp
}

func (m *memoryPlaylistRepository) Create(ctx context.Context, p *model.Playlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playlists[p.ID] = p
	return nil
}

func (m *memoryPlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.stored(id); p != nil {
		return p, nil
	}
	return nil, repository.ErrPlaylistNotFound
}

func (m *memoryPlaylistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Playlist{}
	for id, p := range m.playlists {
		if p.OwnerID == ownerID {
			out = append(out, m.stored(id))
		}
	}
	return out, nil
}

func (m *memoryPlaylistRepository) UpdateDetails(ctx context.Context, p *model.Playlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.playlists[p.ID]
	if !ok {
		return repository.ErrPlaylistNotFound
	}
	stored.Name = p.Name
	stored.Description = p.Description
	return nil
}

func (m *memoryPlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.playlists[id]; !ok {
		return repository.ErrPlaylistNotFound
	}
	delete(m.playlists, id)
	return nil
}

func (m *memoryPlaylistRepository) AppendVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendCalls++
	p, ok := m.playlists[playlistID]
	if !ok {
		return repository.ErrPlaylistNotFound
	}
	return p.AddVideo(videoID)
}

func (m *memoryPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.playlists[playlistID]
	if !ok {
		return repository.ErrPlaylistNotFound
	}
	_ = p.RemoveVideo(videoID)
	return nil
}
