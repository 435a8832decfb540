package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

func newLikeRouter(h *LikeHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/v1/likes/video/{videoID}", h.ToggleVideo)
	r.Post("/api/v1/likes/comment/{commentID}", h.ToggleComment)
	r.Post("/api/v1/likes/tweet/{tweetID}", h.ToggleTweet)
	r.Get("/api/v1/likes/videos", h.LikedVideos)
	return r
}

func TestLikeHandler_Toggle(t *testing.T) {
	actor := uuid.New()
	target := uuid.New()

	tests := []struct {
		name           string
		path           string
		wantKind       model.LikeTargetKind
		liked          bool
		serviceErr     error
		wantStatusCode int
		wantMessage    string
	}{
		{name: "like video", path: "video", wantKind: model.LikeTargetVideo, liked: true, wantStatusCode: http.StatusOK, wantMessage: "Liked successfully"},
		{name: "unlike video", path: "video", wantKind: model.LikeTargetVideo, liked: false, wantStatusCode: http.StatusOK, wantMessage: "Unliked successfully"},
		{name: "like comment", path: "comment", wantKind: model.LikeTargetComment, liked: true, wantStatusCode: http.StatusOK, wantMessage: "Liked successfully"},
		{name: "like tweet", path: "tweet", wantKind: model.LikeTargetTweet, liked: true, wantStatusCode: http.StatusOK, wantMessage: "Liked successfully"},
		{
			name:           "missing tweet",
			path:           "tweet",
			wantKind:       model.LikeTargetTweet,
			serviceErr:     repository.ErrTweetNotFound,
			wantStatusCode: http.StatusNotFound,
			wantMessage:    "tweet not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockLikeService{
				toggleFn: func(ctx context.Context, kind model.LikeTargetKind, a, id uuid.UUID) (*usecase.LikeResult, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					if kind != tt.wantKind || a != actor || id != target {
						t.Errorf("toggle(%s, %s, %s)", kind, a, id)
					}
					if !tt.liked {
						return &usecase.LikeResult{Liked: false}, nil
					}
					like, err := model.NewLike(a, model.LikeTarget{Kind: kind, ID: id})
					return &usecase.LikeResult{Like: like, Liked: true}, err
				},
			}

			rec := httptest.NewRecorder()
			newLikeRouter(NewLikeHandler(mock)).ServeHTTP(rec,
				newRequest(http.MethodPost, "/api/v1/likes/"+tt.path+"/"+target.String(), nil, actor))

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
			if env := decodeEnvelope(t, rec.Body.Bytes()); env.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", env.Message, tt.wantMessage)
			}
			if tt.serviceErr != nil {
				return
			}

			var got LikeResponse
			decodeData(t, rec.Body.Bytes(), &got)
			if got.Liked != tt.liked {
				t.Errorf("liked = %v, want %v", got.Liked, tt.liked)
			}
			if tt.liked {
				var targetField *string
				switch tt.wantKind {
				case model.LikeTargetVideo:
					targetField = got.VideoID
				case model.LikeTargetComment:
					targetField = got.CommentID
				case model.LikeTargetTweet:
					targetField = got.TweetID
				}
				if targetField == nil || *targetField != target.String() {
					t.Errorf("target field = %v, want %s", targetField, target)
				}
			}
		})
	}
}

func TestLikeHandler_Toggle_RequiresAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	newLikeRouter(NewLikeHandler(&mockLikeService{})).ServeHTTP(rec,
		newRequest(http.MethodPost, "/api/v1/likes/video/"+uuid.NewString(), nil, uuid.Nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	wantErrorKind(t, rec.Body.Bytes(), "Unauthenticated")
}

func TestLikeHandler_LikedVideos(t *testing.T) {
	actor := uuid.New()
	first := sampleVideo(uuid.New())
	second := sampleVideo(uuid.New())

	mock := &mockLikeService{
		likedVideosFn: func(ctx context.Context, a uuid.UUID) ([]*model.Video, error) {
			if a != actor {
				t.Errorf("GetLikedVideos(%s), want %s", a, actor)
			}
			return []*model.Video{first, second}, nil
		},
	}

	rec := httptest.NewRecorder()
	newLikeRouter(NewLikeHandler(mock)).ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/likes/videos", nil, actor))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []VideoResponse
	decodeData(t, rec.Body.Bytes(), &got)
	if len(got) != 2 || got[0].ID != first.ID.String() || got[1].ID != second.ID.String() {
		t.Errorf("videos = %+v", got)
	}
}
