package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

func newCommentRouter(h *CommentHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/v1/comments/{videoID}", h.List)
	r.Post("/api/v1/comments/{videoID}", h.Add)
	r.Patch("/api/v1/comments/c/{commentID}", h.Update)
	r.Delete("/api/v1/comments/c/{commentID}", h.Delete)
	return r
}

func TestCommentHandler_List(t *testing.T) {
	videoID := uuid.New()

	tests := []struct {
		name           string
		target         string
		serviceErr     error
		wantStatusCode int
		wantPage       model.Pagination
	}{
		{
			name:           "default pagination",
			target:         "/api/v1/comments/" + videoID.String(),
			wantStatusCode: http.StatusOK,
			wantPage:       model.Pagination{Page: 1, Limit: 10},
		},
		{
			name:           "explicit pagination",
			target:         "/api/v1/comments/" + videoID.String() + "?page=3&limit=20",
			wantStatusCode: http.StatusOK,
			wantPage:       model.Pagination{Page: 3, Limit: 20},
		},
		{
			name:           "negative page",
			target:         "/api/v1/comments/" + videoID.String() + "?page=-1",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "page with overflowing offset",
			target:         "/api/v1/comments/" + videoID.String() + "?page=4611686018427387904&limit=100",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid video ID",
			target:         "/api/v1/comments/abc",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "video not found",
			target:         "/api/v1/comments/" + videoID.String(),
			serviceErr:     repository.ErrVideoNotFound,
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockCommentService{
				listFn: func(ctx context.Context, vid uuid.UUID, p model.Pagination) (*model.CommentPage, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					if vid != videoID || p != tt.wantPage {
						t.Errorf("ListVideoComments(%s, %+v), want %+v", vid, p, tt.wantPage)
					}
					c, _ := model.NewComment(vid, uuid.New(), "nice")
					return &model.CommentPage{
						Comments:   []*model.Comment{c},
						Page:       p.Page,
						Limit:      p.Limit,
						Total:      21,
						TotalPages: model.TotalPages(21, p.Limit),
					}, nil
				},
			}

			rec := httptest.NewRecorder()
			newCommentRouter(NewCommentHandler(mock)).ServeHTTP(rec, newRequest(http.MethodGet, tt.target, nil, uuid.New()))

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var page CommentPageResponse
			decodeData(t, rec.Body.Bytes(), &page)
			if len(page.Comments) != 1 || page.Total != 21 || page.Page != tt.wantPage.Page {
				t.Errorf("page = %+v", page)
			}
		})
	}
}

func TestCommentHandler_Add(t *testing.T) {
	videoID := uuid.New()
	ownerID := uuid.New()

	tests := []struct {
		name           string
		actor          uuid.UUID
		body           string
		wantStatusCode int
		wantKind       string
	}{
		{name: "added", actor: ownerID, body: `{"content":"great video"}`, wantStatusCode: http.StatusCreated},
		{name: "unauthenticated", actor: uuid.Nil, body: `{"content":"x"}`, wantStatusCode: http.StatusUnauthorized, wantKind: "Unauthenticated"},
		{name: "empty content", actor: ownerID, body: `{"content":""}`, wantStatusCode: http.StatusBadRequest, wantKind: "InvalidArgument"},
		{name: "malformed JSON", actor: ownerID, body: `{"content":`, wantStatusCode: http.StatusBadRequest, wantKind: "InvalidArgument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &mockCommentService{
				addFn: func(ctx context.Context, vid, owner uuid.UUID, content string) (*model.Comment, error) {
					called = true
					if vid != videoID || owner != ownerID || content != "great video" {
						t.Errorf("AddComment(%s, %s, %q)", vid, owner, content)
					}
					return model.NewComment(vid, owner, content)
				},
			}

			rec := httptest.NewRecorder()
			newCommentRouter(NewCommentHandler(mock)).ServeHTTP(rec,
				newRequest(http.MethodPost, "/api/v1/comments/"+videoID.String(), strings.NewReader(tt.body), tt.actor))

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if tt.wantKind != "" {
				wantErrorKind(t, rec.Body.Bytes(), tt.wantKind)
				if called {
					t.Error("service called for rejected request")
				}
				return
			}

			var got CommentResponse
			decodeData(t, rec.Body.Bytes(), &got)
			if got.Content != "great video" || got.OwnerID != ownerID.String() {
				t.Errorf("comment = %+v", got)
			}
		})
	}
}

func TestCommentHandler_UpdateAndDelete(t *testing.T) {
	commentID := uuid.New()

	t.Run("update", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newCommentRouter(NewCommentHandler(&mockCommentService{})).ServeHTTP(rec,
			newRequest(http.MethodPatch, "/api/v1/comments/c/"+commentID.String(), strings.NewReader(`{"content":"edited"}`), uuid.New()))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var got CommentResponse
		decodeData(t, rec.Body.Bytes(), &got)
		if got.ID != commentID.String() || got.Content != "edited" {
			t.Errorf("comment = %+v", got)
		}
	})

	t.Run("update missing comment", func(t *testing.T) {
		mock := &mockCommentService{
			updateFn: func(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
				return nil, repository.ErrCommentNotFound
			},
		}
		rec := httptest.NewRecorder()
		newCommentRouter(NewCommentHandler(mock)).ServeHTTP(rec,
			newRequest(http.MethodPatch, "/api/v1/comments/c/"+commentID.String(), strings.NewReader(`{"content":"edited"}`), uuid.New()))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		var deleted uuid.UUID
		mock := &mockCommentService{
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				deleted = id
				return nil
			},
		}
		rec := httptest.NewRecorder()
		newCommentRouter(NewCommentHandler(mock)).ServeHTTP(rec,
			newRequest(http.MethodDelete, "/api/v1/comments/c/"+commentID.String(), nil, uuid.New()))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if deleted != commentID {
			t.Errorf("deleted %s, want %s", deleted, commentID)
		}
	})
}
