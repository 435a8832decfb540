package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/api/response"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// LikeHandler handles like toggles.
type LikeHandler struct {
	svc usecase.LikeService
}

func NewLikeHandler(svc usecase.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

type toggleFunc func(ctx context.Context, actorID, targetID uuid.UUID) (*usecase.LikeResult, error)

// ToggleVideo handles POST /api/v1/likes/video/{videoID}
func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "videoID", h.svc.ToggleVideoLike)
}

// ToggleComment handles POST /api/v1/likes/comment/{commentID}
func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "commentID", h.svc.ToggleCommentLike)
}

// ToggleTweet handles POST /api/v1/likes/tweet/{tweetID}
func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "tweetID", h.svc.ToggleTweetLike)
}

// LikedVideos handles GET /api/v1/likes/videos
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	videos, err := h.svc.GetLikedVideos(r.Context(), actor)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Liked videos fetched successfully", toVideoResponses(videos))
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, param string, fn toggleFunc) {
	actor, err := actorID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	targetID, err := pathID(r, param)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	res, err := fn(r.Context(), actor, targetID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	message := "Unliked successfully"
	if res.Liked {
		message = "Liked successfully"
	}
	response.JSON(w, http.StatusOK, message, toLikeResponse(res))
}
