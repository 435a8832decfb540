package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/api/response"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// CommentHandler handles comment-related HTTP requests.
type CommentHandler struct {
	svc usecase.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc usecase.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List handles GET /api/v1/comments/{videoID}
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	p, err := pagination(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	page, err := h.svc.ListVideoComments(r.Context(), videoID, p)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Comments fetched successfully", toCommentPageResponse(page))
}

// Add handles POST /api/v1/comments/{videoID}
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	owner, err := actorID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	videoID, err := pathID(r, "videoID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	comment, err := h.svc.AddComment(r.Context(), videoID, owner, req.Content)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, "Comment added successfully", toCommentResponse(comment))
}

// Update handles PATCH /api/v1/comments/c/{commentID}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "commentID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	comment, err := h.svc.UpdateComment(r.Context(), commentID, req.Content)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Comment updated successfully", toCommentResponse(comment))
}

// Delete handles DELETE /api/v1/comments/c/{commentID}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "commentID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), commentID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Comment deleted successfully", nil)
}
