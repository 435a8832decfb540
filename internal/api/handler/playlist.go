package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/api/response"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type CreatePlaylistRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

// UpdatePlaylistRequest leaves empty fields unchanged.
type UpdatePlaylistRequest struct {
	Name        string `json:"name" validate:"max=255"`
	Description string `json:"description"`
}

// PlaylistHandler handles playlist CRUD and membership.
type PlaylistHandler struct {
	svc usecase.PlaylistService
}

func NewPlaylistHandler(svc usecase.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

// Create handles POST /api/v1/playlists
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, err := actorID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req CreatePlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	playlist, err := h.svc.Create(r.Context(), owner, req.Name, req.Description)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, "Playlist created successfully", toPlaylistResponse(playlist))
}

// ListByUser handles GET /api/v1/playlists/user/{userID}
func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	details, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]PlaylistDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toPlaylistDetailResponse(d))
	}

	response.JSON(w, http.StatusOK, "Playlists fetched successfully", out)
}

// Get handles GET /api/v1/playlists/{playlistID}
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	detail, err := h.svc.Get(r.Context(), playlistID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Playlist fetched successfully", toPlaylistDetailResponse(detail))
}

// Update handles PATCH /api/v1/playlists/{playlistID}
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req UpdatePlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	playlist, err := h.svc.Update(r.Context(), playlistID, req.Name, req.Description)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Playlist updated successfully", toPlaylistResponse(playlist))
}

// Delete handles DELETE /api/v1/playlists/{playlistID}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), playlistID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Playlist deleted successfully", nil)
}

// AddVideo handles POST /api/v1/playlists/{playlistID}/videos/{videoID}
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistID")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	playlist, err := h.svc.AddVideo(r.Context(), playlistID, videoID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Video added to playlist successfully", toPlaylistResponse(playlist))
}

// RemoveVideo handles DELETE /api/v1/playlists/{playlistID}/videos/{videoID}
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistID")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	playlist, err := h.svc.RemoveVideo(r.Context(), playlistID, videoID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Video removed from playlist successfully", toPlaylistResponse(playlist))
}
