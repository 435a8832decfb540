package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/api/response"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// VideoForm holds the text fields of a publish or update request.
type VideoForm struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	svc    usecase.VideoService
	upload UploadConfig
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService, upload UploadConfig) *VideoHandler {
	return &VideoHandler{svc: svc, upload: upload}
}

// List handles GET /api/v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := model.NewFeedQuery()

	p, err := pagination(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	q.Pagination = p

	params := r.URL.Query()
	q.Query = params.Get("query")
	if v := params.Get("sortBy"); v != "" {
		q.SortBy = model.SortField(v)
	}
	if v := params.Get("sortType"); v != "" {
		q.SortType = model.SortDirection(v)
	}
	if v := params.Get("userId"); v != "" {
		ownerID, err := uuid.Parse(v)
		if err != nil {
			response.Error(w, r, usecase.ErrInvalidUserID)
			return
		}
		q.OwnerID = &ownerID
	}

	page, err := h.svc.ListVideos(r.Context(), q)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Videos fetched successfully", toFeedPageResponse(page))
}

// Publish handles POST /api/v1/videos
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	owner, err := actorID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := parseMultipart(w, r, h.upload); err != nil {
		response.Error(w, r, err)
		return
	}

	form := VideoForm{Title: r.FormValue("title"), Description: r.FormValue("description")}
	if err := validateStruct(&form); err != nil {
		response.Error(w, r, err)
		return
	}

	var staged stagedFiles
	defer staged.cleanup()

	videoPath, err := stageFormFile(r, "videoFile", h.upload, &staged)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	thumbPath, err := stageFormFile(r, "thumbnail", h.upload, &staged)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	video, err := h.svc.PublishVideo(r.Context(), usecase.PublishVideoInput{
		OwnerID:       owner,
		Title:         form.Title,
		Description:   form.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, "Video published successfully", toVideoResponse(video))
}

// Get handles GET /api/v1/videos/{videoID}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	video, err := h.svc.GetVideo(r.Context(), videoID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Video fetched successfully", toVideoResponse(video))
}

// Update handles PATCH /api/v1/videos/{videoID}
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := parseMultipart(w, r, h.upload); err != nil {
		response.Error(w, r, err)
		return
	}

	form := VideoForm{Title: r.FormValue("title"), Description: r.FormValue("description")}
	if err := validateStruct(&form); err != nil {
		response.Error(w, r, err)
		return
	}

	var staged stagedFiles
	defer staged.cleanup()

	thumbPath, err := stageFormFile(r, "thumbnail", h.upload, &staged)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	video, err := h.svc.UpdateVideo(r.Context(), usecase.UpdateVideoInput{
		VideoID:       videoID,
		Title:         form.Title,
		Description:   form.Description,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Video updated successfully", toVideoResponse(video))
}

// Delete handles DELETE /api/v1/videos/{videoID}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteVideo(r.Context(), videoID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Video deleted successfully", nil)
}

// TogglePublish handles PATCH /api/v1/videos/{videoID}/publish
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	video, err := h.svc.TogglePublishStatus(r.Context(), videoID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Publish status toggled successfully", toVideoResponse(video))
}

// Watch handles POST /api/v1/videos/{videoID}/watch
func (h *VideoHandler) Watch(w http.ResponseWriter, r *http.Request) {
	userID, err := actorID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	videoID, err := pathID(r, "videoID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	history, err := h.svc.AddToWatchHistory(r.Context(), userID, videoID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Watch history updated successfully", WatchHistoryResponse{
		WatchHistory: toIDStrings(history),
	})
}
