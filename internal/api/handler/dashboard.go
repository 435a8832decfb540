package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/api/response"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// DashboardHandler serves the caller's own channel statistics.
type DashboardHandler struct {
	svc usecase.DashboardService
}

func NewDashboardHandler(svc usecase.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	owner, err := actorID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	stats, err := h.svc.GetChannelStats(r.Context(), owner)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Channel stats fetched successfully", ChannelStatsResponse{
		TotalSubscribers: stats.TotalSubscribers,
		TotalVideos:      stats.TotalVideos,
		TotalViews:       stats.TotalViews,
		TotalLikes:       stats.TotalLikes,
	})
}

// Videos handles GET /api/v1/dashboard/videos
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	owner, err := actorID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	videos, err := h.svc.GetChannelVideos(r.Context(), owner)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Channel videos fetched successfully", toVideoResponses(videos))
}
