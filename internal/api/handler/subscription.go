package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/api/response"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// SubscriptionHandler handles channel subscriptions.
type SubscriptionHandler struct {
	svc usecase.SubscriptionService
}

func NewSubscriptionHandler(svc usecase.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Toggle handles POST /api/v1/subscriptions/c/{channelID}
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	subscriber, err := actorID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	channelID, err := pathID(r, "channelID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	res, err := h.svc.Toggle(r.Context(), subscriber, channelID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := ToggleSubscriptionResponse{Subscribed: res.Subscribed}
	message := "Unsubscribed successfully"
	if res.Subscribed {
		message = "Subscribed successfully"
	}
	if res.Subscription != nil {
		sub := toSubscriptionResponse(res.Subscription)
		out.Subscription = &sub
	}

	response.JSON(w, http.StatusOK, message, out)
}

// Subscribers handles GET /api/v1/subscriptions/c/{channelID}
func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "channelID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	subs, err := h.svc.ListSubscribers(r.Context(), channelID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Subscribers fetched successfully", toSubscriptionResponses(subs))
}

// SubscribedChannels handles GET /api/v1/subscriptions/u/{subscriberID}
func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := pathID(r, "subscriberID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	subs, err := h.svc.ListSubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, "Subscribed channels fetched successfully", toSubscriptionResponses(subs))
}
