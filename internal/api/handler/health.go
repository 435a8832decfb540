package handler

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/hszk-dev/vidtube/internal/api/response"
)

const healthCheckTimeout = 2 * time.Second

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler runs dependency checks concurrently.
type HealthHandler struct {
	checks map[string]Checker
}

func NewHealthHandler(checks map[string]Checker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health handles GET /health. Any failing check yields 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]string, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h.checks[name](ctx); err != nil {
				results[i] = "unavailable: " + err.Error()
				return
			}
			results[i] = "ok"
		}()
	}
	wg.Wait()

	out := HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	for i, name := range names {
		out.Checks[name] = results[i]
		if results[i] != "ok" {
			out.Status = "degraded"
		}
	}

	if out.Status != "ok" {
		response.JSON(w, http.StatusServiceUnavailable, "One or more dependencies are unavailable", out)
		return
	}
	response.JSON(w, http.StatusOK, "Service is healthy", out)
}
