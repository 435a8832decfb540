// Package response writes the uniform JSON envelope returned by every endpoint.
package response

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
)

// Envelope is the body of every API response.
// Status mirrors whether the HTTP code is below 400.
type Envelope struct {
	Success bool       `json:"success"`
	Status  bool       `json:"status"`
	Message string     `json:"message"`
	Data    any        `json:"data"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries the failure classification.
type ErrorBody struct {
	Kind string `json:"kind"`
}

// JSON writes a success envelope.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{
		Success: status < http.StatusBadRequest,
		Status:  status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope whose status is derived from err's kind.
// Server-side failures are logged with the full error chain.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", kind.String(),
			"error", err,
		)
	}

	Fail(w, status, kind, apperr.Message(err))
}

// Fail writes an error envelope with an explicit status and kind.
func Fail(w http.ResponseWriter, status int, kind apperr.Kind, message string) {
	write(w, status, Envelope{
		Success: false,
		Status:  status < http.StatusBadRequest,
		Message: message,
		Data:    nil,
		Error:   &ErrorBody{Kind: kind.String()},
	})
}

// StatusFor maps a failure kind onto an HTTP status code.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUploadFailed, apperr.KindStorageFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
