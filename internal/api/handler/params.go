package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/model"
)

const maxJSONBody = 1 << 20

var (
	errUnauthenticated = apperr.New(apperr.KindUnauthenticated, "authentication required")
	errInvalidJSON     = apperr.InvalidArgument("request body must be valid JSON")
)

// pathID parses the named chi URL parameter as a non-nil UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperr.InvalidArgument(name + " must be a valid UUID")
	}
	return id, nil
}

// actorID returns the authenticated caller.
func actorID(r *http.Request) (uuid.UUID, error) {
	id, ok := middleware.ActorID(r.Context())
	if !ok {
		return uuid.Nil, errUnauthenticated
	}
	return id, nil
}

// pagination reads page and limit, falling back to the defaults.
// Non-numeric values are rejected rather than defaulted.
func pagination(r *http.Request) (model.Pagination, error) {
	p := model.Pagination{Page: model.DefaultPage, Limit: model.DefaultLimit}
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, model.ErrInvalidPage
		}
		p.Page = n
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, model.ErrInvalidLimit
		}
		p.Limit = n
	}

	return p, p.Validate()
}

// decodeJSON decodes and validates a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return errInvalidJSON
	}
	return validateStruct(dst)
}
