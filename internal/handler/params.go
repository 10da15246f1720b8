package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bfarias-dev/movienotes/internal/apperror"
)

// pathID extracts a numeric path parameter. Identifiers travel the wire as
// path segments; parsing them here means every downstream ownership check
// compares int64 with int64.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, apperror.MissingField(name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed(name, "the "+name+" must be a number")
	}
	return id, nil
}

// queryID extracts a numeric query parameter with the same rules.
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperror.MissingField(name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed(name, "the "+name+" must be a number")
	}
	return id, nil
}
