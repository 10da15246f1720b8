package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bfarias-dev/movienotes/internal/service"
)

// MovieHandler exposes the movie-notes catalog over HTTP. Every route that
// mutates or reads a single movie carries the requesting user's id in the
// path; the service layer decides what that user may do with it.
type MovieHandler struct {
	movies *service.MovieService
	logger *slog.Logger
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(movies *service.MovieService, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{movies: movies, logger: logger}
}

// HandleList returns the owner's movies with tags attached.
//
// HTTP: GET /movies?user_id=1&title=matrix&tags=sci-fi,90s
//
// user_id is required; title narrows by substring; tags is a
// comma-separated set of which at least one must match.
func (h *MovieHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	title := r.URL.Query().Get("title")

	var tags []string
	if rawTags := r.URL.Query().Get("tags"); rawTags != "" {
		tags = strings.Split(rawTags, ",")
	}

	movies, err := h.movies.List(r.Context(), userID, title, tags)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movies)
}

// HandleGet returns one movie with its tags.
//
// HTTP: GET /movies/{id}/{user_id}
func (h *MovieHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	movie, err := h.movies.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

// createMovieRequest mirrors the inbound body of a new movie note. Rating
// is a pointer so "absent" is reported as a missing field rather than
// validated as zero.
type createMovieRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Rating      *int     `json:"rating"`
	Tags        []string `json:"tags"`
}

// HandleCreate stores a new movie note with its tags.
//
// HTTP: POST /movies/{user_id}
// BODY: {"title": "...", "description": "...", "rating": 5, "tags": ["sci-fi"]}
//
// Responds 201 with an empty body on success.
func (h *MovieHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req createMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid movie JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status:  "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	if _, err := h.movies.Create(r.Context(), userID, service.CreateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
		Tags:        req.Tags,
	}); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// updateMovieRequest uses pointers so an absent field resolves to the
// current stored value.
type updateMovieRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Rating      *int    `json:"rating"`
}

// HandleUpdate merges the supplied fields into an owned movie.
//
// HTTP: PUT /movies/{id}/{user_id}
func (h *MovieHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid movie JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status:  "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	movie, err := h.movies.Update(r.Context(), id, userID, service.UpdateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

// HandleDelete removes an owned movie and all its tags.
//
// HTTP: DELETE /movies/{id}/{user_id}
func (h *MovieHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.movies.Delete(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
