package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/iris/movie-favorites-api/internal/tmdb"
)

type TMDBHandler struct {
	client *tmdb.Client
}

func NewTMDBHandler(client *tmdb.Client) *TMDBHandler {
	return &TMDBHandler{client: client}
}

func (h *TMDBHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "Query parameter is required", http.StatusBadRequest)
		return
	}

	result, err := h.client.SearchMovies(r.Context(), query, pageParam(r))
	if err != nil {
		upstreamError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *TMDBHandler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.client.MovieDetails(r.Context(), movieID, r.URL.Query().Get("append_to_response"))
	if err != nil {
		upstreamError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *TMDBHandler) MovieCredits(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.client.MovieCredits(r.Context(), movieID)
	if err != nil {
		upstreamError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *TMDBHandler) MovieVideos(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.client.MovieVideos(r.Context(), movieID)
	if err != nil {
		upstreamError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *TMDBHandler) MovieImages(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.client.MovieImages(r.Context(), movieID)
	if err != nil {
		upstreamError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *TMDBHandler) MovieRecommendations(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.client.MovieRecommendations(r.Context(), movieID, pageParam(r))
	if err != nil {
		upstreamError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *TMDBHandler) MovieSimilar(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.client.MovieSimilar(r.Context(), movieID, pageParam(r))
	if err != nil {
		upstreamError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *TMDBHandler) MovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.client.MovieReviews(r.Context(), movieID, pageParam(r))
	if err != nil {
		upstreamError(w, err)
		return
	}

	writeJSON(w, result)
}

func movieIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieID"))
	if err != nil || movieID < 0 {
		http.Error(w, "Invalid movie ID", http.StatusBadRequest)
		return 0, false
	}
	return movieID, true
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Upstream failures surface as 500 with the upstream message attached,
// unretried.
func upstreamError(w http.ResponseWriter, err error) {
	log.Printf("ERROR [handlers.TMDB] %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, result json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(result)
}
