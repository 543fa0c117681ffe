package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/iris/movie-favorites-api/internal/api/middleware"
	"github.com/iris/movie-favorites-api/internal/domain"
	"github.com/iris/movie-favorites-api/internal/service"
)

type FavoritesHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoritesHandler(favoriteService *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favoriteService: favoriteService}
}

type AddFavoriteRequest struct {
	TMDBMovieID     int     `json:"tmdbMovieId"`
	MovieTitle      string  `json:"movieTitle"`
	MoviePosterPath *string `json:"moviePosterPath"`
}

type FavoriteResponse struct {
	ID              string    `json:"id"`
	TMDBMovieID     int       `json:"tmdbMovieId"`
	MovieTitle      string    `json:"movieTitle"`
	MoviePosterPath *string   `json:"moviePosterPath"`
	AddedAt         time.Time `json:"addedAt"`
}

func toFavoriteResponse(favorite *domain.FavoriteMovie) FavoriteResponse {
	return FavoriteResponse{
		ID:              favorite.ID.String(),
		TMDBMovieID:     favorite.TMDBMovieID,
		MovieTitle:      favorite.MovieTitle,
		MoviePosterPath: favorite.MoviePosterPath,
		AddedAt:         favorite.AddedAt,
	}
}

func toFavoriteResponses(favorites []*domain.FavoriteMovie) []FavoriteResponse {
	responses := make([]FavoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		responses = append(responses, toFavoriteResponse(favorite))
	}
	return responses
}

func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.TMDBMovieID <= 0 || req.MovieTitle == "" {
		http.Error(w, "Movie ID and title are required", http.StatusBadRequest)
		return
	}

	favorite, err := h.favoriteService.Add(r.Context(), user.ID, service.AddFavoriteInput{
		TMDBMovieID:     req.TMDBMovieID,
		MovieTitle:      req.MovieTitle,
		MoviePosterPath: req.MoviePosterPath,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateFavorite) {
			http.Error(w, "Movie already in favorites", http.StatusConflict)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toFavoriteResponse(favorite))
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	favorites, err := h.favoriteService.List(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toFavoriteResponses(favorites))
}

func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	tmdbMovieID, err := strconv.Atoi(chi.URLParam(r, "tmdbMovieID"))
	if err != nil {
		http.Error(w, "Invalid movie ID", http.StatusBadRequest)
		return
	}

	if err := h.favoriteService.Remove(r.Context(), user.ID, tmdbMovieID); err != nil {
		if errors.Is(err, domain.ErrFavoriteNotFound) {
			http.Error(w, "Movie not in favorites", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListShared serves a user's favorites to anyone holding their share token.
// No Authorization header is consulted on this path.
func (h *FavoritesHandler) ListShared(w http.ResponseWriter, r *http.Request) {
	shareToken := chi.URLParam(r, "shareToken")

	favorites, err := h.favoriteService.ListShared(r.Context(), shareToken)
	if err != nil {
		if errors.Is(err, domain.ErrShareTokenNotFound) {
			http.Error(w, "Invalid or expired share link", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toFavoriteResponses(favorites))
}
