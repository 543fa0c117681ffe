package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/iris/movie-favorites-api/internal/api/middleware"
	"github.com/iris/movie-favorites-api/internal/config"
	"github.com/iris/movie-favorites-api/internal/domain"
	"github.com/iris/movie-favorites-api/internal/service"
)

type ShareHandler struct {
	shareService *service.ShareService
	cfg          *config.Config
}

func NewShareHandler(shareService *service.ShareService, cfg *config.Config) *ShareHandler {
	return &ShareHandler{shareService: shareService, cfg: cfg}
}

type ShareTokenResponse struct {
	ShareToken string `json:"share_token"`
	ShareURL   string `json:"share_url"`
}

// Issue returns the caller's share token, creating one if necessary.
// Repeated calls return the same token.
func (h *ShareHandler) Issue(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.shareService.EnsureShareToken(r.Context(), user)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ShareTokenResponse{
		ShareToken: token,
		ShareURL:   fmt.Sprintf("%s/api/v1/favorites/shared/%s", h.cfg.PublicBaseURL, token),
	})
}

func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	if err := h.shareService.RevokeShareToken(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrNoShareToken) {
			http.Error(w, "No share token to revoke", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
