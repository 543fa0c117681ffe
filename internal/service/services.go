package service

import (
	"github.com/iris/movie-favorites-api/internal/config"
	"github.com/iris/movie-favorites-api/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Share    *ShareService
	Favorite *FavoriteService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	shareService := NewShareService(repos.User)
	return &Services{
		Auth:     NewAuthService(repos.User, cfg),
		Share:    shareService,
		Favorite: NewFavoriteService(repos.Favorite, shareService),
	}
}
