package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris/movie-favorites-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByShareToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.FavoriteMovie) error
	GetByUserAndMovie(ctx context.Context, userID uuid.UUID, tmdbMovieID int) (*domain.FavoriteMovie, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FavoriteMovie, error)
	DeleteByUserAndMovie(ctx context.Context, userID uuid.UUID, tmdbMovieID int) error
}

type Repositories struct {
	User     UserRepository
	Favorite FavoriteRepository
}
