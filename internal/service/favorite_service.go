package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/iris/movie-favorites-api/internal/domain"
	"github.com/iris/movie-favorites-api/internal/repository"
	"gorm.io/gorm"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	shareService *ShareService
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, shareService *ShareService) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		shareService: shareService,
	}
}

type AddFavoriteInput struct {
	TMDBMovieID     int
	MovieTitle      string
	MoviePosterPath *string
}

func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, input AddFavoriteInput) (*domain.FavoriteMovie, error) {
	if _, err := s.favoriteRepo.GetByUserAndMovie(ctx, userID, input.TMDBMovieID); err == nil {
		return nil, domain.ErrDuplicateFavorite
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	favorite := &domain.FavoriteMovie{
		ID:              uuid.New(),
		UserID:          userID,
		TMDBMovieID:     input.TMDBMovieID,
		MovieTitle:      input.MovieTitle,
		MoviePosterPath: input.MoviePosterPath,
		AddedAt:         time.Now(),
	}

	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		// Composite unique index decides concurrent duplicate adds
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateFavorite
		}
		return nil, err
	}

	return favorite, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID uuid.UUID, tmdbMovieID int) error {
	err := s.favoriteRepo.DeleteByUserAndMovie(ctx, userID, tmdbMovieID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrFavoriteNotFound
	}
	return err
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]*domain.FavoriteMovie, error) {
	return s.favoriteRepo.ListByUser(ctx, userID)
}

// ListShared resolves a share token and returns the owning user's favorites.
// Same read path as List, scoped by the token instead of an authenticated
// principal.
func (s *FavoriteService) ListShared(ctx context.Context, shareToken string) ([]*domain.FavoriteMovie, error) {
	user, err := s.shareService.ResolveShareToken(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	return s.favoriteRepo.ListByUser(ctx, user.ID)
}
