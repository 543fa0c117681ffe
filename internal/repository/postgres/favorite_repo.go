package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris/movie-favorites-api/internal/domain"
	"gorm.io/gorm"
)

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *favoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.FavoriteMovie) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepository) GetByUserAndMovie(ctx context.Context, userID uuid.UUID, tmdbMovieID int) (*domain.FavoriteMovie, error) {
	var favorite domain.FavoriteMovie
	err := r.db.WithContext(ctx).
		First(&favorite, "user_id = ? AND tmdb_movie_id = ?", userID, tmdbMovieID).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FavoriteMovie, error) {
	var favorites []*domain.FavoriteMovie
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) DeleteByUserAndMovie(ctx context.Context, userID uuid.UUID, tmdbMovieID int) error {
	result := r.db.WithContext(ctx).
		Delete(&domain.FavoriteMovie{}, "user_id = ? AND tmdb_movie_id = ?", userID, tmdbMovieID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
