package domain

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteMovie is owned exclusively by the user it references; rows are
// removed together with the user.
type FavoriteMovie struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_movie"`
	User            *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TMDBMovieID     int       `json:"tmdbMovieId" gorm:"column:tmdb_movie_id;not null;uniqueIndex:idx_user_movie"`
	MovieTitle      string    `json:"movieTitle" gorm:"not null"`
	MoviePosterPath *string   `json:"moviePosterPath"`
	AddedAt         time.Time `json:"addedAt"`
}
