package domain

import "errors"

// Account errors
var (
	ErrUsernameExists     = errors.New("username already registered")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Favorites errors
var (
	ErrDuplicateFavorite = errors.New("movie already in favorites")
	ErrFavoriteNotFound  = errors.New("movie not in favorites")
)

// Share-link errors
var (
	ErrNoShareToken       = errors.New("no share token set")
	ErrShareTokenNotFound = errors.New("invalid or expired share link")
)
