package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/iris/movie-favorites-api/internal/domain"
	"github.com/iris/movie-favorites-api/internal/repository"
	"gorm.io/gorm"
)

// shareTokenBytes gives 192 bits of entropy; collisions are a DB-constraint
// concern, not a realistic event.
const (
	shareTokenBytes    = 24
	shareTokenAttempts = 5
)

type ShareService struct {
	userRepo repository.UserRepository
}

func NewShareService(userRepo repository.UserRepository) *ShareService {
	return &ShareService{userRepo: userRepo}
}

// EnsureShareToken returns the user's share token, generating and persisting
// one if none is set. Calling it again returns the same token.
func (s *ShareService) EnsureShareToken(ctx context.Context, user *domain.User) (string, error) {
	if user.ShareToken != nil && *user.ShareToken != "" {
		return *user.ShareToken, nil
	}

	for attempt := 0; attempt < shareTokenAttempts; attempt++ {
		token, err := generateShareToken()
		if err != nil {
			return "", err
		}

		// Uniqueness check; the unique index on share_token backstops races
		_, err = s.userRepo.GetByShareToken(ctx, token)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}

		user.ShareToken = &token
		if err := s.userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				user.ShareToken = nil
				continue
			}
			return "", err
		}
		return token, nil
	}

	return "", fmt.Errorf("failed to generate a unique share token after %d attempts", shareTokenAttempts)
}

// RevokeShareToken clears the user's share token. Returns ErrNoShareToken when
// there is nothing to revoke.
func (s *ShareService) RevokeShareToken(ctx context.Context, user *domain.User) error {
	if user.ShareToken == nil || *user.ShareToken == "" {
		return domain.ErrNoShareToken
	}

	user.ShareToken = nil
	return s.userRepo.Update(ctx, user)
}

// ResolveShareToken maps a share token to its owning user. This lookup is the
// sole gate on the public favorites read path.
func (s *ShareService) ResolveShareToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrShareTokenNotFound
	}

	user, err := s.userRepo.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShareTokenNotFound
		}
		return nil, err
	}
	return user, nil
}

func generateShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
