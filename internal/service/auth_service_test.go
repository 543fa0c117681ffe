package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iris/movie-favorites-api/internal/domain"
	"github.com/iris/movie-favorites-api/internal/repository/postgres"
	"github.com/iris/movie-favorites-api/internal/service"
	"github.com/iris/movie-favorites-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.RegisterInput
		setup   func()
		wantErr error
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Username: "newuser",
				Email:    "newuser@example.com",
				Password: "password123",
			},
		},
		{
			name: "duplicate username",
			input: service.RegisterInput{
				Username: "existinguser",
				Email:    "other@example.com",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existinguser").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrUsernameExists,
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				Username: "freshuser",
				Email:    "taken@example.com",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			user, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Username, user.Username)
			assert.Equal(t, tt.input.Email, user.Email)
			assert.NotEmpty(t, user.PasswordHash)
			assert.NotEqual(t, tt.input.Password, user.PasswordHash)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "successful authentication",
			username: user.Username,
			password: rawPassword,
		},
		{
			name:     "wrong password",
			username: user.Username,
			password: "wrongpassword",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name:     "non-existent user",
			username: "nonexistent",
			password: "anypassword",
			wantErr:  domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authService.Authenticate(ctx, tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})
	}
}

func TestAuthService_PasswordHashing(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(repos.User, testutil.TestConfig())

	hash, err := authService.HashPassword("pw123")
	require.NoError(t, err)

	assert.True(t, authService.VerifyPassword("pw123", hash))
	assert.False(t, authService.VerifyPassword("pw124", hash))

	otherHash, err := authService.HashPassword("otherpassword")
	require.NoError(t, err)
	assert.False(t, authService.VerifyPassword("pw123", otherHash))
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)

	token, err := authService.CreateAccessToken("alice", 30*time.Minute)
	require.NoError(t, err)

	subject, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)

	signedWith := func(method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	validToken, err := authService.CreateAccessToken("alice", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "malformed encoding",
			token: "not.a.token",
		},
		{
			name:  "tampered payload",
			token: validToken[:len(validToken)-4] + "AAAA",
		},
		{
			name: "wrong secret",
			token: signedWith(jwt.SigningMethodHS256, []byte("some-other-secret"), jwt.MapClaims{
				"sub": "alice",
				"exp": time.Now().Add(time.Minute).Unix(),
			}),
		},
		{
			name: "unsigned token",
			token: signedWith(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{
				"sub": "alice",
				"exp": time.Now().Add(time.Minute).Unix(),
			}),
		},
		{
			name: "expired token",
			token: signedWith(jwt.SigningMethodHS256, []byte(cfg.SecretKey), jwt.MapClaims{
				"sub": "alice",
				"exp": time.Now().Add(-time.Minute).Unix(),
			}),
		},
		{
			name: "missing subject",
			token: signedWith(jwt.SigningMethodHS256, []byte(cfg.SecretKey), jwt.MapClaims{
				"exp": time.Now().Add(time.Minute).Unix(),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.ValidateToken(tt.token)
			// Every failure collapses into the same error
			assert.ErrorIs(t, err, service.ErrInvalidToken)
		})
	}
}
