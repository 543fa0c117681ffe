package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iris/movie-favorites-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TokenResponse matches the login endpoint response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// BuildAndAuthenticate registers the user via the API, logs in, and returns
// the created user and a valid access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/users/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected register status %d: %s", resp.StatusCode, raw)
	}

	form := url.Values{}
	form.Set("username", b.username)
	form.Set("password", b.password)

	loginResp, err := http.Post(ts.APIURL("/users/token"), "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer loginResp.Body.Close()

	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status: %d", loginResp.StatusCode)
	}

	var token TokenResponse
	if err := json.NewDecoder(loginResp.Body).Decode(&token); err != nil {
		t.Fatalf("failed to decode token response: %v", err)
	}

	var user domain.User
	if err := ts.DB.DB.First(&user, "username = ?", b.username).Error; err != nil {
		t.Fatalf("failed to load created user: %v", err)
	}

	return &user, token.AccessToken
}

// FavoriteBuilder creates favorite movie rows for tests
type FavoriteBuilder struct {
	userID      uuid.UUID
	tmdbMovieID int
	title       string
	posterPath  *string
}

func NewFavoriteBuilder(userID uuid.UUID) *FavoriteBuilder {
	return &FavoriteBuilder{
		userID:      userID,
		tmdbMovieID: 550,
		title:       "Fight Club",
	}
}

func (b *FavoriteBuilder) WithMovie(tmdbMovieID int, title string) *FavoriteBuilder {
	b.tmdbMovieID = tmdbMovieID
	b.title = title
	return b
}

func (b *FavoriteBuilder) WithPosterPath(path string) *FavoriteBuilder {
	b.posterPath = &path
	return b
}

func (b *FavoriteBuilder) Build(t *testing.T, db *gorm.DB) *domain.FavoriteMovie {
	t.Helper()

	favorite := &domain.FavoriteMovie{
		ID:              uuid.New(),
		UserID:          b.userID,
		TMDBMovieID:     b.tmdbMovieID,
		MovieTitle:      b.title,
		MoviePosterPath: b.posterPath,
		AddedAt:         time.Now(),
	}

	if err := db.Create(favorite).Error; err != nil {
		t.Fatalf("failed to create favorite: %v", err)
	}

	return favorite
}

// DoRequest performs an HTTP request with an optional bearer token and JSON body
func DoRequest(t *testing.T, method, rawURL, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, rawURL, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	return resp
}
