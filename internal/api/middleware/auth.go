package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/iris/movie-favorites-api/internal/domain"
	"github.com/iris/movie-favorites-api/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth resolves the bearer token on each request to a user and stores it in
// the request context. Every failure mode (missing header, malformed token,
// bad signature, expired token, user deleted after issuance) produces the same
// 401 response so callers cannot tell them apart.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w)
				return
			}

			username, err := authService.ValidateToken(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				unauthorized(w)
				return
			}

			user, err := authService.GetUserByUsername(r.Context(), username)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] user lookup failed: %v", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
