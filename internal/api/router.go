package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iris/movie-favorites-api/internal/api/handlers"
	"github.com/iris/movie-favorites-api/internal/api/middleware"
	"github.com/iris/movie-favorites-api/internal/config"
	"github.com/iris/movie-favorites-api/internal/service"
	"github.com/iris/movie-favorites-api/internal/tmdb"
)

func NewRouter(services *service.Services, tmdbClient *tmdb.Client, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	favoritesHandler := handlers.NewFavoritesHandler(services.Favorite)
	shareHandler := handlers.NewShareHandler(services.Share, cfg)
	tmdbHandler := handlers.NewTMDBHandler(tmdbClient)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public
			r.Post("/register", authHandler.Register)
			r.Post("/token", authHandler.Token)

			// Protected
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/me/share-token", shareHandler.Issue)
				r.Delete("/me/share-token", shareHandler.Revoke)
			})
		})

		r.Route("/favorites", func(r chi.Router) {
			// Share-token access bypasses bearer auth and is read-only
			r.Get("/shared/{shareToken}", favoritesHandler.ListShared)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", favoritesHandler.Add)
				r.Get("/", favoritesHandler.List)
				r.Delete("/{tmdbMovieID}", favoritesHandler.Remove)
			})
		})

		// TMDB proxy routes
		r.Route("/tmdb", func(r chi.Router) {
			r.Get("/search", tmdbHandler.Search)
			r.Route("/movie/{movieID}", func(r chi.Router) {
				r.Get("/", tmdbHandler.MovieDetails)
				r.Get("/credits", tmdbHandler.MovieCredits)
				r.Get("/videos", tmdbHandler.MovieVideos)
				r.Get("/images", tmdbHandler.MovieImages)
				r.Get("/recommendations", tmdbHandler.MovieRecommendations)
				r.Get("/similar", tmdbHandler.MovieSimilar)
				r.Get("/reviews", tmdbHandler.MovieReviews)
			})
		})
	})

	return r
}
