package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/devconnect/backend/internal/config"
	"github.com/devconnect/backend/internal/database"
	"github.com/devconnect/backend/internal/handlers"
	appMiddleware "github.com/devconnect/backend/internal/middleware"
	"github.com/devconnect/backend/internal/services"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)

	// Services
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)
	userService := services.NewMongoUserService(ctx, db)
	postService := services.NewMongoPostService(db)
	profileService := services.NewMongoProfileService(ctx, db)
	accountService := services.NewMongoAccountService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, tokenService, logger)
	postHandler := handlers.NewPostHandler(postService, logger)
	profileHandler := handlers.NewProfileHandler(profileService, accountService, logger)

	authenticated := appMiddleware.Authenticated(tokenService)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(appMiddleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", authHandler.Register)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/", authHandler.Login)
			r.With(authenticated).Get("/", authHandler.CurrentUser)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(authenticated)

			r.Post("/", postHandler.Create)
			r.Get("/", postHandler.List)
			r.Get("/{id}", postHandler.Get)
			r.Delete("/{id}", postHandler.Delete)
			r.Put("/like/{id}", postHandler.Like)
			r.Put("/unlike/{id}", postHandler.Unlike)
			r.Put("/comment/{id}", postHandler.AddComment)
			r.Put("/comment/{id}/{comment_id}", postHandler.RemoveComment)
		})

		r.Route("/profile", func(r chi.Router) {
			// Public reads
			r.Get("/", profileHandler.List)
			r.Get("/user/{user_id}", profileHandler.GetByUserID)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(authenticated)

				r.Get("/me", profileHandler.Me)
				r.Post("/", profileHandler.Upsert)
				r.Delete("/", profileHandler.DeleteAccount)
				r.Put("/experience", profileHandler.AddExperience)
				r.Delete("/experience/{exp_id}", profileHandler.RemoveExperience)
				r.Put("/education", profileHandler.AddEducation)
				r.Delete("/education/{ed_id}", profileHandler.RemoveEducation)
			})
		})
	})

	logger.Info("server starting", zap.String("address", cfg.ServerAddress))
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
