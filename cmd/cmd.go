package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dailydare-backend/internal/config"
	"dailydare-backend/internal/handlers"
	"dailydare-backend/internal/middleware"
	"dailydare-backend/internal/repository"
	"dailydare-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	if err := repository.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	postRepo := repository.NewPostRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	wsHub := services.NewWSHub()
	pushService, err := services.NewPushService(
		cfg.APNS.Enabled,
		cfg.APNS.CertPath,
		cfg.APNS.CertPassword,
		cfg.APNS.Topic,
		cfg.APNS.Production,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create push service")
	}

	notificationService := services.NewNotificationService(notificationRepo, userRepo, wsHub, pushService)
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret)
	socialService := services.NewSocialService(userRepo, friendRepo, notificationService)
	aggregateService := services.NewAggregateService(userRepo, challengeRepo, socialService)
	feedService := services.NewFeedService(postRepo, userRepo)
	postService := services.NewPostService(postRepo, userRepo, aggregateService, notificationService)
	uploadService, err := services.NewUploadService(
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload service")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(aggregateService, authService, socialService)
	postHandler := handlers.NewPostHandler(postService, feedService, aggregateService)
	friendHandler := handlers.NewFriendHandler(socialService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, authService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signin", authHandler.SignIn)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(authService))
			r.Get("/me", userHandler.GetMe)
			r.Put("/me/profile", userHandler.UpdateProfile)
			r.Post("/me/device-token", userHandler.RegisterDeviceToken)
			r.Get("/feed", postHandler.GetFeed)
			r.Post("/posts", postHandler.CreatePost)
			r.Post("/posts/{post_id}/like", postHandler.ToggleLike)
			r.Get("/challenges/today", postHandler.GetTodayChallenge)
			r.Get("/users/search", userHandler.SearchUsers)
			r.Post("/friends/requests", friendHandler.SendRequest)
			r.Post("/friends/requests/{from_uid}/accept", friendHandler.AcceptRequest)
			r.Delete("/friends/requests/{from_uid}", friendHandler.DeclineRequest)
			r.Delete("/friends/{friend_uid}", friendHandler.RemoveFriend)
			r.Get("/notifications", notificationHandler.List)
			r.Post("/uploads", uploadHandler.CreateUpload)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
