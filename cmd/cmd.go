package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photohunt-backend/internal/config"
	"photohunt-backend/internal/handlers"
	"photohunt-backend/internal/middleware"
	"photohunt-backend/internal/repository/postgres"
	"photohunt-backend/internal/services"

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

	// Apply schema migrations
	if err := postgres.RunMigrations(context.Background(), cfg.Database.DSN()); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

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

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	edgeRepo := postgres.NewEdgeRepo(db)
	themeRepo := postgres.NewThemeRepo(db)
	photoRepo := postgres.NewPhotoRepo(db)
	voteRepo := postgres.NewVoteRepo(db)

	// Image boundary
	imageService, err := services.NewImageService(context.Background(),
		cfg.AWS.Region, cfg.AWS.S3Bucket, cfg.AWS.AccessKey, cfg.AWS.SecretKey, cfg.AWS.Endpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create image service")
	}

	// Push is optional
	var pushService *services.PushService
	if cfg.APNS.KeyFile != "" {
		pushService, err = services.NewPushService(
			cfg.APNS.KeyFile, cfg.APNS.KeyID, cfg.APNS.TeamID, cfg.APNS.Topic, cfg.APNS.Production)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create push service")
		}
	}

	// Initialize services
	userService := services.NewUserService(userRepo, edgeRepo, cfg.JWT.Secret,
		cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	themeService := services.NewThemeService(themeRepo)
	photoService := services.NewPhotoService(photoRepo, voteRepo, userRepo,
		themeService, userService, imageService, imageService,
		cfg.App.BaseURL, cfg.App.ThumbnailSize)
	wsHub := services.NewWSHub()
	notifier := services.NewNotifier(wsHub, pushService, userRepo, edgeRepo)
	voteService := services.NewVoteService(voteRepo, photoRepo, photoService, notifier)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	themeHandler := handlers.NewThemeHandler(themeService)
	photoHandler := handlers.NewPhotoHandler(photoService, notifier)
	voteHandler := handlers.NewVoteHandler(voteService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, userService)

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
		r.Post("/auth/google", userHandler.GoogleAuth)
		r.Get("/themes", themeHandler.List)
		r.Get("/themes/current", themeHandler.Current)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(userService))
			r.Get("/users/me", userHandler.Me)
			r.Put("/users/me/push-token", userHandler.UpdatePushToken)
			r.Get("/users/me/friends", userHandler.ListFriends)
			r.Put("/users/me/friends/{userID}", userHandler.AddFriend)
			r.Delete("/users/me/friends/{userID}", userHandler.RemoveFriend)
			r.Post("/themes", themeHandler.Create)
			r.Get("/photos", photoHandler.List)
			r.Post("/photos/upload", photoHandler.Upload)
			r.Post("/photos/{photoID}/confirm", photoHandler.Confirm)
			r.Get("/photos/{photoID}", photoHandler.Get)
			r.Delete("/photos/{photoID}", photoHandler.Delete)
			r.Put("/votes", voteHandler.Cast)
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
