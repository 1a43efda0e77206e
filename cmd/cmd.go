package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neighbrewhood-backend/internal/config"
	"neighbrewhood-backend/internal/handlers"
	"neighbrewhood-backend/internal/middleware"
	"neighbrewhood-backend/internal/migrate"
	"neighbrewhood-backend/internal/repository"
	"neighbrewhood-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
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
	db, err := repository.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Apply migrations
	if err := migrate.Up(context.Background(), cfg.Database.DSN()); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}
	log.Info().Msg("Migrations applied")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	brewerRepo := repository.NewBrewerRepository(db)
	brewRepo := repository.NewBrewRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	claimRepo := repository.NewClaimRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, cfg.JWT.Secret)
	brewerService := services.NewBrewerService(brewerRepo)
	brewService := services.NewBrewService(brewRepo)
	swapService := services.NewSwapService(swapRepo, brewRepo, cfg.Search.DefaultRadiusMiles)
	claimService := services.NewClaimService(claimRepo, swapRepo, brewRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	brewerHandler := handlers.NewBrewerHandler(brewerService)
	brewHandler := handlers.NewBrewHandler(brewService)
	swapHandler := handlers.NewSwapHandler(swapService, claimService)
	claimHandler := handlers.NewClaimHandler(claimService)

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
		r.Post("/users", userHandler.CreateUser)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(userService))
			r.Get("/users/me", userHandler.Me)
			r.Post("/brewers", brewerHandler.CreateBrewer)

			// Core routes require a brewer profile
			r.Group(func(r chi.Router) {
				r.Use(middleware.ProfileRequired(brewerService))

				r.Get("/brews/types", brewHandler.BrewTypes)
				r.Get("/brews/qualities", brewHandler.Qualities)
				r.Post("/brews", brewHandler.CreateBrew)
				r.Get("/brews/my", brewHandler.MyBrews)

				r.Post("/swaps", swapHandler.CreateSwap)
				r.Get("/swaps", swapHandler.ListSwaps)
				r.Get("/swaps/my", swapHandler.MySwaps)
				r.Get("/swaps/nearby", swapHandler.NearbySwaps)
				r.Get("/swaps/{swap_id}", swapHandler.SwapDetail)
				r.Get("/swaps/{swap_id}/set_live", swapHandler.SetLive)
				r.Get("/swaps/{swap_id}/set_complete", swapHandler.SetComplete)
				r.Get("/swaps/{swap_id}/set_inactive", swapHandler.SetInactive)
				r.Post("/swaps/{swap_id}/claim", claimHandler.CreateClaim)
				r.Get("/swaps/{swap_id}/claims", claimHandler.SwapClaims)

				r.Get("/claims/{claim_id}", claimHandler.ClaimDetail)
				r.Get("/claims/{claim_id}/accept", claimHandler.Accept)
				r.Get("/claims/{claim_id}/reject", claimHandler.Reject)
				r.Get("/claims/{claim_id}/cancel", claimHandler.Cancel)
			})
		})
	})

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

	// Shutdown HTTP server
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
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
