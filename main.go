package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell-blog/inkwell-be/internal/api"
	"github.com/inkwell-blog/inkwell-be/internal/auth"
	"github.com/inkwell-blog/inkwell-be/internal/config"
	"github.com/inkwell-blog/inkwell-be/internal/database"
	"github.com/inkwell-blog/inkwell-be/internal/logger"
	"github.com/inkwell-blog/inkwell-be/internal/services"
	"github.com/inkwell-blog/inkwell-be/internal/validate"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsProduction())

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Sanitizer and token manager are built once and injected; both are
	// read-only after startup.
	sanitizer := validate.NewSanitizer()
	tokens := auth.NewManager(cfg.JWTSecret)

	// Set up services
	userService := services.NewUserService(db)
	postService := services.NewPostService(db, sanitizer)
	commentService := services.NewCommentService(db, sanitizer)

	// Set up router
	router := api.NewRouter(cfg, tokens, userService, postService, commentService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
