// Package main is the entry point for the promptstash API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"promptstash/internal/activity"
	"promptstash/internal/auth"
	"promptstash/internal/cache"
	"promptstash/internal/config"
	"promptstash/internal/database"
	"promptstash/internal/handlers"
	"promptstash/internal/router"
	"promptstash/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	handlers.SetDevMode(cfg.IsDev())

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis (verification-code store).
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Token service for bearer auth.
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to initialize token service", "error", err)
		os.Exit(1)
	}
	codes := auth.NewCodeStore(redisClient)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	promptStore := store.NewPromptStore(db)
	reviewStore := store.NewReviewStore(db)
	commentStore := store.NewCommentStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	activityStore := store.NewActivityStore(db)
	statsStore := store.NewStatsStore(db)

	// Best-effort activity recording.
	recorder := activity.NewRecorder(activityStore)

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(userStore, tokens, codes, recorder)
	promptHandlers := handlers.NewPrompts(promptStore, categoryStore, reviewStore, commentStore, recorder)
	categoryHandlers := handlers.NewCategories(categoryStore)
	statsHandlers := handlers.NewStats(statsStore, activityStore)
	tagHandlers := handlers.NewTags(tagStore)

	// Set up the chi router with all middleware and routes.
	r := router.New(tokens, authHandlers, promptHandlers, categoryHandlers, statsHandlers, tagHandlers)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
