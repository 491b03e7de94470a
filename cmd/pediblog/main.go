// Package main is the entry point for the pediblog API server.
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

	"pediblog/internal/auth"
	"pediblog/internal/cache"
	"pediblog/internal/config"
	"pediblog/internal/database"
	"pediblog/internal/handlers"
	"pediblog/internal/middleware"
	"pediblog/internal/router"
	"pediblog/internal/storage"
	"pediblog/internal/store"
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

	// Connect to Valkey for the JSON response cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)

	// Connect to S3-compatible object storage (optional, uploads disabled without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, image uploads disabled")
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	contactFormStore := store.NewContactFormStore(db)
	commentStore := store.NewCommentStore(db)

	// Auth middleware: bearer token verification plus local account lookup.
	authMiddleware := middleware.NewAuth(auth.NewVerifier(cfg.AuthSecret), userStore)

	// Create handler groups with their dependencies.
	postHandlers := handlers.NewPosts(postStore, categoryStore, responseCache, storageClient)
	categoryHandlers := handlers.NewCategories(categoryStore, responseCache)
	contactFormHandlers := handlers.NewContactForms(contactFormStore)
	commentHandlers := handlers.NewComments(commentStore, postStore)

	webhookHandlers, err := handlers.NewWebhook(userStore, cfg.WebhookSecret)
	if err != nil {
		slog.Error("failed to initialize webhook verifier", "error", err)
		os.Exit(1)
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(cfg.ClientURL, authMiddleware,
		postHandlers, categoryHandlers, contactFormHandlers, commentHandlers, webhookHandlers)

	// Keep-alive ping so managed Postgres plans do not drop idle connections.
	heartbeatCtx, stopHeartbeat := context.WithCancel(context.Background())
	defer stopHeartbeat()
	go database.Heartbeat(heartbeatCtx, db)

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

	stopHeartbeat()

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
