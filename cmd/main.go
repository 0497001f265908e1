/*
Package main is the entry point for the ShiftChat application.

It is responsible for loading configuration, initializing the global logging system,
selecting the persistence backend, wiring the room registry, membership coordinator,
session directory, live feed hub, and optional archive backend into the HTTP server,
and gracefully handling operating system interrupt signals (SIGINT, SIGTERM)
to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiftchat/internal/app/archive"
	"shiftchat/internal/app/chatroom"
	"shiftchat/internal/app/db"
	"shiftchat/internal/app/feed"
	"shiftchat/internal/app/ident"
	"shiftchat/internal/app/membership"
	"shiftchat/internal/app/session"
	"shiftchat/internal/app/store"
	"shiftchat/internal/configs"
	"shiftchat/internal/handler"
	"shiftchat/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("archive_enabled", cfg.ArchiveEnabled()).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Select the persistence backend. An empty DATABASE_URL falls back to the
	// in-memory development store.
	var st store.Store
	if cfg.DatabaseDSN != "" {
		pool, err := db.NewPool(cfg.DatabaseDSN)
		if err != nil {
			logx.Fatal(err, "Failed to connect to database")
		}
		defer pool.Close()
		st = store.NewPostgresStore(pool)
	} else {
		logx.Warn("DATABASE_URL not set, using in-memory store")
		st = store.NewMemoryStore()
	}

	// Optional S3-compatible archive backend.
	var archiveSvc archive.Service
	if cfg.ArchiveEnabled() {
		archiveSvc, err = archive.NewService(archive.ServiceConfig{
			S3BucketName:      cfg.S3BucketName,
			S3Endpoint:        cfg.S3Endpoint,
			S3AccessKeyID:     cfg.S3AccessKeyID,
			S3SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			logx.Fatal(err, "Failed to initialize archive backend")
		}
	}

	hub := feed.NewHub()

	deps := &handler.AppDeps{
		Config:     cfg,
		Store:      st,
		Sessions:   session.NewDirectory(st),
		Registry:   chatroom.NewRegistry(ident.NewAllocator()),
		Membership: membership.NewCoordinator(st),
		Hub:        hub,
		Archive:    archiveSvc,
		Rooms:      handler.NewRoomCache(st),
	}

	// Setup HTTP server and routes
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("ShiftChat Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	hub.Shutdown()

	logx.Info("Server gracefully stopped.")
}
