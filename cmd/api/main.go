// Package main provides the entry point for the faculty authentication API server
// @title Faculty Authentication API
// @version 1.0
// @description Credential authentication and account registration for the seminar-hall booking system.
// @host localhost:8080
// @BasePath /api
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"facultyauth/internal/api/routes"
	"facultyauth/internal/auth"
	"facultyauth/internal/config"
	"facultyauth/internal/database"
	"facultyauth/internal/logger"
	"facultyauth/internal/metrics"
	"facultyauth/internal/repository"
	"facultyauth/internal/repository/postgres"
	"facultyauth/internal/validation"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Path to env file")
	flag.Parse()

	// Load environment file
	if err := godotenv.Load(*envFile); err != nil && *envFile == ".env" {
		log.Printf("Warning: %v", err)
	}

	// Load configuration
	cfg := &config.Config{}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.API.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database and bring the schema up to date
	db, err := database.SetupDatabase(cfg.Database)
	if err != nil {
		zlog.Fatal("failed to set up database", zap.Error(err))
	}
	defer db.Close()

	// Initialize validators
	validation.Initialize()

	hasher, err := auth.NewHasher(cfg.Auth.HashAlgorithm, cfg.Auth.BcryptCost)
	if err != nil {
		zlog.Fatal("failed to initialize password hasher", zap.Error(err))
	}

	// Prune old login attempts on a schedule
	attemptRepo := postgres.NewLoginAttemptRepository(db)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Retention.Schedule, func() {
		pruneLoginAttempts(attemptRepo, cfg.Retention.LoginAttemptMaxAge, zlog)
	}); err != nil {
		zlog.Fatal("failed to schedule retention job", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup routes
	router := routes.SetupRoutes(cfg, db, hasher, zlog)

	// Convert port string to int
	port, err := strconv.Atoi(cfg.API.Port)
	if err != nil {
		zlog.Fatal("invalid port number", zap.Error(err))
	}

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		zlog.Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exiting")
}

func pruneLoginAttempts(attempts repository.LoginAttemptRepository, maxAge time.Duration, zlog *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-maxAge)
	removed, err := attempts.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		zlog.Error("failed to prune login attempts", zap.Error(err))
		return
	}
	metrics.AttemptsPruned.Add(float64(removed))
	zlog.Info("pruned login attempts",
		zap.Int64("removed", removed),
		zap.Time("cutoff", cutoff))
}
