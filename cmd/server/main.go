package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkallas/flashdeck/internal/api"
	"github.com/mkallas/flashdeck/internal/config"
	"github.com/mkallas/flashdeck/internal/db"
	"github.com/mkallas/flashdeck/internal/logger"
	"github.com/mkallas/flashdeck/internal/repository/sqlite"
	"github.com/mkallas/flashdeck/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Flashdeck Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("session_limit=%d", cfg.SessionLimit)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	categoryRepo := sqlite.NewCategoryRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Initialize services
	categoryService := services.NewCategoryService(categoryRepo)
	cardService := services.NewCardService(cardRepo, categoryRepo)
	statsService := services.NewStatsService(statsRepo)
	sessionService := services.NewSessionService(cardRepo, categoryRepo, statsRepo, cfg.SessionLimit)

	srv := api.NewServer(categoryService, cardService, statsService, sessionService, database.DB)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Flashdeck Server Stopped")
	log.Info("===========================================")
}
