package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/narlock/alder/internal/config"
	"github.com/narlock/alder/internal/database"
	"github.com/narlock/alder/internal/handler"
	"github.com/narlock/alder/internal/logger"
	"github.com/narlock/alder/internal/metrics"
	"github.com/narlock/alder/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.SetupDefault(os.Stdout)

	// Initialize database
	db, err := database.New(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	users := repository.NewPostgresUserRepo(db.Conn())
	times := repository.NewPostgresTimeRepo(db.Conn())
	streaks := repository.NewPostgresStreakRepo(db.Conn())

	router := handler.NewRouter(users, times, streaks, metrics.NewCollector())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("API listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	slog.Info("shutting down API")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", slog.String("error", err.Error()))
	}
}
