package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/narlock/alder/internal/alder"
	"github.com/narlock/alder/internal/config"
	"github.com/narlock/alder/internal/discord"
	"github.com/narlock/alder/internal/logger"
	"github.com/narlock/alder/internal/streak"
	"github.com/narlock/alder/internal/timetrack"
)

func main() {
	// Load configuration
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.SetupDefault(os.Stdout)

	// Alder API client shared by the tracker and streak service
	api := alder.New(cfg.APIBaseURL, cfg.APITimeout)

	streaks := streak.NewService(api, slog.Default())
	registry := timetrack.NewRegistry()
	tracker := timetrack.NewTracker(registry, api, streaks, slog.Default())

	// Initialize Discord bot
	bot, err := discord.New(cfg, api, tracker, streaks, slog.Default())
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}
	defer bot.Stop()

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down bot...")
}
