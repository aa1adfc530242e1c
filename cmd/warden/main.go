package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wardenbot/warden/bot"
	"github.com/wardenbot/warden/internal/conf"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	b, err := bot.New(bot.Config{
		Token:             cfg.Discord.Token,
		Prefix:            cfg.Commands.Prefix,
		DataDir:           cfg.Storage.DataDir,
		WordlistPath:      cfg.Storage.WordlistPath,
		SpamWindow:        cfg.Spam.SpamWindow(),
		SpamThreshold:     cfg.Spam.Threshold,
		ActivityCacheSize: cfg.Spam.CacheSize,
		AutoMuteDuration:  cfg.Spam.AutoMuteDuration(),
		ReconcileInterval: cfg.Spam.ReconcileInterval(),
		Debug:             cfg.Debug,
	})
	if err != nil {
		log.Fatalf("Failed to assemble bot: %v", err)
	}

	fmt.Printf("[Warden] Data dir: %s\n", cfg.Storage.DataDir)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Starting Warden moderation bot...")
	if err := b.Start(); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	<-sigCh
	fmt.Println("\nShutting down...")
	b.Stop()
}
