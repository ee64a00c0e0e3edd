package main

import (
	"academy-dashboard/config"
	"academy-dashboard/db"
	academyhttp "academy-dashboard/http"
	"academy-dashboard/logger"
	"academy-dashboard/services"
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

func main() {
	// Determine project root by searching upward for go.mod
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal("Error getting current working directory:", err)
	}

	absProjectRoot := findProjectRoot(cwd)
	if absProjectRoot == "" {
		log.Fatalf("Could not locate project root (go.mod) from %s", cwd)
	}

	if err := os.Chdir(absProjectRoot); err != nil {
		log.Fatal("Error changing to project root:", err)
	}
	logger.Info("Working directory set to project root: %s", absProjectRoot)

	// Load configuration
	config.LoadConfig()

	// Initialize Kafka producer (non-fatal)
	services.InitProducer()

	// Initialize database
	if err := db.InitDB(); err != nil {
		logger.Fatal("Error initializing database: %v", err)
	}

	// Optional Redis cache for course payment details
	var cache *services.AcademyCache
	if config.AppConfig.RedisURL != "" {
		cache, err = services.NewAcademyCache(config.AppConfig.RedisURL, 10*time.Minute)
		if err != nil {
			logger.Warn("Redis unavailable, caching disabled: %v", err)
			cache = nil
		}
	}

	// Email consumer: sends receipts and reminders published to the emails topic
	services.RegisterEmailProcessor(services.ProcessEmailEvent)
	services.StartConsumer()

	// Setup routes
	academyhttp.SetupRoutes(cache)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting on :8080")
		log.Fatal(netHttp.ListenAndServe(":8080", nil))
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutdown signal received, closing consumers and connections...")

	services.StopConsumer()

	if err := services.Close(); err != nil {
		logger.Error("Error closing Kafka producer: %v", err)
	}

	if err := cache.CloseCache(); err != nil {
		logger.Error("Error closing Redis cache: %v", err)
	}

	logger.Info("Server shutdown complete")
}

// findProjectRoot walks up from start and returns the first directory containing go.mod
func findProjectRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || strings.HasSuffix(dir, ":\\") || parent == "" {
			break
		}
		dir = parent
	}
	return ""
}
