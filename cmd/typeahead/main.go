package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-typeahead/api"
	"github.com/gcbaptista/go-typeahead/config"
	"github.com/gcbaptista/go-typeahead/internal/engine"
)

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		port       = flag.String("port", "", "Port to run the server on (overrides config file)")
		dataDir    = flag.String("data-dir", "", "Directory to store list data (overrides config file)")
		configPath = flag.String("config", "", "Path to a YAML server configuration file")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Typeahead - A fuzzy suggestion service with incremental session caching\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                             # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                 # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config typeahead.yaml     # Load server settings from a file\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Typeahead v1.0.0\n")
		fmt.Printf("Fuzzy subsequence matching with per-session incremental caches and analytics\n")
		return
	}

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load server config: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	// Initialize the typeahead engine
	log.Printf("Using data directory: %s", cfg.DataDir)
	sessionTTL := time.Duration(cfg.SessionTTLSeconds) * time.Second
	typeaheadEngine := engine.NewEngine(cfg.DataDir, sessionTTL)
	defer typeaheadEngine.Close()

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(cfg.MaxRequestBytes))

	// Setup API routes
	analyticsFile := cfg.AnalyticsFile
	if !filepath.IsAbs(analyticsFile) {
		analyticsFile = filepath.Join(cfg.DataDir, analyticsFile)
	}
	api.SetupRoutes(router, typeaheadEngine, analyticsFile)

	// Start the server
	log.Printf("Starting server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
