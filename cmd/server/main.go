/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the FinanceGPT backend server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration, then parse command-line flags
  2. Open the SQLite key-value store
  3. Construct the progress, budget, chat, and market services
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides DB_PATH)
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/financegpt.db"

  # Run against a different generation backend
  LLM_ENDPOINT=http://gpu-box:11434 LLM_MODEL=mistral ./server

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Key-value store implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/financegpt/finance-engine/api"
	"github.com/financegpt/finance-engine/budget"
	"github.com/financegpt/finance-engine/config"
	"github.com/financegpt/finance-engine/llm"
	"github.com/financegpt/finance-engine/market"
	"github.com/financegpt/finance-engine/progress"
	"github.com/financegpt/finance-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the environment for local runs.
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize services
	prog := progress.NewService(context.Background(), store, progress.DefaultStorageKey)
	budg := budget.NewService()
	chat := llm.NewClient(cfg.LLMEndpoint, cfg.LLMModel)
	mkt := market.NewClient(cfg.MarketEndpoint, cfg.MarketAPIKey)
	if cfg.MarketAPIKey == "" {
		log.Println("Warning: ALPHA_VANTAGE_API_KEY not set, market routes will return errors")
	}

	// Create router
	handler := api.NewHandler(prog, budg, chat, mkt)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // chat responses wait on the generation backend
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		log.Printf("🤖 Generation backend: %s (model %s)", cfg.LLMEndpoint, cfg.LLMModel)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
