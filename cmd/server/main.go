/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the claim-count engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load classification constants (config file or defaults)
  3. Initialize SQLite store
  4. Wire the engine over the store's sources and directory
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: claims.db)
           Use ":memory:" for an in-memory database
  -config  Optional JSON file with classification constants

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
  - factory/config.go: Config file format
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

	"github.com/warp/claims-engine/api"
	"github.com/warp/claims-engine/engine"
	"github.com/warp/claims-engine/factory"
	"github.com/warp/claims-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "claims.db", "SQLite database path")
	cfgPath := flag.String("config", "", "JSON config file for classification constants")
	flag.Parse()

	// Classification constants
	cfg := engine.DefaultConfig()
	if *cfgPath != "" {
		var err error
		cfg, err = factory.LoadConfig(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Initialize store
	store, err := sqlite.New(*dbPath, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Wire the engine: subject directory plus both claim sources
	eng := engine.New(store.Subjects(), cfg, store.GISClaims(), store.OtherClaims())

	// Create router
	router := api.NewRouter(api.NewHandler(eng))

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
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
