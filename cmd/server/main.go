/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the WorkSuite ledger server: configuration,
  SQLite store, HTTP router, graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment config (.env supported), apply flag overrides
  2. Open SQLite store (":memory:" supported)
  3. Optionally seed demo data (-demo)
  4. Start server, shut down gracefully on SIGINT/SIGTERM

FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides DB_PATH)
  -demo    Seed a demo user with sample ledger data

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment configuration
  - store/sqlite: Database implementation
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

	"github.com/worksuite/worktime-engine/api"
	"github.com/worksuite/worktime-engine/auth"
	"github.com/worksuite/worktime-engine/config"
	"github.com/worksuite/worktime-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	demo := flag.Bool("demo", false, "seed demo user and sample data")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	if *demo {
		if err := seedDemoData(context.Background(), store); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Printf("Demo user ready (username: %s)", demoUsername)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	handler := api.NewHandler(store, store, store, tokens)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

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
