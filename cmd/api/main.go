package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tomlord1122/todoey/internal/app"
	"github.com/Tomlord1122/todoey/internal/config"
	"github.com/Tomlord1122/todoey/internal/server"
	"github.com/Tomlord1122/todoey/internal/service"
)

func gracefulShutdown(apiServer *http.Server, stores *app.Stores, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 5 seconds to finish the request it is currently handling
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if err := stores.Close(); err != nil {
		log.Printf("Error closing database connection pool: %v", err)
	}

	log.Println("Server exiting")

	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. Open the configured store (migrates Postgres schemas)
	stores, err := app.OpenStores(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store, err)
	}
	log.Printf("Using %s store", cfg.Store)

	// 2. Initialize managers; handlers scope an observer per request
	items := service.NewItemManager(stores.Items, nil)
	sections := service.NewSectionManager(stores.Sections, nil)

	// 3. Initialize Server/Router
	apiServer := server.NewServer(cfg.Port, items, sections, stores.Health)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, stores, done)

	log.Printf("Starting server on %s", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
