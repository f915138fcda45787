/*
main.go - Application entry point

PURPOSE:
  Starts the utilization dashboard server: loads configuration, wires the
  event cache and the scheduling-API client into the HTTP handlers, and runs
  with graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load YAML config and environment (.env supported)
  3. Open the event cache (SQLite, or memory in demo mode)
  4. Build the Teamup client (skipped in demo mode)
  5. Configure the router and serve

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: from config, else 8080)
  -db      SQLite cache path (default: utilization.db; ":memory:" works)
  -config  YAML config path (default: dashboard.yaml)
  -demo    Run without upstream credentials on the synthetic dataset

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for active
  requests, close the cache, exit.

EXAMPLES:
  # Live mode (needs TEAMUP_API_KEY and a calendar key)
  ./server -config=dashboard.yaml -db=./data/cache.db

  # Demo mode, nothing required
  ./server -demo

SEE ALSO:
  - api/server.go: router configuration
  - config/config.go: file and environment settings
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

	"github.com/warp/utilization-engine/api"
	"github.com/warp/utilization-engine/config"
	"github.com/warp/utilization-engine/engine"
	"github.com/warp/utilization-engine/store"
	"github.com/warp/utilization-engine/store/sqlite"
	"github.com/warp/utilization-engine/teamup"
)

func main() {
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "utilization.db", "SQLite cache path")
	configPath := flag.String("config", "dashboard.yaml", "YAML config path")
	demo := flag.Bool("demo", false, "run on the synthetic demo dataset")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := engine.Options{
		FullyExcluded:     cfg.FullyExcluded,
		UtilizationExempt: cfg.UtilizationExempt,
		SynonymOverrides:  cfg.StatusSynonyms,
	}

	var handler *api.Handler
	if *demo {
		handler = api.NewHandler(store.NewMemory(), nil, opts, cfg.HolidaySubcalendar)
		seedDemo(handler)
	} else {
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Configuration incomplete (try -demo): %v", err)
		}
		cache, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open event cache: %v", err)
		}
		defer cache.Close()

		client := teamup.NewClient(cfg.Teamup.BaseURL, cfg.Teamup.CalendarKey, cfg.Teamup.APIKey, nil)
		handler = api.NewHandler(cache, client, opts, cfg.HolidaySubcalendar)
	}

	addr := cfg.Listen
	if *port != 0 {
		addr = fmt.Sprintf(":%d", *port)
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Utilization dashboard listening on %s", addr)
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

// seedDemo preloads the synthetic dataset so demo mode renders immediately.
func seedDemo(h *api.Handler) {
	now := time.Now()
	window := engine.Window{
		Start: engine.NewDay(now.Year(), now.Month(), 1),
		End:   engine.DayOf(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1)),
	}
	employees, cw := api.DemoDataset(window)
	ctx := context.Background()
	if err := h.Store.SaveEmployees(ctx, employees); err != nil {
		log.Printf("warning: failed to seed demo roster: %v", err)
	}
	if err := h.Store.SaveWindow(ctx, cw); err != nil {
		log.Printf("warning: failed to seed demo events: %v", err)
	}
	log.Printf("demo dataset loaded for %s", window)
}
