package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/atlasvoyages/itinerary-api/internal/adapters/httpapi"
	memdocstore "github.com/atlasvoyages/itinerary-api/internal/adapters/memory/docstore"
	memfallbackstore "github.com/atlasvoyages/itinerary-api/internal/adapters/memory/fallbackstore"
	postgres "github.com/atlasvoyages/itinerary-api/internal/adapters/postgres"
	pgdocstore "github.com/atlasvoyages/itinerary-api/internal/adapters/postgres/docstore"
	"github.com/atlasvoyages/itinerary-api/internal/app/itinerary"
	"github.com/atlasvoyages/itinerary-api/internal/domain"
	platformclock "github.com/atlasvoyages/itinerary-api/internal/platform/clock"
	"github.com/atlasvoyages/itinerary-api/internal/platform/config"
	docstoreport "github.com/atlasvoyages/itinerary-api/internal/ports/out/docstore"
)

func main() {
	// Local dev convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	clk := platformclock.NewSystemClock()
	timers := platformclock.NewSystemTimers()

	var (
		remote  docstoreport.Store
		cleanup func()
	)
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			log.Fatalf("invalid postgres config: %v", err)
		}
		cleanup = pool.Close
		remote = pgdocstore.NewStore(pool)
	default:
		remote = memdocstore.NewStore()
	}
	if cleanup != nil {
		defer cleanup()
	}

	// The fallback store is local by contract: it absorbs writes when the
	// remote store is down, so it is never remote itself.
	fallback := memfallbackstore.NewStore()

	reg := itinerary.NewRegistry(func(id domain.ContextID) *itinerary.Controller {
		return itinerary.NewController(id, remote, fallback, clk, timers, itinerary.ControllerConfig{
			Markup:   cfg.Markup,
			Currency: cfg.Currency,
			Scheduler: itinerary.SchedulerConfig{
				ShortWindow: cfg.AutosaveShortWindow,
				LongWindow:  cfg.AutosaveLongWindow,
			},
		})
	})

	handler := httpapi.NewRouter(httpapi.NewServer(reg))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("api listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
