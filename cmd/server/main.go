package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tour-route-service/internal/adapters/cache"
	"tour-route-service/internal/adapters/directions"
	"tour-route-service/internal/adapters/repositories"
	"tour-route-service/internal/api"
	"tour-route-service/internal/api/handlers"
	"tour-route-service/internal/config"
	"tour-route-service/internal/metrics"
	"tour-route-service/internal/platform/db"
	"tour-route-service/internal/publisher"
	"tour-route-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Mapbox, NATS) behind ports and
// starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Initialize schema and seed datasets on startup for local runs.
	if err := initAndSeed(database, cfg); err != nil {
		log.Fatal(err)
	}

	var mcol *metrics.Collector
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mcol = metrics.NewCollector()
		metricsSrv = mcol.Serve(cfg.MetricsAddr)
	}

	// The road network is static per deployment: load it once and keep the
	// edge index in memory for the life of the process.
	roadRepo := repositories.NewPostgresRoadRepository(database)
	edges, err := roadRepo.ListEdges(ctx)
	if err != nil {
		log.Fatal(err)
	}
	index := services.NewEdgeIndex(edges)
	if index.Len() == 0 {
		log.Println("road network is empty: snapping disabled, stops keep raw coordinates")
	} else {
		log.Printf("edge index ready edges=%d", index.Len())
	}

	// Mapbox provider uses a persistent route cache to avoid repeated
	// directions calls for recurring leg pairs.
	routeCache := cache.NewSQLRouteCache(database)
	provider, err := directions.NewMapboxRouteProvider(cfg.MapboxToken, cfg.MapboxBaseURL, routeCache, wrapCacheMetrics(mcol))
	if err != nil {
		log.Fatal(err)
	}

	builder := &services.Builder{
		Places:            repositories.NewPostgresPlaceRepository(database),
		Index:             index,
		Router:            &services.LegRouter{Provider: provider, Timeout: cfg.LegTimeout},
		MaxConcurrentLegs: cfg.MaxConcurrentLegs,
	}
	if mcol != nil {
		builder.Metrics = mcol
	}

	var events handlers.ItineraryEvents
	if cfg.NATSURL != "" {
		pub, err := publisher.NewItineraryPublisher(cfg.NATSURL, cfg.LogNATSSubjects, wrapPublisherMetrics(mcol))
		if err != nil {
			log.Fatalf("nats error: %v", err)
		}
		defer pub.Close()
		events = pub
	}

	state := services.NewItineraryState()
	router := api.NewRouter(database, repositories.NewPostgresPlaceRepository(database), builder, state, events)

	// Timeouts are tuned for cold-cache route generation (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	log.Println("shutdown complete")
}

func initAndSeed(database *sql.DB, cfg *config.Config) error {
	if err := repositories.InitSchema(database); err != nil {
		return err
	}

	if fileExists(cfg.SeedPlacesPath) {
		if err := repositories.SeedPlacesFromJSON(database, cfg.SeedPlacesPath); err != nil {
			return err
		}
	} else {
		log.Printf("no places seed at %q (skipping)", cfg.SeedPlacesPath)
	}

	if fileExists(cfg.SeedRoadsPath) {
		if err := repositories.SeedRoadsFromGeoJSON(database, cfg.SeedRoadsPath); err != nil {
			return err
		}
	} else {
		log.Printf("no roads seed at %q (skipping)", cfg.SeedRoadsPath)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// The wrappers keep a nil *Collector from becoming a non-nil interface.

func wrapCacheMetrics(m *metrics.Collector) directions.CacheMetrics {
	if m == nil {
		return nil
	}
	return m
}

func wrapPublisherMetrics(m *metrics.Collector) publisher.PublisherMetrics {
	if m == nil {
		return nil
	}
	return m
}
