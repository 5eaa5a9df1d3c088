package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL       string
	MapboxToken       string
	MapboxBaseURL     string
	Port              string
	SeedPlacesPath    string
	SeedRoadsPath     string
	LegTimeout        time.Duration
	MaxConcurrentLegs int
	MetricsAddr       string
	NATSURL           string
	LogNATSSubjects   bool
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	// Database URL: prefer DATABASE_URL, else build from PG* vars.
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := Get("PGHOST", "127.0.0.1")
		port := Get("PGPORT", "5432")
		user := Get("PGUSER", "postgres")
		pass := os.Getenv("PGPASSWORD")
		db := os.Getenv("PGDATABASE")
		if db == "" {
			return nil, errors.New("PGDATABASE or DATABASE_URL must be set")
		}
		sslmode := Get("PGSSLMODE", "disable")
		if pass != "" {
			cfg.DatabaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", urlEscape(user), urlEscape(pass), host, port, db, sslmode)
		} else {
			cfg.DatabaseURL = fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s", urlEscape(user), host, port, db, sslmode)
		}
	} else {
		cfg.DatabaseURL = dsn
	}

	cfg.MapboxToken = strings.TrimSpace(os.Getenv("MAPBOX_TOKEN"))
	if cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_TOKEN is required")
	}

	cfg.MapboxBaseURL = Get("MAPBOX_BASE_URL", "https://api.mapbox.com")

	cfg.Port = Get("PORT", "8080")
	cfg.SeedPlacesPath = Get("SEED_PLACES_PATH", "data/seeds/places.json")
	cfg.SeedRoadsPath = Get("SEED_ROADS_PATH", "data/seeds/roads.geojson")

	// Per-leg directions request timeout
	if v := os.Getenv("LEG_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid LEG_TIMEOUT_MS: %q", v)
		}
		cfg.LegTimeout = time.Duration(ms) * time.Millisecond
	} else {
		cfg.LegTimeout = 10 * time.Second
	}

	// Concurrent leg request fan-out
	if v := os.Getenv("MAX_CONCURRENT_LEGS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_CONCURRENT_LEGS: %q", v)
		}
		cfg.MaxConcurrentLegs = n
	} else {
		cfg.MaxConcurrentLegs = 4
	}

	// Metrics listen address (e.g., ":9102"). Empty disables the metrics server.
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	// NATS URL. Empty disables the itinerary event feed.
	cfg.NATSURL = os.Getenv("NATS_URL")

	if v := os.Getenv("LOG_NATS_SUBJECTS"); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			cfg.LogNATSSubjects = true
		}
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func urlEscape(s string) string {
	// Minimal escape for DSN user/pass with special chars
	r := strings.NewReplacer("@", "%40", ":", "%3A", "/", "%2F", "?", "%3F", "#", "%23")
	return r.Replace(s)
}
