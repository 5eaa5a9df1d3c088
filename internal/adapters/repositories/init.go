package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Initialize the database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		name TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`

	createRoadEdgesQuery := `
	CREATE TABLE IF NOT EXISTS road_edges (
		edge_id BIGINT PRIMARY KEY,
		geometry JSONB NOT NULL
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		mode TEXT NOT NULL,
		geometry JSONB NOT NULL,
		duration_seconds INTEGER NOT NULL,
		distance_meters INTEGER NOT NULL,
		PRIMARY KEY (origin, destination, mode)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_cache_destination_origin
	ON route_cache(destination, origin);
	`

	statements := []string{
		createPlacesQuery,
		createRoadEdgesQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PlaceSeed struct {
	Name string  `json:"name"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

// Populate the places table from a JSON dataset file. Duplicate names keep
// the last occurrence, matching the dataset-deduplication contract.
func SeedPlacesFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed places: parse json: %w", err)
	}

	rows := make([]PlaceSeed, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed places: item at index %d: name cannot be empty", i+1)
		}
		rows = append(rows, PlaceSeed{Name: name, Lon: item.Lon, Lat: item.Lat})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO places (name, lon, lat)
	VALUES ($1, $2, $3)
	ON CONFLICT (name) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range rows {
		if _, err := stmt.Exec(p.Name, p.Lon, p.Lat); err != nil {
			return fmt.Errorf("seed places: insert name=%q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}

// Populate the road_edges table from a GeoJSON FeatureCollection of
// LineStrings. Edge IDs follow feature order so nearest-edge tie-breaks
// stay stable across restarts.
func SeedRoadsFromGeoJSON(db *sql.DB, geojsonPath string) error {
	bytes, err := os.ReadFile(geojsonPath)
	if err != nil {
		return fmt.Errorf("seed roads: read %q: %w", geojsonPath, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(bytes)
	if err != nil {
		return fmt.Errorf("seed roads: parse geojson: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed roads: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO road_edges (edge_id, geometry)
	VALUES ($1, $2)
	ON CONFLICT (edge_id) DO UPDATE
	SET geometry = EXCLUDED.geometry;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed roads: prepare insert: %w", err)
	}
	defer stmt.Close()

	edgeID := int64(0)
	for i, feature := range fc.Features {
		ls, ok := feature.Geometry.(orb.LineString)
		if !ok {
			return fmt.Errorf("seed roads: feature at index %d is %T, want LineString", i, feature.Geometry)
		}
		if len(ls) < 2 {
			return fmt.Errorf("seed roads: feature at index %d has %d points", i, len(ls))
		}

		raw, err := json.Marshal(geojson.NewGeometry(ls))
		if err != nil {
			return fmt.Errorf("seed roads: encode geometry at index %d: %w", i, err)
		}

		edgeID++
		if _, err := stmt.Exec(edgeID, raw); err != nil {
			return fmt.Errorf("seed roads: insert edge_id=%d: %w", edgeID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed roads: commit tx: %w", err)
	}

	return nil
}
