package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"tour-route-service/internal/platform/obs"
	"tour-route-service/internal/ports"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// SQLRouteCache is a SQL-backed cache for routed legs, keyed by normalized
// origin/destination coordinate keys and travel mode. Keys are expected to
// be consistent (already rounded) by the caller.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Get fetches one cached leg. found is false on a clean miss.
func (s *SQLRouteCache) Get(
	ctx context.Context,
	origin, destination, mode string,
) (_ ports.RouteResult, found bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}

	if origin == "" || destination == "" || mode == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: origin, destination and mode must be non-empty")
	}

	q := `
	SELECT geometry, duration_seconds, distance_meters
	FROM route_cache
	WHERE origin = $1
		AND destination = $2
		AND mode = $3;
	`

	var raw []byte
	var seconds, meters int
	err = s.DB.QueryRowContext(ctx, q, origin, destination, mode).Scan(&raw, &seconds, &meters)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: decode geometry: %w", err)
	}

	ls, ok := geom.Geometry().(orb.LineString)
	if !ok {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: geometry is %T, want LineString", geom.Geometry())
	}

	return ports.RouteResult{
		Geometry:        ls,
		DurationSeconds: seconds,
		DistanceMeters:  meters,
	}, true, nil
}

// Put stores one routed leg, replacing any existing entry for the key.
func (s *SQLRouteCache) Put(
	ctx context.Context,
	origin, destination, mode string,
	r ports.RouteResult,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if origin == "" || destination == "" || mode == "" {
		return errors.New("insert route cache: origin, destination and mode must be non-empty")
	}

	raw, err := json.Marshal(geojson.NewGeometry(r.Geometry))
	if err != nil {
		return fmt.Errorf("insert route cache: encode geometry: %w", err)
	}

	q := `
	INSERT INTO route_cache (origin, destination, mode, geometry, duration_seconds, distance_meters)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (origin, destination, mode) DO UPDATE
	SET geometry = EXCLUDED.geometry,
		duration_seconds = EXCLUDED.duration_seconds,
		distance_meters = EXCLUDED.distance_meters;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, mode, raw, r.DurationSeconds, r.DistanceMeters); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
