package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"tour-route-service/internal/adapters/cache"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/ports"

	"github.com/paulmach/orb"
)

// Cache hit/miss counters; satisfied by metrics.Collector.
type CacheMetrics interface {
	RouteCacheHit()
	RouteCacheMiss()
}

// MapboxRouteProvider implements RouteProvider using the Mapbox Directions
// v5 API.
//
// It coordinates:
//   - Coordinate-key normalization
//   - A persistent per-leg route cache
//   - Single-shot external calls (no retry; see mapbox_http.go)
//
// The provider is safe for concurrent use.
type MapboxRouteProvider struct {
	session    *http.Client
	token      string
	baseURL    string
	routeCache *cache.SQLRouteCache
	metrics    CacheMetrics
}

func NewMapboxRouteProvider(token, baseURL string, routeCache *cache.SQLRouteCache, m CacheMetrics) (*MapboxRouteProvider, error) {
	if token == "" {
		return nil, errors.New("mapbox access token is empty")
	}
	if baseURL == "" {
		baseURL = "https://api.mapbox.com"
	}

	return &MapboxRouteProvider{
		session:    &http.Client{Timeout: 10 * time.Second},
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		routeCache: routeCache,
		metrics:    m,
	}, nil
}

type directionsResponse struct {
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Duration float64 `json:"duration"`
		Distance float64 `json:"distance"`
	} `json:"routes"`
	Code string `json:"code"`
}

// GetRoute fetches the best route from origin to destination.
//
// A reachable provider with an empty routes array maps to ports.ErrNoRoute;
// every other failure (network, timeout, non-2xx) surfaces as an error for
// the caller to classify.
func (m *MapboxRouteProvider) GetRoute(
	ctx context.Context,
	origin, destination orb.Point,
	mode domain.TravelMode,
) (ports.RouteResult, error) {
	if !mode.Valid() {
		return ports.RouteResult{}, fmt.Errorf("get route: unsupported travel mode %q", mode)
	}

	okey := coordKey(origin)
	dkey := coordKey(destination)

	// Check the persistent cache before issuing the external call.
	if m.routeCache != nil {
		cached, found, err := m.routeCache.Get(ctx, okey, dkey, string(mode))
		if err != nil {
			return ports.RouteResult{}, fmt.Errorf("get route cache %q -> %q: %w", okey, dkey, err)
		}
		if found {
			if m.metrics != nil {
				m.metrics.RouteCacheHit()
			}
			return cached, nil
		}
		if m.metrics != nil {
			m.metrics.RouteCacheMiss()
		}
	}

	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/%s/%s;%s", m.baseURL, mode, okey, dkey)

	q := url.Values{}
	q.Set("geometries", "geojson")
	q.Set("overview", "full")
	q.Set("access_token", m.token)

	req, err := m.newRequest(ctx, endpoint+"?"+q.Encode())
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("get route request: %w", err)
	}

	resp, err := m.do(req)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("get route %q -> %q: %w", okey, dkey, err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("get route %q -> %q: %w", okey, dkey, ports.ErrNoRoute)
	}

	route := decoded.Routes[0]

	geometry := make(orb.LineString, 0, len(route.Geometry.Coordinates))
	for _, c := range route.Geometry.Coordinates {
		if len(c) != 2 {
			return ports.RouteResult{}, fmt.Errorf("invalid coordinate in directions geometry: %v", c)
		}
		geometry = append(geometry, orb.Point{c[0], c[1]})
	}

	// Mapbox returns float metrics; round to integers for domain consistency.
	result := ports.RouteResult{
		Geometry:        geometry,
		DurationSeconds: int(math.Round(route.Duration)),
		DistanceMeters:  int(math.Round(route.Distance)),
	}

	if m.routeCache != nil {
		if err := m.routeCache.Put(ctx, okey, dkey, string(mode), result); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return result, nil
}

// coordKey renders a point as "lon,lat" rounded to 6 decimal places (about
// 10cm), which doubles as the wire format for the directions URL and as a
// stable cache key.
func coordKey(p orb.Point) string {
	lon := strconv.FormatFloat(round6(p.Lon()), 'f', -1, 64)
	lat := strconv.FormatFloat(round6(p.Lat()), 'f', -1, 64)
	return lon + "," + lat
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
