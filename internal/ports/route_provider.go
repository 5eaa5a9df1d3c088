package ports

import (
	"context"
	"errors"
	"tour-route-service/internal/domain"

	"github.com/paulmach/orb"
)

// One routed path between two coordinates as returned by the provider.
// Geometry is ordered origin -> destination in lon/lat pairs.
type RouteResult struct {
	Geometry        orb.LineString
	DurationSeconds int
	DistanceMeters  int
}

// ErrNoRoute is returned when the provider is reachable but has no route for
// the pair. It is terminal for the request: retrying cannot help.
var ErrNoRoute = errors.New("no route between the given points")

// Contract for retrieving a routed leg from an external directions service.
type RouteProvider interface {
	// Return the best route from origin to destination for the given mode.
	GetRoute(ctx context.Context, origin, destination orb.Point, mode domain.TravelMode) (RouteResult, error)
}
