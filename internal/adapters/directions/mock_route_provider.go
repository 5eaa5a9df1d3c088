package directions

import (
	"context"
	"fmt"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/ports"

	"github.com/paulmach/orb"
)

type MockLeg struct {
	From, To orb.Point
	Mode     domain.TravelMode
	Geometry orb.LineString
	Seconds  int
	Meters   int
	Err      error
}

// MockRouteProvider serves canned results keyed by coordinate pair and mode.
// Pairs that were never registered return a plain error, which callers treat
// as a request failure.
type MockRouteProvider struct {
	m map[string]MockLeg
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]MockLeg, len(legs))
	for _, l := range legs {
		m[mockKey(l.From, l.To, l.Mode)] = l
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(
	ctx context.Context,
	origin, destination orb.Point,
	mode domain.TravelMode,
) (ports.RouteResult, error) {
	l, ok := p.m[mockKey(origin, destination, mode)]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing pair %q -> %q", coordKey(origin), coordKey(destination))
	}
	if l.Err != nil {
		return ports.RouteResult{}, l.Err
	}

	geometry := l.Geometry
	if len(geometry) == 0 {
		geometry = orb.LineString{origin, destination}
	}

	return ports.RouteResult{
		Geometry:        geometry,
		DurationSeconds: l.Seconds,
		DistanceMeters:  l.Meters,
	}, nil
}

func mockKey(from, to orb.Point, mode domain.TravelMode) string {
	return coordKey(from) + "|" + coordKey(to) + "|" + string(mode)
}
