package services

import (
	"context"
	"errors"
	"log"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/ports"
)

const defaultLegTimeout = 10 * time.Second

// LegRouter requests one routed leg from the directions provider and
// normalizes the outcome into a tagged Leg.
//
// No retry loop lives here: a no-route answer will not change on retry
// within the same request, and retrying request failures would obscure the
// builder's partial-failure accounting.
type LegRouter struct {
	Provider ports.RouteProvider
	Timeout  time.Duration
}

// RouteLeg issues a single bounded provider call for the pair (from, to).
// The returned Leg always carries one of the three statuses; it never
// surfaces an error to the caller.
func (r *LegRouter) RouteLeg(ctx context.Context, index int, from, to domain.SnappedPoint, mode domain.TravelMode) domain.Leg {
	leg := domain.Leg{
		Index: index,
		From:  from.Place,
		To:    to.Place,
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultLegTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := r.Provider.GetRoute(ctx, from.Point, to.Point, mode)
	switch {
	case err == nil:
		leg.Geometry = res.Geometry
		leg.DurationSeconds = res.DurationSeconds
		leg.DistanceMeters = res.DistanceMeters
		leg.Status = domain.LegStatusOK
	case errors.Is(err, ports.ErrNoRoute):
		leg.Status = domain.LegStatusNoRoute
	default:
		log.Printf("route leg %d (%q -> %q): %v", index, from.Place, to.Place, err)
		leg.Status = domain.LegStatusRequestFailed
	}

	return leg
}
