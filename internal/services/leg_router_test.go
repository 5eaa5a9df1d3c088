package services

import (
	"context"
	"errors"
	"testing"
	"tour-route-service/internal/adapters/directions"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/ports"

	"github.com/paulmach/orb"
)

func snappedAt(name string, p orb.Point) domain.SnappedPoint {
	return domain.SnappedPoint{Place: name, Point: p, OnNetwork: true}
}

func TestRouteLegOK(t *testing.T) {
	from := snappedAt("A", orb.Point{0, 0})
	to := snappedAt("B", orb.Point{1, 1})

	r := &LegRouter{Provider: directions.NewMockRouteProvider([]directions.MockLeg{
		{From: from.Point, To: to.Point, Mode: domain.ModeWalking, Seconds: 120, Meters: 400},
	})}

	leg := r.RouteLeg(context.Background(), 0, from, to, domain.ModeWalking)
	if leg.Status != domain.LegStatusOK {
		t.Fatalf("status = %q, want ok", leg.Status)
	}
	if leg.DurationSeconds != 120 || leg.DistanceMeters != 400 {
		t.Fatalf("leg metrics = %d/%d, want 120/400", leg.DurationSeconds, leg.DistanceMeters)
	}
	if len(leg.Geometry) != 2 {
		t.Fatalf("default geometry length = %d, want endpoints only", len(leg.Geometry))
	}
	if leg.From != "A" || leg.To != "B" {
		t.Fatalf("leg endpoints = %q -> %q, want A -> B", leg.From, leg.To)
	}
}

func TestRouteLegNoRoute(t *testing.T) {
	from := snappedAt("A", orb.Point{0, 0})
	to := snappedAt("B", orb.Point{1, 1})

	r := &LegRouter{Provider: directions.NewMockRouteProvider([]directions.MockLeg{
		{From: from.Point, To: to.Point, Mode: domain.ModeDriving, Err: ports.ErrNoRoute},
	})}

	leg := r.RouteLeg(context.Background(), 3, from, to, domain.ModeDriving)
	if leg.Status != domain.LegStatusNoRoute {
		t.Fatalf("status = %q, want no_route", leg.Status)
	}
	if leg.Index != 3 {
		t.Fatalf("index = %d, want 3", leg.Index)
	}
}

func TestRouteLegRequestFailed(t *testing.T) {
	from := snappedAt("A", orb.Point{0, 0})
	to := snappedAt("B", orb.Point{1, 1})

	r := &LegRouter{Provider: directions.NewMockRouteProvider([]directions.MockLeg{
		{From: from.Point, To: to.Point, Mode: domain.ModeDriving, Err: errors.New("timeout")},
	})}

	leg := r.RouteLeg(context.Background(), 0, from, to, domain.ModeDriving)
	if leg.Status != domain.LegStatusRequestFailed {
		t.Fatalf("status = %q, want request_failed", leg.Status)
	}
}

func TestRouteLegUnknownPairIsRequestFailure(t *testing.T) {
	r := &LegRouter{Provider: directions.NewMockRouteProvider(nil)}

	leg := r.RouteLeg(context.Background(), 0,
		snappedAt("A", orb.Point{0, 0}), snappedAt("B", orb.Point{1, 1}), domain.ModeDriving)
	if leg.Status != domain.LegStatusRequestFailed {
		t.Fatalf("status = %q, want request_failed", leg.Status)
	}
}
