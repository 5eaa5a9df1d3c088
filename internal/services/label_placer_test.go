package services

import (
	"math"
	"testing"
	"tour-route-service/internal/domain"

	"github.com/paulmach/orb"
)

func TestPlaceLabelsKeepsSeparatedMidpoints(t *testing.T) {
	legs := []domain.Leg{
		{Index: 0, Geometry: orb.LineString{{0, 0}, {0.5, 0.5}, {1, 1}}},
		{Index: 1, Geometry: orb.LineString{{5, 5}, {5.5, 5.5}, {6, 6}}},
	}

	anchors := PlaceLabels(legs)
	if len(anchors) != 2 {
		t.Fatalf("expected 2 anchors, got %d", len(anchors))
	}
	if anchors[0].Position != (orb.Point{0.5, 0.5}) {
		t.Fatalf("anchor 0 = %v, want untouched midpoint", anchors[0].Position)
	}
	if anchors[1].Position != (orb.Point{5.5, 5.5}) {
		t.Fatalf("anchor 1 = %v, want untouched midpoint", anchors[1].Position)
	}
}

func TestPlaceLabelsDisplacesCollidingAnchor(t *testing.T) {
	mid := orb.Point{2, 2}
	legs := []domain.Leg{
		{Index: 0, Geometry: orb.LineString{{1, 1}, mid, {3, 3}}},
		{Index: 1, Geometry: orb.LineString{{3, 3}, mid, {1, 1}}},
	}

	anchors := PlaceLabels(legs)
	if len(anchors) != 2 {
		t.Fatalf("expected 2 anchors, got %d", len(anchors))
	}
	if anchors[0].Position != mid {
		t.Fatalf("first anchor = %v, want unperturbed midpoint", anchors[0].Position)
	}

	second := anchors[1].Position
	dLon := math.Abs(second.Lon() - mid.Lon())
	dLat := math.Abs(second.Lat() - mid.Lat())
	if dLon < labelMinSeparation && dLat < labelMinSeparation {
		t.Fatalf("second anchor %v still collides with the first", second)
	}

	// Displacement walks +lon/+lat in fixed half-separation steps, so an
	// exact overlap resolves within a couple of steps.
	if second.Lon() <= mid.Lon() || second.Lat() <= mid.Lat() {
		t.Fatalf("second anchor %v must be displaced toward +lon/+lat", second)
	}
	if dLon > 3*labelStep || dLat > 3*labelStep {
		t.Fatalf("second anchor %v displaced too far from %v", second, mid)
	}
}

func TestPlaceLabelsSkipsEmptyGeometry(t *testing.T) {
	legs := []domain.Leg{
		{Index: 0, Geometry: orb.LineString{{0, 0}, {1, 1}}},
		{Index: 1, Status: domain.LegStatusNoRoute},
		{Index: 2, Geometry: orb.LineString{{4, 4}, {5, 5}}},
	}

	anchors := PlaceLabels(legs)
	if len(anchors) != 2 {
		t.Fatalf("expected 2 anchors, got %d", len(anchors))
	}
	if anchors[0].LegIndex != 0 || anchors[1].LegIndex != 2 {
		t.Fatalf("anchor leg indexes = %d,%d, want 0,2", anchors[0].LegIndex, anchors[1].LegIndex)
	}
}

func TestPlaceLabelsEmptyInput(t *testing.T) {
	if anchors := PlaceLabels(nil); len(anchors) != 0 {
		t.Fatalf("expected no anchors, got %d", len(anchors))
	}
}
