package dto

import (
	"testing"
	"time"
	"tour-route-service/internal/domain"

	"github.com/paulmach/orb"
)

func TestDurationMinutes(t *testing.T) {
	cases := []struct {
		seconds int
		want    float64
	}{
		{0, 0},
		{900, 15},
		{642, 10.7},
		{59, 1},
		{30, 0.5},
	}
	for _, c := range cases {
		if got := DurationMinutes(c.seconds); got != c.want {
			t.Fatalf("DurationMinutes(%d) = %v, want %v", c.seconds, got, c.want)
		}
	}
}

func TestDistanceKm(t *testing.T) {
	cases := []struct {
		meters int
		want   float64
	}{
		{0, 0},
		{4500, 4.5},
		{3310, 3.31},
		{1250, 1.25},
		{4, 0},
	}
	for _, c := range cases {
		if got := DistanceKm(c.meters); got != c.want {
			t.Fatalf("DistanceKm(%d) = %v, want %v", c.meters, got, c.want)
		}
	}
}

func TestNewItineraryResponse(t *testing.T) {
	now := time.Now().UTC()
	it := &domain.Itinerary{
		Stops: []string{"A", "B"},
		Mode:  domain.ModeDriving,
		Legs: []domain.Leg{{
			Index:           0,
			From:            "A",
			To:              "B",
			Status:          domain.LegStatusOK,
			Geometry:        orb.LineString{{0, 0}, {1, 1}},
			DurationSeconds: 900,
			DistanceMeters:  4500,
		}},
		TotalDurationSeconds: 900,
		TotalDistanceMeters:  4500,
		GeneratedAt:          now,
	}
	labels := []domain.LabelAnchor{{LegIndex: 0, Position: orb.Point{0.5, 0.5}}}

	res := NewItineraryResponse(it, labels)

	if res.Mode != "driving" {
		t.Fatalf("mode = %q, want driving", res.Mode)
	}
	if res.DurationMinutes != 15 {
		t.Fatalf("duration minutes = %v, want 15", res.DurationMinutes)
	}
	if res.DistanceKm != 4.5 {
		t.Fatalf("distance km = %v, want 4.5", res.DistanceKm)
	}
	if res.TotalDurationSeconds != 900 || res.TotalDistanceMeters != 4500 {
		t.Fatal("native totals must pass through unconverted")
	}

	if len(res.Legs) != 1 {
		t.Fatalf("expected 1 leg, got %d", len(res.Legs))
	}
	leg := res.Legs[0]
	if leg.Status != "ok" || len(leg.Geometry) != 2 {
		t.Fatalf("leg = %+v", leg)
	}
	if leg.Geometry[1][0] != 1 || leg.Geometry[1][1] != 1 {
		t.Fatalf("geometry[1] = %v, want [1 1]", leg.Geometry[1])
	}

	if len(res.Labels) != 1 || res.Labels[0].Lon != 0.5 || res.Labels[0].Lat != 0.5 {
		t.Fatalf("labels = %+v", res.Labels)
	}
}
