package services

import (
	"testing"
	"tour-route-service/internal/domain"

	"github.com/paulmach/orb"
)

func testEdges() []domain.RoadEdge {
	return []domain.RoadEdge{
		{EdgeID: 1, Geometry: orb.LineString{{0, 0}, {0, 1}}},
		{EdgeID: 2, Geometry: orb.LineString{{1, 0}, {1, 1}}},
		{EdgeID: 3, Geometry: orb.LineString{{2, 0}, {2, 1}, {3, 1}}},
	}
}

func TestEdgeIndexNearest(t *testing.T) {
	ix := NewEdgeIndex(testEdges())

	edge, dist, ok := ix.Nearest(orb.Point{0.9, 0.5})
	if !ok {
		t.Fatal("expected a nearest edge")
	}
	if edge.EdgeID != 2 {
		t.Fatalf("nearest edge = %d, want 2", edge.EdgeID)
	}
	if dist < 0.0999 || dist > 0.1001 {
		t.Fatalf("distance = %v, want ~0.1", dist)
	}
}

func TestEdgeIndexNearestEmpty(t *testing.T) {
	ix := NewEdgeIndex(nil)

	_, _, ok := ix.Nearest(orb.Point{0, 0})
	if ok {
		t.Fatal("empty index must report no nearest edge")
	}
}

func TestEdgeIndexTieBreaksTowardLoadOrder(t *testing.T) {
	edges := []domain.RoadEdge{
		{EdgeID: 7, Geometry: orb.LineString{{0, 0}, {0, 1}}},
		{EdgeID: 8, Geometry: orb.LineString{{0, 0}, {0, 1}}},
	}
	ix := NewEdgeIndex(edges)

	edge, _, ok := ix.Nearest(orb.Point{0.5, 0.5})
	if !ok {
		t.Fatal("expected a nearest edge")
	}
	if edge.EdgeID != 7 {
		t.Fatalf("tie broke toward edge %d, want first-loaded 7", edge.EdgeID)
	}
}

func TestNewEdgeIndexDropsDegenerateEdges(t *testing.T) {
	edges := []domain.RoadEdge{
		{EdgeID: 1, Geometry: orb.LineString{{0, 0}}},
		{EdgeID: 2, Geometry: orb.LineString{}},
		{EdgeID: 3, Geometry: orb.LineString{{0, 0}, {1, 1}}},
	}

	ix := NewEdgeIndex(edges)
	if ix.Len() != 1 {
		t.Fatalf("index holds %d edges, want 1", ix.Len())
	}
}

func TestClosestOnLineClampsToSegmentEnds(t *testing.T) {
	ls := orb.LineString{{0, 0}, {1, 0}}

	pt, _ := closestOnLine(ls, orb.Point{2, 1})
	if pt != (orb.Point{1, 0}) {
		t.Fatalf("projection = %v, want segment end {1 0}", pt)
	}

	pt, _ = closestOnLine(ls, orb.Point{-1, 1})
	if pt != (orb.Point{0, 0}) {
		t.Fatalf("projection = %v, want segment start {0 0}", pt)
	}
}

func TestClosestOnLineInteriorProjection(t *testing.T) {
	ls := orb.LineString{{0, 0}, {2, 0}}

	pt, dist := closestOnLine(ls, orb.Point{1, 1})
	if pt != (orb.Point{1, 0}) {
		t.Fatalf("projection = %v, want {1 0}", pt)
	}
	if dist != 1 {
		t.Fatalf("distance = %v, want 1", dist)
	}
}
