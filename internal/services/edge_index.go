package services

import (
	"math"
	"tour-route-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// EdgeIndex answers nearest-edge queries over the loaded road network.
//
// The search is an exhaustive linear scan in load order. That matches the
// small per-area datasets this service works with; the type exists so a
// spatial index could replace the scan without touching callers.
type EdgeIndex struct {
	edges []domain.RoadEdge
}

func NewEdgeIndex(edges []domain.RoadEdge) *EdgeIndex {
	kept := make([]domain.RoadEdge, 0, len(edges))
	for _, e := range edges {
		if len(e.Geometry) >= 2 {
			kept = append(kept, e)
		}
	}
	return &EdgeIndex{edges: kept}
}

func (ix *EdgeIndex) Len() int { return len(ix.edges) }

// Nearest returns the edge minimizing planar distance to p and that distance.
// ok is false when the index holds no edges; callers must treat that as
// "snapping unavailable" and fall back to the raw coordinate.
// Ties break toward the first edge in load order.
func (ix *EdgeIndex) Nearest(p orb.Point) (domain.RoadEdge, float64, bool) {
	if len(ix.edges) == 0 {
		return domain.RoadEdge{}, 0, false
	}

	best := 0
	bestDist := math.MaxFloat64
	for i, e := range ix.edges {
		_, d := closestOnLine(e.Geometry, p)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	return ix.edges[best], bestDist, true
}

// closestOnLine returns the point on ls closest to p and the planar distance
// between them. Each segment is handled with an orthogonal projection
// clamped to the segment ends.
func closestOnLine(ls orb.LineString, p orb.Point) (orb.Point, float64) {
	if len(ls) == 0 {
		return orb.Point{}, math.MaxFloat64
	}

	bestPt := ls[0]
	bestDist := planar.Distance(ls[0], p)

	for i := 1; i < len(ls); i++ {
		c := projectOnSegment(ls[i-1], ls[i], p)
		if d := planar.Distance(c, p); d < bestDist {
			bestDist = d
			bestPt = c
		}
	}

	return bestPt, bestDist
}

func projectOnSegment(a, b, p orb.Point) orb.Point {
	dx := b[0] - a[0]
	dy := b[1] - a[1]

	segLen2 := dx*dx + dy*dy
	if segLen2 == 0 {
		return a
	}

	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / segLen2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}
