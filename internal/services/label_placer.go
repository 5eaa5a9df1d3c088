package services

import (
	"tour-route-service/internal/domain"

	"github.com/paulmach/orb"
)

const (
	// Separation is measured per axis in coordinate degrees, not meters.
	// Local latitude distortion is tolerable because the search radius is
	// tiny relative to the rendered map extent.
	labelMinSeparation = 0.001
	labelStep          = labelMinSeparation / 2

	// Liveness guard for degenerate geometry; not expected to trigger for
	// the small itineraries this service handles.
	labelMaxAttempts = 32
)

// PlaceLabels computes a badge anchor per leg with non-empty geometry, in
// leg order. Placement is a greedy, order-dependent heuristic: each
// candidate starts at the leg's midpoint coordinate and is displaced along
// +lon/+lat in fixed steps until clear of every previously placed anchor.
func PlaceLabels(legs []domain.Leg) []domain.LabelAnchor {
	anchors := make([]domain.LabelAnchor, 0, len(legs))
	placed := make([]orb.Point, 0, len(legs))

	for _, leg := range legs {
		if len(leg.Geometry) == 0 {
			continue
		}

		candidate := leg.Geometry[len(leg.Geometry)/2]
		for attempt := 0; attempt < labelMaxAttempts && collides(candidate, placed); attempt++ {
			candidate[0] += labelStep
			candidate[1] += labelStep
		}

		anchors = append(anchors, domain.LabelAnchor{LegIndex: leg.Index, Position: candidate})
		placed = append(placed, candidate)
	}

	return anchors
}

// collides reports whether p sits within the minimum separation of any
// already-placed anchor on both axes.
func collides(p orb.Point, placed []orb.Point) bool {
	for _, q := range placed {
		dLon := p[0] - q[0]
		dLat := p[1] - q[1]
		if dLon < 0 {
			dLon = -dLon
		}
		if dLat < 0 {
			dLat = -dLat
		}
		if dLon < labelMinSeparation && dLat < labelMinSeparation {
			return true
		}
	}
	return false
}
