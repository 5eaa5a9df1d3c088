package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// Outcome tag for a single routed leg.
type LegStatus string

const (
	LegStatusOK            LegStatus = "ok"
	LegStatusNoRoute       LegStatus = "no_route"
	LegStatusRequestFailed LegStatus = "request_failed"
)

// Represents the routed path between two consecutive snapped stops.
// A Leg is created once per adjacent stop pair per build and is immutable
// after creation. Failed legs keep empty geometry and zero metrics.
type Leg struct {
	Index           int
	From            string
	To              string
	Geometry        orb.LineString
	DurationSeconds int
	DistanceMeters  int
	Status          LegStatus
}

func (l Leg) Succeeded() bool { return l.Status == LegStatusOK }

// Represents the full multi-leg route for one generate request.
// Totals cover successful legs only; failed legs are recorded as gaps.
// An Itinerary is immutable planning data and contains no side effects.
type Itinerary struct {
	Stops                []string
	Mode                 TravelMode
	Legs                 []Leg
	TotalDurationSeconds int
	TotalDistanceMeters  int
	GeneratedAt          time.Time
}

// SuccessfulLegs counts legs that contributed to the totals.
func (it *Itinerary) SuccessfulLegs() int {
	n := 0
	for _, l := range it.Legs {
		if l.Succeeded() {
			n++
		}
	}
	return n
}

// A 2-D badge position for one leg's index label, derived from the leg
// midpoint and displaced until clear of previously placed anchors.
// Anchors are recomputed on every read and never persisted.
type LabelAnchor struct {
	LegIndex int
	Position orb.Point
}
