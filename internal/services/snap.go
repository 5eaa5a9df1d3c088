package services

import (
	"fmt"
	"strings"
	"tour-route-service/internal/domain"
)

// Snapper resolves place names onto the road network.
//
// Snapping failures are never fatal to an itinerary build: lookup and
// coordinate errors mean "skip this stop", and a missing road network means
// "use the raw coordinate". Only the caller decides what a skip costs.
type Snapper struct {
	places map[string]*domain.Place
	index  *EdgeIndex
}

func NewSnapper(places []*domain.Place, index *EdgeIndex) *Snapper {
	byName := make(map[string]*domain.Place, len(places))
	for _, p := range places {
		byName[p.Name] = p
	}
	return &Snapper{places: byName, index: index}
}

// Snap projects the named place onto the nearest road edge.
//
// Returns domain.ErrPlaceNotFound or domain.ErrInvalidCoordinate (wrapped
// with the name) when the stop must be skipped. When the edge index is empty
// the raw coordinate is returned with OnNetwork=false.
func (s *Snapper) Snap(name string) (domain.SnappedPoint, error) {
	name = strings.TrimSpace(name)

	place, ok := s.places[name]
	if !ok {
		return domain.SnappedPoint{}, fmt.Errorf("snap %q: %w", name, domain.ErrPlaceNotFound)
	}

	if !domain.ValidCoordinate(place.Location) {
		return domain.SnappedPoint{}, fmt.Errorf("snap %q: %w", name, domain.ErrInvalidCoordinate)
	}

	edge, _, found := s.index.Nearest(place.Location)
	if !found {
		return domain.SnappedPoint{Place: name, Point: place.Location, OnNetwork: false}, nil
	}

	projected, _ := closestOnLine(edge.Geometry, place.Location)
	return domain.SnappedPoint{Place: name, Point: projected, OnNetwork: true}, nil
}
