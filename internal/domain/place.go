package domain

import "github.com/paulmach/orb"

// Represents a named tourist spot from the loaded dataset.
// Places are immutable reference data; the dataset is deduplicated by name
// before the core ever sees it.
type Place struct {
	Name     string
	Location orb.Point
}

// A geographic coordinate resolved onto the road network.
// When OnNetwork is false the road network was unavailable (or the point
// could not be projected) and Point holds the place's raw coordinate.
type SnappedPoint struct {
	Place     string
	Point     orb.Point
	OnNetwork bool
}
