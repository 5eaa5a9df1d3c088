package domain

import (
	"math"

	"github.com/paulmach/orb"
)

// Travel mode accepted by the directions provider.
type TravelMode string

const (
	ModeDriving TravelMode = "driving"
	ModeWalking TravelMode = "walking"
)

func (m TravelMode) Valid() bool {
	return m == ModeDriving || m == ModeWalking
}

// Represents one polyline segment of the road network.
// Geometry is read-only input supplied by the road network provider.
type RoadEdge struct {
	EdgeID   int64
	Geometry orb.LineString
}

// ValidCoordinate reports whether p is a usable lon/lat pair.
func ValidCoordinate(p orb.Point) bool {
	if math.IsNaN(p.Lon()) || math.IsNaN(p.Lat()) {
		return false
	}
	return p.Lon() >= -180 && p.Lon() <= 180 && p.Lat() >= -90 && p.Lat() <= 90
}
