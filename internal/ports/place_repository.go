package ports

import (
	"context"
	"tour-route-service/internal/domain"
)

// Port: a boundary for retrieving Place records from a data source.
type PlaceRepository interface {
	// Retrieve all places available as route stops.
	ListPlaces(ctx context.Context) ([]*domain.Place, error)
}
