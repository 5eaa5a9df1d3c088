package ports

import (
	"context"
	"tour-route-service/internal/domain"
)

// Port: a boundary for loading the road-network edge collection.
// The engine treats the returned geometries as read-only input.
type RoadNetworkRepository interface {
	ListEdges(ctx context.Context) ([]domain.RoadEdge, error)
}
