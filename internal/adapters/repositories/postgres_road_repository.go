package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tour-route-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Postgres-backed implementation of the RoadNetworkRepository port.
// Edge geometries are stored as GeoJSON LineStrings.
type PostgresRoadRepository struct{ DB *sql.DB }

func NewPostgresRoadRepository(db *sql.DB) *PostgresRoadRepository {
	return &PostgresRoadRepository{DB: db}
}

// Return the full road-edge collection in stable edge_id order.
func (r *PostgresRoadRepository) ListEdges(ctx context.Context) ([]domain.RoadEdge, error) {
	if r.DB == nil {
		return nil, errors.New("road repository: DB is nil")
	}

	query := `
	SELECT
		edge_id,
		geometry
	FROM road_edges
	ORDER BY edge_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list edges: query road_edges table: %w", err)
	}
	defer rows.Close()

	edges := make([]domain.RoadEdge, 0, 256)
	for rows.Next() {
		var id int64
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("list edges: scan row: %w", err)
		}

		geom, err := geojson.UnmarshalGeometry(raw)
		if err != nil {
			return nil, fmt.Errorf("list edges: decode geometry for edge %d: %w", id, err)
		}

		ls, ok := geom.Geometry().(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("list edges: edge %d geometry is %T, want LineString", id, geom.Geometry())
		}

		edges = append(edges, domain.RoadEdge{EdgeID: id, Geometry: ls})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list edges: row iteration: %w", err)
	}

	return edges, nil
}
