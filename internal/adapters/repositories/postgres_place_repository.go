package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tour-route-service/internal/domain"

	"github.com/paulmach/orb"
)

// Postgres-backed implementation of the PlaceRepository port.
type PostgresPlaceRepository struct{ DB *sql.DB }

func NewPostgresPlaceRepository(db *sql.DB) *PostgresPlaceRepository {
	return &PostgresPlaceRepository{DB: db}
}

// Return all places stored in the database, ordered by name.
func (r *PostgresPlaceRepository) ListPlaces(ctx context.Context) ([]*domain.Place, error) {
	if r.DB == nil {
		return nil, errors.New("place repository: DB is nil")
	}

	query := `
	SELECT
		name,
		lon,
		lat
	FROM places
	ORDER BY name;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]*domain.Place, 0, 64)
	for rows.Next() {
		var name string
		var lon, lat float64
		if err := rows.Scan(&name, &lon, &lat); err != nil {
			return nil, fmt.Errorf("list places: scan row: %w", err)
		}
		places = append(places, &domain.Place{Name: name, Location: orb.Point{lon, lat}})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}
