package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
)

// LocationRepo implements ports.LocationRepository with pgx.
type LocationRepo struct {
	db *DB
}

// NewLocationRepo creates a new LocationRepo.
func NewLocationRepo(db *DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// List returns every location in seed order.
func (r *LocationRepo) List(ctx context.Context) ([]domain.NamedLocation, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, display_name, COALESCE(address, ''), latitude, longitude
		FROM locations
		ORDER BY position, display_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []domain.NamedLocation
	for rows.Next() {
		var l domain.NamedLocation
		if err := rows.Scan(&l.ID, &l.DisplayName, &l.Address, &l.Latitude, &l.Longitude); err != nil {
			return nil, err
		}
		locs = append(locs, l)
	}
	return locs, rows.Err()
}

// GetByID returns a single location or ports.ErrNotFound.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*domain.NamedLocation, error) {
	var l domain.NamedLocation
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, display_name, COALESCE(address, ''), latitude, longitude
		FROM locations WHERE id = $1
	`, id).Scan(&l.ID, &l.DisplayName, &l.Address, &l.Latitude, &l.Longitude)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpsertBatch inserts many locations using pgx.Batch. Slice order becomes
// display order.
func (r *LocationRepo) UpsertBatch(ctx context.Context, locs []domain.NamedLocation) error {
	batch := &pgx.Batch{}
	for i, l := range locs {
		batch.Queue(`
			INSERT INTO locations (id, display_name, address, latitude, longitude, position)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE
			SET display_name = EXCLUDED.display_name, address = EXCLUDED.address,
			    latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude,
			    position = EXCLUDED.position
		`, l.ID, l.DisplayName, l.Address, l.Latitude, l.Longitude, i)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range locs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}
