package ports

import (
	"context"
	"errors"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
)

// ErrNotFound is returned when a keyed lookup has no match.
var ErrNotFound = errors.New("not found")

// LocationRepository serves the named-location reference data.
type LocationRepository interface {
	List(ctx context.Context) ([]domain.NamedLocation, error)
	GetByID(ctx context.Context, id string) (*domain.NamedLocation, error)
	UpsertBatch(ctx context.Context, locations []domain.NamedLocation) error
}
