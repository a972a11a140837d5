package usecases

import (
	"context"
	"encoding/json"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/metrics"
)

const locationsCacheKey = "locations:all"

// LocationService serves the named locations offered in the pickers and used
// as cluster input.
type LocationService struct {
	locations ports.LocationRepository
	cache     ports.CacheService
}

// NewLocationService creates a new LocationService. cache may be nil.
func NewLocationService(locations ports.LocationRepository, cache ports.CacheService) *LocationService {
	return &LocationService{locations: locations, cache: cache}
}

// List returns every named location in display order.
func (s *LocationService) List(ctx context.Context) ([]domain.NamedLocation, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, locationsCacheKey); err == nil {
			var locs []domain.NamedLocation
			if err := json.Unmarshal(data, &locs); err == nil {
				metrics.CacheHits.WithLabelValues("locations").Inc()
				return locs, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("locations").Inc()
	}

	locs, err := s.locations.List(ctx)
	if err != nil {
		return nil, err
	}

	// Cache for 5 minutes
	if s.cache != nil {
		if data, err := json.Marshal(locs); err == nil {
			_ = s.cache.Set(ctx, locationsCacheKey, data, 300)
		}
	}

	return locs, nil
}

// Get returns a single location.
func (s *LocationService) Get(ctx context.Context, id string) (*domain.NamedLocation, error) {
	cacheKey := "locations:id:" + id
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var loc domain.NamedLocation
			if err := json.Unmarshal(data, &loc); err == nil {
				return &loc, nil
			}
		}
	}

	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(loc); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return loc, nil
}

// ListExcluding returns every location except the one with the given id.
// It feeds the destination picker, which never offers the selected origin.
func (s *LocationService) ListExcluding(ctx context.Context, id string) ([]domain.NamedLocation, error) {
	locs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return locs, nil
	}
	out := make([]domain.NamedLocation, 0, len(locs))
	for _, l := range locs {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out, nil
}

// Resolve returns the coordinate of a location, or nil if id is empty or
// unknown. A missing endpoint makes route activation a no-op.
func (s *LocationService) Resolve(ctx context.Context, id string) *domain.GeoPoint {
	if id == "" {
		return nil
	}
	loc, err := s.Get(ctx, id)
	if err != nil || loc == nil {
		return nil
	}
	p := loc.Point()
	return &p
}

// ClusterPoints turns every location into a weight-1 cluster input.
func (s *LocationService) ClusterPoints(ctx context.Context) ([]domain.ClusterInputPoint, error) {
	locs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	pts := make([]domain.ClusterInputPoint, 0, len(locs))
	for _, l := range locs {
		pts = append(pts, domain.ClusterInputPoint{Lat: l.Latitude, Lon: l.Longitude, Weight: 1, Label: l.DisplayName})
	}
	return pts, nil
}
