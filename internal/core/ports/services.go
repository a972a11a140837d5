package ports

import (
	"context"
	"errors"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
)

// ErrCacheMiss is returned by CacheService.Get for absent keys.
var ErrCacheMiss = errors.New("cache miss")

// RoutingService computes routes.
type RoutingService interface {
	ComputeRoute(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error)
}

// GeocodeQuery is a forward search anchored at a coordinate.
type GeocodeQuery struct {
	Text          string
	At            domain.GeoPoint
	CountryFilter string
}

// GeocodeItem is one geocoding match.
type GeocodeItem struct {
	Position         domain.GeoPoint `json:"position"`
	FormattedAddress string          `json:"formatted_address"`
}

// GeocodingService resolves text near a coordinate to positions.
type GeocodingService interface {
	Geocode(ctx context.Context, q GeocodeQuery) ([]GeocodeItem, error)
}

// BoundaryLoader fetches a raw boundary-geometry document by resource key.
type BoundaryLoader interface {
	LoadBoundary(ctx context.Context, key string) ([]byte, error)
}

// Clusterer groups points. It is synchronous and local.
type Clusterer interface {
	Cluster(points []domain.ClusterInputPoint, opts domain.ClusterOptions) []domain.ClusterNode
}

// PanelPublisher delivers the produced interface to the presentation layer.
type PanelPublisher interface {
	PublishPanel(ctx context.Context, vm domain.PanelViewModel) error
	Notify(ctx context.Context, n domain.Notification) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// PanelFeed mirrors every session's panel and notifications to observers
// outside the session.
type PanelFeed interface {
	PublishPanel(ctx context.Context, sessionID string, vm domain.PanelViewModel) error
	PublishNotification(ctx context.Context, sessionID string, n domain.Notification) error
}
