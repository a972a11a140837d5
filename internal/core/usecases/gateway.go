package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/metrics"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/telemetry"
)

// ErrEmptyRoute is returned when the routing adapter reports neither a
// result nor an error.
var ErrEmptyRoute = errors.New("routing returned no result")

const (
	geocodeTTL  = 600
	boundaryTTL = 3600
)

// ServiceGateway fronts the three external capabilities with tracing,
// metrics and, for geocoding and boundaries, a read-through cache.
// Route results are never cached.
type ServiceGateway struct {
	routing    ports.RoutingService
	geocoding  ports.GeocodingService
	boundaries ports.BoundaryLoader
	cache      ports.CacheService
	tracer     trace.Tracer
}

// NewServiceGateway creates a gateway. cache may be nil.
func NewServiceGateway(routing ports.RoutingService, geocoding ports.GeocodingService, boundaries ports.BoundaryLoader, cache ports.CacheService) *ServiceGateway {
	return &ServiceGateway{
		routing:    routing,
		geocoding:  geocoding,
		boundaries: boundaries,
		cache:      cache,
		tracer:     telemetry.Tracer(),
	}
}

// ComputeRoute implements ports.RoutingService.
func (g *ServiceGateway) ComputeRoute(ctx context.Context, req domain.RouteRequest) (res *domain.RouteResult, err error) {
	ctx, span := g.start(ctx, telemetry.SpanComputeRoute, "routing")
	defer func(start time.Time) { g.finish(span, "routing", start, err) }(time.Now())

	res, err = g.routing.ComputeRoute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("compute route: %w", err)
	}
	if res == nil {
		return nil, ErrEmptyRoute
	}
	span.SetAttributes(attribute.Int(telemetry.AttrSections, len(res.Sections)))
	return res, nil
}

// Geocode implements ports.GeocodingService.
func (g *ServiceGateway) Geocode(ctx context.Context, q ports.GeocodeQuery) (items []ports.GeocodeItem, err error) {
	ctx, span := g.start(ctx, telemetry.SpanGeocode, "geocoding")
	defer func(start time.Time) { g.finish(span, "geocoding", start, err) }(time.Now())

	cacheKey := fmt.Sprintf("geocode:%s:%.4f:%.4f:%s", q.Text, q.At.Lat, q.At.Lon, q.CountryFilter)
	if data, ok := g.cached(ctx, span, "geocode", cacheKey); ok {
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
	}

	items, err = g.geocoding.Geocode(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", q.Text, err)
	}
	span.SetAttributes(attribute.Int(telemetry.AttrItems, len(items)))

	if g.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = g.cache.Set(ctx, cacheKey, data, geocodeTTL)
		}
	}
	return items, nil
}

// LoadBoundary implements ports.BoundaryLoader.
func (g *ServiceGateway) LoadBoundary(ctx context.Context, key string) (doc []byte, err error) {
	ctx, span := g.start(ctx, telemetry.SpanLoadBoundary, "boundary")
	span.SetAttributes(attribute.String(telemetry.AttrRegionKey, key))
	defer func(start time.Time) { g.finish(span, "boundary", start, err) }(time.Now())

	cacheKey := "boundary:" + key
	if data, ok := g.cached(ctx, span, "boundary", cacheKey); ok {
		return data, nil
	}

	doc, err = g.boundaries.LoadBoundary(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load boundary %s: %w", key, err)
	}

	if g.cache != nil {
		_ = g.cache.Set(ctx, cacheKey, doc, boundaryTTL)
	}
	return doc, nil
}

func (g *ServiceGateway) start(ctx context.Context, name, capability string) (context.Context, trace.Span) {
	ctx, span := g.tracer.Start(ctx, name)
	span.SetAttributes(attribute.String(telemetry.AttrCapability, capability))
	return ctx, span
}

func (g *ServiceGateway) finish(span trace.Span, capability string, start time.Time, err error) {
	metrics.ObserveCall(capability, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (g *ServiceGateway) cached(ctx context.Context, span trace.Span, operation, key string) ([]byte, bool) {
	if g.cache == nil {
		return nil, false
	}
	data, err := g.cache.Get(ctx, key)
	hit := err == nil
	span.SetAttributes(attribute.Bool(telemetry.AttrCacheHit, hit))
	if hit {
		metrics.CacheHits.WithLabelValues(operation).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(operation).Inc()
	}
	return data, hit
}
