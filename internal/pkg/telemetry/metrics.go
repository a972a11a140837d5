package telemetry

// Span and attribute names used for instrumentation.
const (
	SpanComputeRoute = "gateway.compute_route"
	SpanGeocode      = "gateway.geocode"
	SpanLoadBoundary = "gateway.load_boundary"

	AttrCapability = "gateway.capability"
	AttrCacheHit   = "gateway.cache_hit"
	AttrRegionKey  = "geofence.region_key"
	AttrSections   = "route.sections"
	AttrItems      = "geocode.items"
)
