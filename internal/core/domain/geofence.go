package domain

// GeofenceRegion is the parsed boundary data for one region key.
// Rings of each polygon follow GeoJSON order: outer ring first, holes after.
type GeofenceRegion struct {
	RegionKey string         `json:"region_key"`
	Polygons  [][][]GeoPoint `json:"polygons"`
	// Others holds non-polygon members of the document (points, lines).
	Others []Geometry `json:"others,omitempty"`
}

// GeometryKind names a non-polygon geometry found in a boundary document.
type GeometryKind string

const (
	GeometryPoint      GeometryKind = "point"
	GeometryLineString GeometryKind = "linestring"
)

// Geometry is a single point or line carried alongside the polygons.
type Geometry struct {
	Kind        GeometryKind `json:"kind"`
	Coordinates []GeoPoint   `json:"coordinates"`
}
