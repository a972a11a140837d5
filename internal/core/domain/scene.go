package domain

// ObjectID identifies a map object on the surface.
type ObjectID string

// LayerID identifies a layer on the surface.
type LayerID string

// ObjectKind enumerates the map primitives.
type ObjectKind string

const (
	ObjectMarker    ObjectKind = "marker"
	ObjectPolyline  ObjectKind = "polyline"
	ObjectPolygon   ObjectKind = "polygon"
	ObjectCircle    ObjectKind = "circle"
	ObjectRectangle ObjectKind = "rectangle"
	ObjectGroup     ObjectKind = "group"
)

// Style is the stroke/fill description understood by the renderer.
// A nil *Style means SDK defaults.
type Style struct {
	StrokeColor string  `json:"stroke_color,omitempty"`
	FillColor   string  `json:"fill_color,omitempty"`
	LineWidth   float64 `json:"line_width,omitempty"`
}

// Icon is an inline marker icon.
type Icon struct {
	SVG     string  `json:"svg"`
	AnchorX float64 `json:"anchor_x"`
	AnchorY float64 `json:"anchor_y"`
}

// TapEvent is delivered to tap handlers.
type TapEvent struct {
	Screen ScreenPoint
	Geo    GeoPoint
	// Object is the tapped object, or nil for a tap on the bare map.
	Object *MapObject
}

// TapHandler reacts to a tap.
type TapHandler func(TapEvent)

// MapObject is one renderable primitive. Children are only used by groups.
type MapObject struct {
	ID       ObjectID     `json:"id,omitempty"`
	Kind     ObjectKind   `json:"kind"`
	Position *GeoPoint    `json:"position,omitempty"`
	Path     []GeoPoint   `json:"path,omitempty"`
	Rings    [][]GeoPoint `json:"rings,omitempty"`
	Radius   float64      `json:"radius,omitempty"`
	Rect     *Bounds      `json:"rect,omitempty"`
	Style    *Style       `json:"style,omitempty"`
	Icon     *Icon        `json:"icon,omitempty"`
	Children []MapObject  `json:"children,omitempty"`
	// Data is application payload (maneuver instruction, cluster node).
	Data  any        `json:"data,omitempty"`
	OnTap TapHandler `json:"-"`
}

// LayerKind names what a layer holds.
type LayerKind string

const (
	LayerCluster LayerKind = "cluster"
	LayerGeoJSON LayerKind = "geojson"
)

// Layer is a named collection of objects added and removed as one unit.
type Layer struct {
	ID      LayerID     `json:"id,omitempty"`
	Kind    LayerKind   `json:"kind"`
	Objects []MapObject `json:"objects"`
	OnTap   TapHandler  `json:"-"`
}
