package domain

// TravelMode selects the vehicle profile used by the routing capability.
type TravelMode string

const (
	TravelModeCar        TravelMode = "car"
	TravelModeTruck      TravelMode = "truck"
	TravelModePedestrian TravelMode = "pedestrian"
)

// RouteRequest asks for a route between two resolved coordinates.
type RouteRequest struct {
	Origin      *GeoPoint  `json:"origin,omitempty"`
	Destination *GeoPoint  `json:"destination,omitempty"`
	TravelMode  TravelMode `json:"travel_mode"`
}

// Valid reports whether both endpoints are present and numeric.
func (r RouteRequest) Valid() bool {
	return r.Origin != nil && r.Destination != nil && r.Origin.Valid() && r.Destination.Valid()
}

// RouteResult is the routing capability's answer.
type RouteResult struct {
	Sections []Section `json:"sections"`
}

// Section is one contiguous leg of a route.
type Section struct {
	Path          []GeoPoint    `json:"path"`
	Maneuvers     []Maneuver    `json:"maneuvers"`
	Summary       TravelSummary `json:"summary"`
	RoadNameTrace []string      `json:"road_name_trace"`
}

// Maneuver is a single instruction. Offset indexes into the section's Path.
type Maneuver struct {
	Offset      int    `json:"offset"`
	Instruction string `json:"instruction"`
	Direction   string `json:"direction,omitempty"`
	Action      string `json:"action"`
}

// TravelSummary holds per-section totals.
type TravelSummary struct {
	DistanceMeters  int `json:"distance_meters"`
	DurationSeconds int `json:"duration_seconds"`
}
