package domain

import "fmt"

// Mode is the active visualization behaviour.
type Mode int

const (
	ModeNone Mode = iota
	ModeRoute
	ModeCluster
	ModeGeofence
	ModeClickProbe
	ModeStaticPolyline
	ModeStaticCircle
	ModeStaticRectangle
)

var modeNames = [...]string{
	ModeNone:            "none",
	ModeRoute:           "route",
	ModeCluster:         "cluster",
	ModeGeofence:        "geofence",
	ModeClickProbe:      "mouseclick",
	ModeStaticPolyline:  "polyline",
	ModeStaticCircle:    "circle",
	ModeStaticRectangle: "rectangle",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a dropdown value to a Mode. The empty string is ModeNone.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeNone, nil
	}
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeNone, fmt.Errorf("unknown mode %q", s)
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ModeParams carries the parameters of every mode; each mode reads only its own.
type ModeParams struct {
	Origin      *GeoPoint  `json:"origin,omitempty"`
	Destination *GeoPoint  `json:"destination,omitempty"`
	TravelMode  TravelMode `json:"travel_mode,omitempty"`

	Points    []ClusterInputPoint `json:"points,omitempty"`
	Eps       float64             `json:"eps,omitempty"`
	MinWeight int                 `json:"min_weight,omitempty"`

	RegionKey string `json:"region,omitempty"`
}

// ActiveModeState is owned by the controller and changed only by activation.
type ActiveModeState struct {
	Mode       Mode       `json:"mode"`
	Params     ModeParams `json:"params"`
	Generation uint64     `json:"generation"`
}
