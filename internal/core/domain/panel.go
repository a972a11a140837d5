package domain

// PanelViewModel is the complete display state for the side panel.
// It is replaced wholesale, never patched.
type PanelViewModel struct {
	Mode              Mode           `json:"mode"`
	WaypointLabels    []string       `json:"waypoint_labels"`
	DistanceMeters    int            `json:"distance_meters"`
	DurationFormatted string         `json:"duration_formatted"`
	Maneuvers         []ManeuverItem `json:"maneuvers"`
	Clicked           *ClickReadout  `json:"clicked,omitempty"`
}

// ManeuverItem is one row of the turn list.
type ManeuverItem struct {
	IconClass   string `json:"icon_class"`
	Instruction string `json:"instruction"`
}

// ClickReadout is the last probed coordinate.
type ClickReadout struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// NotificationLevel grades user-visible messages.
type NotificationLevel string

// NotifyError marks a failed external call.
const NotifyError NotificationLevel = "error"

// Notification is a user-visible message.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}
