package usecases

import (
	"log/slog"
	"math"
	"strconv"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
)

var probeStyle = &domain.Style{
	StrokeColor: "rgba(55, 85, 170, 0.6)",
	LineWidth:   2,
	FillColor:   "rgba(0, 128, 0, 0.7)",
}

// handleMapTap is registered once and stays active in every mode.
func (c *MapController) handleMapTap(ev domain.TapEvent) {
	if c.closed {
		return
	}
	coord, err := c.surface.ScreenToGeo(ev.Screen)
	if err != nil {
		c.log.Warn("tap outside the map", slog.Any("error", err))
		return
	}

	if c.probe != "" {
		c.surface.RemoveObject(c.probe)
	}
	pos := coord
	c.probe = c.surface.AddObject(domain.MapObject{
		Kind:     domain.ObjectCircle,
		Position: &pos,
		Radius:   c.cfg.ProbeRadiusMeters,
		Style:    probeStyle,
	})

	vm := c.view
	vm.Clicked = &domain.ClickReadout{Lat: coord.Lat, Lon: coord.Lon, Label: FormatCoordinate(coord)}
	c.setPanel(vm)
}

// FormatCoordinate renders a coordinate as e.g. "34.0522N 118.2437W".
func FormatCoordinate(p domain.GeoPoint) string {
	return hemisphere(p.Lat, "N", "S") + " " + hemisphere(p.Lon, "E", "W")
}

func hemisphere(v float64, pos, neg string) string {
	suffix := neg
	if v > 0 {
		suffix = pos
	}
	r := math.Abs(math.Round(v*1e4) / 1e4)
	return strconv.FormatFloat(r, 'f', -1, 64) + suffix
}
