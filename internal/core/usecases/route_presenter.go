package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/geospatial"
)

var (
	routeLineStyle = &domain.Style{StrokeColor: "rgba(0, 128, 255, 0.7)", LineWidth: 8}

	maneuverDotIcon = &domain.Icon{
		SVG: `<svg width="18" height="18" xmlns="http://www.w3.org/2000/svg">` +
			`<circle cx="8" cy="8" r="8" fill="#1b468d" stroke="white" stroke-width="1" /></svg>`,
		AnchorX: 8,
		AnchorY: 8,
	}
)

func (c *MapController) presentRoute(gen uint64, p domain.ModeParams) {
	req := domain.RouteRequest{Origin: p.Origin, Destination: p.Destination, TravelMode: p.TravelMode}
	if req.TravelMode == "" {
		req.TravelMode = c.cfg.TravelMode
	}
	if !req.Valid() {
		c.log.Debug("route activation without both endpoints")
		return
	}
	submit(c, gen, c.cfg.ServiceTimeout, func(ctx context.Context) (*domain.RouteResult, error) {
		return c.svc.Routing.ComputeRoute(ctx, req)
	}, c.resolveRoute)
}

// resolveRoute is the route presenter's only resolution point.
func (c *MapController) resolveRoute(res Result[*domain.RouteResult]) {
	if !c.current(res.Gen, "routing") {
		return
	}
	if res.Err != nil || res.Value == nil {
		c.fail("routing", res.Err)
		return
	}
	c.renderRoute(res.Value)
	c.setPanel(c.routePanel(res.Value))
}

func (c *MapController) renderRoute(r *domain.RouteResult) {
	var (
		view domain.Bounds
		have bool
	)
	for i, sec := range r.Sections {
		if len(sec.Path) < 2 {
			c.skip("section_path", slog.Int("section", i), slog.Int("points", len(sec.Path)))
		} else {
			c.addObject(domain.MapObject{Kind: domain.ObjectPolyline, Path: sec.Path, Style: routeLineStyle})
			if b, ok := geospatial.PathBounds(sec.Path); ok {
				if have {
					view = geospatial.Union(view, b)
				} else {
					view, have = b, true
				}
			}
		}

		markers := make([]domain.MapObject, 0, len(sec.Maneuvers))
		for j, m := range sec.Maneuvers {
			if m.Offset < 0 || m.Offset >= len(sec.Path) {
				c.skip("maneuver_offset", slog.Int("section", i), slog.Int("maneuver", j), slog.Int("offset", m.Offset))
				continue
			}
			pos := sec.Path[m.Offset]
			markers = append(markers, domain.MapObject{
				Kind:     domain.ObjectMarker,
				Position: &pos,
				Icon:     maneuverDotIcon,
				Data:     m.Instruction,
			})
		}
		if len(markers) > 0 {
			c.addObject(domain.MapObject{Kind: domain.ObjectGroup, Children: markers, OnTap: c.handleManeuverTap})
		}
	}
	if have {
		c.surface.SetViewBounds(view)
	}
}

func (c *MapController) handleManeuverTap(ev domain.TapEvent) {
	if ev.Object == nil || ev.Object.Position == nil {
		return
	}
	text, _ := ev.Object.Data.(string)
	pos := *ev.Object.Position
	c.surface.SetCenter(pos)
	c.bubble.Show(pos, text)
}

// routePanel builds the panel for a route.
func (c *MapController) routePanel(r *domain.RouteResult) domain.PanelViewModel {
	vm := RoutePanel(r)
	vm.Mode = c.state.Mode
	vm.Clicked = c.view.Clicked
	return vm
}

// RoutePanel derives the side-panel view-model for a computed route. The
// turn list carries every maneuver, including ones whose offset misses the
// path and so have no marker.
func RoutePanel(r *domain.RouteResult) domain.PanelViewModel {
	vm := domain.PanelViewModel{Mode: domain.ModeRoute}
	seen := make(map[string]struct{})
	var seconds int
	for _, sec := range r.Sections {
		for _, name := range sec.RoadNameTrace {
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			vm.WaypointLabels = append(vm.WaypointLabels, name)
		}
		vm.DistanceMeters += sec.Summary.DistanceMeters
		seconds += sec.Summary.DurationSeconds
		for _, m := range sec.Maneuvers {
			vm.Maneuvers = append(vm.Maneuvers, domain.ManeuverItem{
				IconClass:   ManeuverIconClass(m),
				Instruction: m.Instruction,
			})
		}
	}
	vm.DurationFormatted = FormatDuration(seconds)
	return vm
}

// FormatDuration renders seconds as "<m> minutes <s> seconds".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d minutes %d seconds", seconds/60, seconds%60)
}

// ManeuverIconClass maps a maneuver to its stylesheet class, e.g. "arrow rightturn".
func ManeuverIconClass(m domain.Maneuver) string {
	return "arrow " + m.Direction + m.Action
}
