package here

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/geospatial"
)

// routeReturn is the fixed response shape requested from Routing v8.
const routeReturn = "polyline,turnByTurnActions,actions,instructions,travelSummary"

type routesResponse struct {
	Routes []struct {
		Sections []sectionJSON `json:"sections"`
	} `json:"routes"`
}

type sectionJSON struct {
	Polyline          string       `json:"polyline"`
	Actions           []actionJSON `json:"actions"`
	TurnByTurnActions []actionJSON `json:"turnByTurnActions"`
	TravelSummary     struct {
		Length   int `json:"length"`
		Duration int `json:"duration"`
	} `json:"travelSummary"`
}

type actionJSON struct {
	Action      string    `json:"action"`
	Offset      *int      `json:"offset"`
	Instruction string    `json:"instruction"`
	Direction   string    `json:"direction"`
	CurrentRoad *roadJSON `json:"currentRoad"`
	NextRoad    *roadJSON `json:"nextRoad"`
}

type roadJSON struct {
	Name []struct {
		Value string `json:"value"`
	} `json:"name"`
}

func (r *roadJSON) first() string {
	if r == nil || len(r.Name) == 0 {
		return ""
	}
	return r.Name[0].Value
}

// ComputeRoute asks Routing v8 for a route. Only the first route returned is
// used. Actions without an offset are dropped here; offsets beyond the
// decoded path are left for the presenter to skip.
func (c *Client) ComputeRoute(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	if !req.Valid() {
		return nil, fmt.Errorf("route request needs both endpoints")
	}
	transport := string(req.TravelMode)
	if transport == "" {
		transport = c.cfg.TransportMode
	}

	q := url.Values{}
	q.Set("origin", latLng(*req.Origin))
	q.Set("destination", latLng(*req.Destination))
	q.Set("transportMode", transport)
	q.Set("routingMode", c.cfg.RoutingMode)
	q.Set("return", routeReturn)

	var body routesResponse
	if err := c.getJSON(ctx, c.cfg.RoutingURL, q, &body); err != nil {
		return nil, err
	}
	if len(body.Routes) == 0 {
		return &domain.RouteResult{}, nil
	}

	res := &domain.RouteResult{}
	for i, s := range body.Routes[0].Sections {
		path, err := geospatial.DecodeFlexible(s.Polyline)
		if err != nil {
			slog.Warn("section polyline undecodable", "section", i, "error", err)
			path = nil
		}
		sec := domain.Section{
			Path: path,
			Summary: domain.TravelSummary{
				DistanceMeters:  s.TravelSummary.Length,
				DurationSeconds: s.TravelSummary.Duration,
			},
		}
		for _, a := range s.Actions {
			if a.Offset == nil {
				continue
			}
			sec.Maneuvers = append(sec.Maneuvers, domain.Maneuver{
				Offset:      *a.Offset,
				Instruction: a.Instruction,
				Direction:   a.Direction,
				Action:      a.Action,
			})
		}
		for _, a := range s.TurnByTurnActions {
			if n := a.NextRoad.first(); n != "" {
				sec.RoadNameTrace = append(sec.RoadNameTrace, n)
			}
			if n := a.CurrentRoad.first(); n != "" {
				sec.RoadNameTrace = append(sec.RoadNameTrace, n)
			}
		}
		res.Sections = append(res.Sections, sec)
	}
	return res, nil
}

func latLng(p domain.GeoPoint) string {
	return fmt.Sprintf("%g,%g", p.Lat, p.Lon)
}
