package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
	"github.com/Jeong-wonho/heremap-start/internal/core/usecases"
)

// ListLocationsHandler returns the named locations offered in the pickers.
// ?exclude=<id> drops the selected origin from the destination list.
func ListLocationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locations, err := deps.Locations.ListExcluding(c.UserContext(), c.Query("exclude"))
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("list locations", "error", err)
			return errInternal(c, "failed to list locations")
		}
		if locations == nil {
			locations = []domain.NamedLocation{}
		}
		return c.JSON(fiber.Map{"data": locations, "total": len(locations)})
	}
}

// GetLocationHandler returns a single named location.
func GetLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, err := deps.Locations.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			if !errors.Is(err, ports.ErrNotFound) {
				LoggerFromCtx(c.UserContext()).Error("get location", "id", c.Params("id"), "error", err)
			}
			return errFrom(c, err, "location")
		}
		return c.JSON(loc)
	}
}

// ListRegionsHandler returns the geofence region keys.
func ListRegionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		keys := []string{}
		if deps.Regions != nil {
			keys = append(keys, deps.Regions.Keys()...)
		}
		return c.JSON(fiber.Map{"data": keys})
	}
}

// RouteSummaryHandler computes a route between two named locations and
// returns the panel the route mode would show, without drawing anything.
func RouteSummaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		originID, destID := c.Query("origin_id"), c.Query("destination_id")
		if originID == "" || destID == "" {
			return errBadRequest(c, "origin_id and destination_id are required")
		}

		req := domain.RouteRequest{
			Origin:      deps.Locations.Resolve(ctx, originID),
			Destination: deps.Locations.Resolve(ctx, destID),
			TravelMode:  deps.Session.Controller.TravelMode,
		}
		if mode := c.Query("travel_mode"); mode != "" {
			req.TravelMode = domain.TravelMode(mode)
		}
		if !req.Valid() {
			return errNotFound(c, "unknown origin or destination")
		}

		route, err := deps.Gateway.ComputeRoute(ctx, req)
		if err != nil {
			LoggerFromCtx(ctx).Warn("route summary", "origin", originID, "destination", destID, "error", err)
			if errors.Is(err, context.DeadlineExceeded) {
				return errFrom(c, err, "route")
			}
			return errBadGateway(c, "routing service unavailable")
		}
		return c.JSON(usecases.RoutePanel(route))
	}
}
