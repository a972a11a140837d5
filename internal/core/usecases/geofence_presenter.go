package usecases

import (
	"context"
	"log/slog"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/geospatial"
)

var geofenceStyle = &domain.Style{
	FillColor:   "rgba(255, 0, 0, 0.2)",
	StrokeColor: "rgba(0, 255, 255, 0.2)",
	LineWidth:   3,
}

func (c *MapController) presentGeofence(gen uint64, p domain.ModeParams) {
	key := p.RegionKey
	if key == "" {
		c.log.Debug("geofence activation without region")
		return
	}
	submit(c, gen, c.cfg.ServiceTimeout, func(ctx context.Context) (*domain.GeofenceRegion, error) {
		doc, err := c.svc.Boundaries.LoadBoundary(ctx, key)
		if err != nil {
			return nil, err
		}
		return geospatial.ParseBoundary(key, doc)
	}, c.resolveGeofence)
}

// resolveGeofence is the geofence presenter's only resolution point.
func (c *MapController) resolveGeofence(res Result[*domain.GeofenceRegion]) {
	if !c.current(res.Gen, "boundary") {
		return
	}
	if res.Err != nil || res.Value == nil {
		c.fail("boundary", res.Err)
		return
	}
	region := res.Value

	objects := make([]domain.MapObject, 0, len(region.Polygons)+len(region.Others))
	for i, rings := range region.Polygons {
		if len(rings) == 0 || len(rings[0]) < 3 {
			c.skip("polygon", slog.String("region", region.RegionKey), slog.Int("index", i))
			continue
		}
		objects = append(objects, domain.MapObject{Kind: domain.ObjectPolygon, Rings: rings, Style: geofenceStyle})
	}
	for i, g := range region.Others {
		if len(g.Coordinates) == 0 {
			c.skip("geometry", slog.String("region", region.RegionKey), slog.Int("index", i))
			continue
		}
		switch g.Kind {
		case domain.GeometryPoint:
			pos := g.Coordinates[0]
			objects = append(objects, domain.MapObject{Kind: domain.ObjectMarker, Position: &pos})
		case domain.GeometryLineString:
			objects = append(objects, domain.MapObject{Kind: domain.ObjectPolyline, Path: g.Coordinates})
		}
	}

	if c.geofence != "" {
		c.removeLayer(c.geofence)
	}
	c.geofence = c.addLayer(domain.Layer{Kind: domain.LayerGeoJSON, Objects: objects})
	c.log.Info("geofence rendered",
		slog.String("region", region.RegionKey),
		slog.Int("polygons", len(region.Polygons)),
	)
}
