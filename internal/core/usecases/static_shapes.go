package usecases

import "github.com/Jeong-wonho/heremap-start/internal/core/domain"

// Fixed demonstration shapes.
var (
	staticPolylinePath = []domain.GeoPoint{
		{Lat: 34.1451, Lon: -119.1971},
		{Lat: 34.0574, Lon: -118.2339},
		{Lat: 33.4573, Lon: -111.9428},
		{Lat: 29.4416, Lon: -98.2585},
	}
	staticCircleCenter = domain.GeoPoint{Lat: 34.0591, Lon: -118.3616}
	staticRect         = domain.Bounds{MinLat: 33.7, MinLon: -118.09, MaxLat: 33.9, MaxLon: -117.81}
)

const staticCircleRadius = 10000

func (c *MapController) presentStaticPolyline() {
	c.addObject(domain.MapObject{
		Kind:  domain.ObjectPolyline,
		Path:  staticPolylinePath,
		Style: &domain.Style{LineWidth: 4},
	})
}

func (c *MapController) presentStaticCircle() {
	center := staticCircleCenter
	c.addObject(domain.MapObject{
		Kind:     domain.ObjectCircle,
		Position: &center,
		Radius:   staticCircleRadius,
		Style:    &domain.Style{StrokeColor: "rgba(55, 85, 170, 0.6)", LineWidth: 2},
	})
}

func (c *MapController) presentStaticRectangle() {
	rect := staticRect
	c.addObject(domain.MapObject{
		Kind: domain.ObjectRectangle,
		Rect: &rect,
		Style: &domain.Style{
			StrokeColor: "rgba(55, 85, 170, 0.6)",
			FillColor:   "rgba(0, 128, 0, 0.7)",
			LineWidth:   8,
		},
	})
}
