package geospatial

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
)

const (
	tileSize = 256.0
	// half the Web-Mercator world width in metres
	mercatorHalf = 20037508.342789244
)

// WorldPixel projects a coordinate to global pixel space at zoom.
func WorldPixel(p domain.GeoPoint, zoom float64) domain.ScreenPoint {
	m := project.WGS84.ToMercator(orb.Point{p.Lon, clampLat(p.Lat)})
	size := worldSize(zoom)
	return domain.ScreenPoint{
		X: (m[0] + mercatorHalf) / (2 * mercatorHalf) * size,
		Y: (mercatorHalf - m[1]) / (2 * mercatorHalf) * size,
	}
}

// FromWorldPixel is the inverse of WorldPixel.
func FromWorldPixel(px domain.ScreenPoint, zoom float64) domain.GeoPoint {
	size := worldSize(zoom)
	m := orb.Point{
		px.X/size*(2*mercatorHalf) - mercatorHalf,
		mercatorHalf - px.Y/size*(2*mercatorHalf),
	}
	g := project.Mercator.ToWGS84(m)
	return domain.GeoPoint{Lat: g[1], Lon: g[0]}
}

// ScreenToGeo converts a viewport pixel to a coordinate, the viewport centre
// being at (Width/2, Height/2).
func ScreenToGeo(v domain.Viewport, s domain.ScreenPoint) domain.GeoPoint {
	c := WorldPixel(v.Center, v.Zoom)
	return FromWorldPixel(domain.ScreenPoint{
		X: c.X + s.X - v.Width/2,
		Y: c.Y + s.Y - v.Height/2,
	}, v.Zoom)
}

// PixelDistance is the Euclidean distance between two pixels.
func PixelDistance(a, b domain.ScreenPoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func worldSize(zoom float64) float64 {
	return tileSize * math.Pow(2, zoom)
}

// Web-Mercator is undefined at the poles.
func clampLat(lat float64) float64 {
	const limit = 85.05112878
	return math.Max(-limit, math.Min(limit, lat))
}
