package geospatial

import (
	"github.com/paulmach/orb"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
)

// PathBounds returns the bounding box of a path; ok is false for an empty path.
func PathBounds(path []domain.GeoPoint) (b domain.Bounds, ok bool) {
	if len(path) == 0 {
		return domain.Bounds{}, false
	}
	mp := make(orb.MultiPoint, len(path))
	for i, p := range path {
		mp[i] = orb.Point{p.Lon, p.Lat}
	}
	return fromBound(mp.Bound()), true
}

// Union returns the smallest box containing both a and b.
func Union(a, b domain.Bounds) domain.Bounds {
	return fromBound(toBound(a).Union(toBound(b)))
}

func toBound(b domain.Bounds) orb.Bound {
	return orb.Bound{Min: orb.Point{b.MinLon, b.MinLat}, Max: orb.Point{b.MaxLon, b.MaxLat}}
}

func fromBound(b orb.Bound) domain.Bounds {
	return domain.Bounds{MinLat: b.Min[1], MinLon: b.Min[0], MaxLat: b.Max[1], MaxLon: b.Max[0]}
}
