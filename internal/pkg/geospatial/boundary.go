package geospatial

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
)

// ParseBoundary reads a GeoJSON document (FeatureCollection, Feature or bare
// geometry) into a GeofenceRegion. Polygon and MultiPolygon members become
// Polygons; points and lines are kept in Others. Features without geometry
// are skipped.
func ParseBoundary(regionKey string, doc []byte) (*domain.GeofenceRegion, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(doc, &head); err != nil {
		return nil, fmt.Errorf("boundary %s: %w", regionKey, err)
	}

	region := &domain.GeofenceRegion{RegionKey: regionKey}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(doc)
		if err != nil {
			return nil, fmt.Errorf("boundary %s: %w", regionKey, err)
		}
		for _, f := range fc.Features {
			if f == nil || f.Geometry == nil {
				continue
			}
			addGeometry(region, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(doc)
		if err != nil {
			return nil, fmt.Errorf("boundary %s: %w", regionKey, err)
		}
		if f.Geometry != nil {
			addGeometry(region, f.Geometry)
		}
	default:
		g, err := geojson.UnmarshalGeometry(doc)
		if err != nil {
			return nil, fmt.Errorf("boundary %s: %w", regionKey, err)
		}
		addGeometry(region, g.Geometry())
	}

	return region, nil
}

func addGeometry(r *domain.GeofenceRegion, g orb.Geometry) {
	switch v := g.(type) {
	case orb.Polygon:
		r.Polygons = append(r.Polygons, convertPolygon(v))
	case orb.MultiPolygon:
		for _, p := range v {
			r.Polygons = append(r.Polygons, convertPolygon(p))
		}
	case orb.Ring:
		r.Polygons = append(r.Polygons, [][]domain.GeoPoint{convertPoints(v)})
	case orb.Point:
		r.Others = append(r.Others, domain.Geometry{Kind: domain.GeometryPoint, Coordinates: []domain.GeoPoint{toGeo(v)}})
	case orb.MultiPoint:
		for _, p := range v {
			r.Others = append(r.Others, domain.Geometry{Kind: domain.GeometryPoint, Coordinates: []domain.GeoPoint{toGeo(p)}})
		}
	case orb.LineString:
		r.Others = append(r.Others, domain.Geometry{Kind: domain.GeometryLineString, Coordinates: convertPoints(v)})
	case orb.MultiLineString:
		for _, ls := range v {
			r.Others = append(r.Others, domain.Geometry{Kind: domain.GeometryLineString, Coordinates: convertPoints(ls)})
		}
	case orb.Collection:
		for _, child := range v {
			addGeometry(r, child)
		}
	}
}

func convertPolygon(p orb.Polygon) [][]domain.GeoPoint {
	rings := make([][]domain.GeoPoint, 0, len(p))
	for _, ring := range p {
		rings = append(rings, convertPoints(ring))
	}
	return rings
}

func convertPoints[S ~[]orb.Point](pts S) []domain.GeoPoint {
	out := make([]domain.GeoPoint, len(pts))
	for i, p := range pts {
		out[i] = toGeo(p)
	}
	return out
}

func toGeo(p orb.Point) domain.GeoPoint {
	return domain.GeoPoint{Lat: p[1], Lon: p[0]}
}
