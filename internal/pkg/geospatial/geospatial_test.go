package geospatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
)

func TestDecodeFlexible_ReferenceVector(t *testing.T) {
	pts, err := DecodeFlexible("BFoz5xJ67i1B1B7PzIhaxL7Y")
	require.NoError(t, err)
	require.Len(t, pts, 4)

	want := []domain.GeoPoint{
		{Lat: 50.10228, Lon: 8.69821},
		{Lat: 50.10201, Lon: 8.69567},
		{Lat: 50.10063, Lon: 8.69150},
		{Lat: 50.09878, Lon: 8.68752},
	}
	for i := range want {
		assert.InDelta(t, want[i].Lat, pts[i].Lat, 1e-9)
		assert.InDelta(t, want[i].Lon, pts[i].Lon, 1e-9)
	}
}

func TestDecodeFlexible_NegativeCoordinates(t *testing.T) {
	want := []domain.GeoPoint{
		{Lat: 34.05, Lon: -118.24},
		{Lat: 34.14, Lon: -119.20},
		{Lat: -33.86, Lon: 151.21},
	}
	out, err := DecodeFlexible("BFws6vG_31xWwyR_v7F_nh_MwuuyzB")
	require.NoError(t, err)
	require.Len(t, out, len(want))
	for i := range want {
		assert.InDelta(t, want[i].Lat, out[i].Lat, 1e-6)
		assert.InDelta(t, want[i].Lon, out[i].Lon, 1e-6)
	}
}

func TestDecodeFlexible_Errors(t *testing.T) {
	_, err := DecodeFlexible("")
	assert.ErrorIs(t, err, ErrPolylineTrunc)

	_, err = DecodeFlexible("B F")
	assert.ErrorIs(t, err, ErrPolylineChar)

	// version 2 header
	_, err = DecodeFlexible("CF")
	assert.ErrorIs(t, err, ErrPolylineVersion)

	// dangling continuation bit
	_, err = DecodeFlexible("BFo")
	assert.ErrorIs(t, err, ErrPolylineTrunc)
}

func TestScreenToGeo_CentreAndInverse(t *testing.T) {
	v := domain.Viewport{Center: domain.GeoPoint{Lat: 34.06, Lon: -118.24}, Zoom: 7, Width: 800, Height: 600}

	c := ScreenToGeo(v, domain.ScreenPoint{X: 400, Y: 300})
	assert.InDelta(t, 34.06, c.Lat, 1e-9)
	assert.InDelta(t, -118.24, c.Lon, 1e-9)

	p := ScreenToGeo(v, domain.ScreenPoint{X: 620, Y: 120})
	assert.Greater(t, p.Lat, v.Center.Lat, "up on screen is north")
	assert.Greater(t, p.Lon, v.Center.Lon, "right on screen is east")

	// back to world pixels, relative to the centre
	cp, w := WorldPixel(v.Center, v.Zoom), WorldPixel(p, v.Zoom)
	assert.InDelta(t, 620, w.X-cp.X+v.Width/2, 1e-6)
	assert.InDelta(t, 120, w.Y-cp.Y+v.Height/2, 1e-6)
}

func TestPathBoundsAndUnion(t *testing.T) {
	_, ok := PathBounds(nil)
	assert.False(t, ok)

	a, ok := PathBounds([]domain.GeoPoint{{Lat: 34.0, Lon: -118.3}, {Lat: 34.2, Lon: -118.1}})
	require.True(t, ok)
	b, _ := PathBounds([]domain.GeoPoint{{Lat: 33.5, Lon: -119.0}})

	u := Union(a, b)
	assert.Equal(t, domain.Bounds{MinLat: 33.5, MinLon: -119.0, MaxLat: 34.2, MaxLon: -118.1}, u)
}

func TestParseBoundary_MixedCollection(t *testing.T) {
	doc := []byte(`{
	  "type": "FeatureCollection",
	  "features": [
	    {"type": "Feature", "properties": {"name": "LA"},
	     "geometry": {"type": "Polygon", "coordinates": [[[-118.5,34.0],[-118.1,34.0],[-118.1,34.3],[-118.5,34.0]]]}},
	    {"type": "Feature", "properties": {},
	     "geometry": {"type": "MultiPolygon", "coordinates": [
	        [[[-118.0,33.9],[-117.9,33.9],[-117.9,34.0],[-118.0,33.9]]],
	        [[[-117.8,33.9],[-117.7,33.9],[-117.7,34.0],[-117.8,33.9]]]]}},
	    {"type": "Feature", "properties": {},
	     "geometry": {"type": "Point", "coordinates": [-118.24,34.05]}}
	  ]
	}`)

	r, err := ParseBoundary("los_angeles", doc)
	require.NoError(t, err)
	assert.Equal(t, "los_angeles", r.RegionKey)
	assert.Len(t, r.Polygons, 3)
	require.Len(t, r.Others, 1)
	assert.Equal(t, domain.GeometryPoint, r.Others[0].Kind)
	assert.InDelta(t, 34.05, r.Others[0].Coordinates[0].Lat, 1e-9)
	assert.InDelta(t, -118.5, r.Polygons[0][0][0].Lon, 1e-9)
}

func TestParseBoundary_Garbage(t *testing.T) {
	_, err := ParseBoundary("x", []byte("not json"))
	assert.Error(t, err)
}
