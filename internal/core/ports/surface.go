package ports

import "github.com/Jeong-wonho/heremap-start/internal/core/domain"

// MapSurface is the rendering engine seen from the controller.
// Every method is called from the controller's event loop only.
type MapSurface interface {
	AddObject(obj domain.MapObject) domain.ObjectID
	RemoveObject(id domain.ObjectID)
	AddLayer(layer domain.Layer) domain.LayerID
	RemoveLayer(id domain.LayerID)

	// OnMapTap registers a listener for every tap on the surface.
	OnMapTap(h domain.TapHandler)
	ScreenToGeo(p domain.ScreenPoint) (domain.GeoPoint, error)
	Zoom() float64

	SetViewBounds(b domain.Bounds)
	SetCenter(p domain.GeoPoint)

	OpenBubble(pos domain.GeoPoint, text string) domain.ObjectID
	UpdateBubble(id domain.ObjectID, pos domain.GeoPoint, text string)
	CloseBubble(id domain.ObjectID)
}
