// Package scene is the server-side model of one client's map. It implements
// ports.MapSurface by keeping the object graph in memory and emitting every
// mutation as an Op for the client renderer.
package scene

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/geospatial"
)

// ErrNoViewport is returned by ScreenToGeo before the client reported its size.
var ErrNoViewport = errors.New("viewport size unknown")

// Op names.
const (
	OpAddObject    = "add_object"
	OpRemoveObject = "remove_object"
	OpAddLayer     = "add_layer"
	OpRemoveLayer  = "remove_layer"
	OpSetBounds    = "set_bounds"
	OpSetCenter    = "set_center"
	OpOpenBubble   = "open_bubble"
	OpUpdateBubble = "update_bubble"
	OpCloseBubble  = "close_bubble"
)

// Op is one mutation sent to the renderer.
type Op struct {
	Type     string            `json:"type"`
	Op       string            `json:"op"`
	ID       string            `json:"id,omitempty"`
	Object   *domain.MapObject `json:"object,omitempty"`
	Layer    *domain.Layer     `json:"layer,omitempty"`
	Bounds   *domain.Bounds    `json:"bounds,omitempty"`
	Position *domain.GeoPoint  `json:"position,omitempty"`
	Text     string            `json:"text,omitempty"`
}

// Sink receives ops in mutation order.
type Sink func(Op)

type owner struct {
	group domain.ObjectID
	layer domain.LayerID
}

// Scene is not safe for concurrent use; it lives on the session's event loop
// next to the controller.
type Scene struct {
	sink     Sink
	viewport domain.Viewport

	objects map[domain.ObjectID]domain.MapObject
	layers  map[domain.LayerID]domain.Layer
	// nested objects (group children, layer members) by id
	nested  map[domain.ObjectID]domain.MapObject
	owners  map[domain.ObjectID]owner
	bubbles map[domain.ObjectID]struct{}
	mapTaps []domain.TapHandler
}

// New creates an empty scene showing the initial viewport.
func New(sink Sink, initial domain.Viewport) *Scene {
	if sink == nil {
		sink = func(Op) {}
	}
	return &Scene{
		sink:     sink,
		viewport: initial,
		objects:  make(map[domain.ObjectID]domain.MapObject),
		layers:   make(map[domain.LayerID]domain.Layer),
		nested:   make(map[domain.ObjectID]domain.MapObject),
		owners:   make(map[domain.ObjectID]owner),
		bubbles:  make(map[domain.ObjectID]struct{}),
	}
}

func newID() string { return uuid.NewString() }

func (s *Scene) emit(op Op) {
	op.Type = "scene"
	s.sink(op)
}

// AddObject implements ports.MapSurface.
func (s *Scene) AddObject(obj domain.MapObject) domain.ObjectID {
	obj.ID = domain.ObjectID(newID())
	obj.Children = append([]domain.MapObject(nil), obj.Children...)
	for i := range obj.Children {
		obj.Children[i].ID = domain.ObjectID(newID())
		s.nested[obj.Children[i].ID] = obj.Children[i]
		s.owners[obj.Children[i].ID] = owner{group: obj.ID}
	}
	s.objects[obj.ID] = obj
	s.emit(Op{Op: OpAddObject, ID: string(obj.ID), Object: &obj})
	return obj.ID
}

// RemoveObject implements ports.MapSurface. Unknown ids are ignored.
func (s *Scene) RemoveObject(id domain.ObjectID) {
	obj, ok := s.objects[id]
	if !ok {
		return
	}
	for _, c := range obj.Children {
		delete(s.nested, c.ID)
		delete(s.owners, c.ID)
	}
	delete(s.objects, id)
	s.emit(Op{Op: OpRemoveObject, ID: string(id)})
}

// AddLayer implements ports.MapSurface.
func (s *Scene) AddLayer(layer domain.Layer) domain.LayerID {
	layer.ID = domain.LayerID(newID())
	layer.Objects = append([]domain.MapObject(nil), layer.Objects...)
	for i := range layer.Objects {
		layer.Objects[i].ID = domain.ObjectID(newID())
		s.nested[layer.Objects[i].ID] = layer.Objects[i]
		s.owners[layer.Objects[i].ID] = owner{layer: layer.ID}
	}
	s.layers[layer.ID] = layer
	s.emit(Op{Op: OpAddLayer, ID: string(layer.ID), Layer: &layer})
	return layer.ID
}

// RemoveLayer implements ports.MapSurface. Unknown ids are ignored.
func (s *Scene) RemoveLayer(id domain.LayerID) {
	layer, ok := s.layers[id]
	if !ok {
		return
	}
	for _, o := range layer.Objects {
		delete(s.nested, o.ID)
		delete(s.owners, o.ID)
	}
	delete(s.layers, id)
	s.emit(Op{Op: OpRemoveLayer, ID: string(id)})
}

// OnMapTap implements ports.MapSurface.
func (s *Scene) OnMapTap(h domain.TapHandler) {
	s.mapTaps = append(s.mapTaps, h)
}

// ScreenToGeo implements ports.MapSurface.
func (s *Scene) ScreenToGeo(p domain.ScreenPoint) (domain.GeoPoint, error) {
	if s.viewport.Width <= 0 || s.viewport.Height <= 0 {
		return domain.GeoPoint{}, ErrNoViewport
	}
	return geospatial.ScreenToGeo(s.viewport, p), nil
}

// Zoom implements ports.MapSurface.
func (s *Scene) Zoom() float64 { return s.viewport.Zoom }

// SetViewBounds implements ports.MapSurface. The client picks the zoom that
// fits; the server only tracks the new centre until the next viewport report.
func (s *Scene) SetViewBounds(b domain.Bounds) {
	s.viewport.Center = domain.GeoPoint{Lat: (b.MinLat + b.MaxLat) / 2, Lon: (b.MinLon + b.MaxLon) / 2}
	s.emit(Op{Op: OpSetBounds, Bounds: &b})
}

// SetCenter implements ports.MapSurface.
func (s *Scene) SetCenter(p domain.GeoPoint) {
	s.viewport.Center = p
	s.emit(Op{Op: OpSetCenter, Position: &p})
}

// OpenBubble implements ports.MapSurface.
func (s *Scene) OpenBubble(pos domain.GeoPoint, text string) domain.ObjectID {
	id := domain.ObjectID(newID())
	s.bubbles[id] = struct{}{}
	s.emit(Op{Op: OpOpenBubble, ID: string(id), Position: &pos, Text: text})
	return id
}

// UpdateBubble implements ports.MapSurface. A bubble the client already
// closed is reopened under the same id.
func (s *Scene) UpdateBubble(id domain.ObjectID, pos domain.GeoPoint, text string) {
	op := OpUpdateBubble
	if _, ok := s.bubbles[id]; !ok {
		s.bubbles[id] = struct{}{}
		op = OpOpenBubble
	}
	s.emit(Op{Op: op, ID: string(id), Position: &pos, Text: text})
}

// CloseBubble implements ports.MapSurface.
func (s *Scene) CloseBubble(id domain.ObjectID) {
	if _, ok := s.bubbles[id]; !ok {
		return
	}
	delete(s.bubbles, id)
	s.emit(Op{Op: OpCloseBubble, ID: string(id)})
}

// BubbleClosed records that the user dismissed a bubble on the client.
func (s *Scene) BubbleClosed(id domain.ObjectID) {
	delete(s.bubbles, id)
}

// SetViewport records the client's reported viewport.
func (s *Scene) SetViewport(v domain.Viewport) {
	s.viewport = v
}

// Viewport returns the last known viewport.
func (s *Scene) Viewport() domain.Viewport { return s.viewport }

// Tap dispatches a client tap. target is the id of the tapped object or ""
// for the bare map. The object's own handler runs first, then every map-wide
// listener, the same bubbling order a browser map uses.
func (s *Scene) Tap(p domain.ScreenPoint, target domain.ObjectID) {
	ev := domain.TapEvent{Screen: p}
	if g, err := s.ScreenToGeo(p); err == nil {
		ev.Geo = g
	}

	if target != "" {
		if h, obj := s.resolve(target); h != nil {
			ev.Object = &obj
			h(ev)
		}
	}
	ev.Object = nil
	for _, h := range s.mapTaps {
		h(ev)
	}
}

func (s *Scene) resolve(id domain.ObjectID) (domain.TapHandler, domain.MapObject) {
	if obj, ok := s.objects[id]; ok {
		return obj.OnTap, obj
	}
	obj, ok := s.nested[id]
	if !ok {
		return nil, domain.MapObject{}
	}
	own := s.owners[id]
	if own.group != "" {
		if obj.OnTap != nil {
			return obj.OnTap, obj
		}
		return s.objects[own.group].OnTap, obj
	}
	return s.layers[own.layer].OnTap, obj
}

// Snapshot lists every top-level object, layer and open bubble, sorted by id.
// It is what a reconnecting renderer would need to redraw.
func (s *Scene) Snapshot() (objects []domain.MapObject, layers []domain.Layer, bubbles []domain.ObjectID) {
	for _, o := range s.objects {
		objects = append(objects, o)
	}
	for _, l := range s.layers {
		layers = append(layers, l)
	}
	for id := range s.bubbles {
		bubbles = append(bubbles, id)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].ID < objects[j].ID })
	sort.Slice(layers, func(i, j int) bool { return layers[i].ID < layers[j].ID })
	sort.Slice(bubbles, func(i, j int) bool { return bubbles[i] < bubbles[j] })
	return objects, layers, bubbles
}
