package usecases_test

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/logging"
)

// --- Manual scheduler ---

// manualScheduler holds off-loop work until the test releases it. Post runs
// the completion immediately, which is the loop from the test's point of view.
type manualScheduler struct {
	pending []func()
}

func (s *manualScheduler) Go(fn func())         { s.pending = append(s.pending, fn) }
func (s *manualScheduler) Post(fn func()) error { fn(); return nil }

// runAll releases every held call in submission order.
func (s *manualScheduler) runAll() {
	for len(s.pending) > 0 {
		fn := s.pending[0]
		s.pending = s.pending[1:]
		fn()
	}
}

// --- Fake surface ---

type bubble struct {
	pos  domain.GeoPoint
	text string
}

type fakeSurface struct {
	next    int
	objects map[domain.ObjectID]domain.MapObject
	layers  map[domain.LayerID]domain.Layer
	tap     domain.TapHandler
	bubbles map[domain.ObjectID]bubble
	opened  int

	view      *domain.Bounds
	center    *domain.GeoPoint
	tapCoord  domain.GeoPoint
	tapErr    error
	zoom      float64
	mutations int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		objects:  make(map[domain.ObjectID]domain.MapObject),
		layers:   make(map[domain.LayerID]domain.Layer),
		bubbles:  make(map[domain.ObjectID]bubble),
		tapCoord: domain.GeoPoint{Lat: 34.0522, Lon: -118.2437},
		zoom:     7,
	}
}

func (f *fakeSurface) id() string {
	f.next++
	return fmt.Sprintf("obj-%d", f.next)
}

func (f *fakeSurface) AddObject(obj domain.MapObject) domain.ObjectID {
	f.mutations++
	id := domain.ObjectID(f.id())
	obj.ID = id
	f.objects[id] = obj
	return id
}

func (f *fakeSurface) RemoveObject(id domain.ObjectID) {
	f.mutations++
	delete(f.objects, id)
}

func (f *fakeSurface) AddLayer(layer domain.Layer) domain.LayerID {
	f.mutations++
	id := domain.LayerID(f.id())
	layer.ID = id
	f.layers[id] = layer
	return id
}

func (f *fakeSurface) RemoveLayer(id domain.LayerID) {
	f.mutations++
	delete(f.layers, id)
}

func (f *fakeSurface) OnMapTap(h domain.TapHandler) { f.tap = h }

func (f *fakeSurface) ScreenToGeo(domain.ScreenPoint) (domain.GeoPoint, error) {
	return f.tapCoord, f.tapErr
}

func (f *fakeSurface) Zoom() float64 { return f.zoom }

func (f *fakeSurface) SetViewBounds(b domain.Bounds) { f.mutations++; f.view = &b }
func (f *fakeSurface) SetCenter(p domain.GeoPoint)   { f.center = &p }

func (f *fakeSurface) OpenBubble(pos domain.GeoPoint, text string) domain.ObjectID {
	f.opened++
	id := domain.ObjectID(f.id())
	f.bubbles[id] = bubble{pos: pos, text: text}
	return id
}

func (f *fakeSurface) UpdateBubble(id domain.ObjectID, pos domain.GeoPoint, text string) {
	f.bubbles[id] = bubble{pos: pos, text: text}
}

func (f *fakeSurface) CloseBubble(id domain.ObjectID) { delete(f.bubbles, id) }

func (f *fakeSurface) kinds() map[domain.ObjectKind]int {
	out := make(map[domain.ObjectKind]int)
	for _, o := range f.objects {
		out[o.Kind]++
	}
	return out
}

func (f *fakeSurface) onlyLayer() (domain.Layer, bool) {
	for _, l := range f.layers {
		return l, len(f.layers) == 1
	}
	return domain.Layer{}, false
}

// --- Service mocks ---

type mockRouting struct {
	computeFn func(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error)
	calls     int
}

func (m *mockRouting) ComputeRoute(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	m.calls++
	if m.computeFn != nil {
		return m.computeFn(ctx, req)
	}
	return &domain.RouteResult{}, nil
}

type mockGeocoding struct {
	geocodeFn func(ctx context.Context, q ports.GeocodeQuery) ([]ports.GeocodeItem, error)
	queries   []ports.GeocodeQuery
}

func (m *mockGeocoding) Geocode(ctx context.Context, q ports.GeocodeQuery) ([]ports.GeocodeItem, error) {
	m.queries = append(m.queries, q)
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, q)
	}
	return nil, nil
}

type mockBoundaries struct {
	loadFn func(ctx context.Context, key string) ([]byte, error)
}

func (m *mockBoundaries) LoadBoundary(ctx context.Context, key string) ([]byte, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx, key)
	}
	return nil, ports.ErrNotFound
}

type mockPublisher struct {
	panels        []domain.PanelViewModel
	notifications []domain.Notification
}

func (m *mockPublisher) PublishPanel(_ context.Context, vm domain.PanelViewModel) error {
	m.panels = append(m.panels, vm)
	return nil
}

func (m *mockPublisher) Notify(_ context.Context, n domain.Notification) error {
	m.notifications = append(m.notifications, n)
	return nil
}

func discardLogger() *slog.Logger {
	return logging.Discard()
}
