package usecases_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Jeong-wonho/heremap-start/internal/adapters/clustering"
	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
	"github.com/Jeong-wonho/heremap-start/internal/core/usecases"
)

type harness struct {
	surface    *fakeSurface
	sched      *manualScheduler
	routing    *mockRouting
	geocoding  *mockGeocoding
	boundaries *mockBoundaries
	panel      *mockPublisher
	ctl        *usecases.MapController
}

func newHarness() *harness {
	h := &harness{
		surface:    newFakeSurface(),
		sched:      &manualScheduler{},
		routing:    &mockRouting{},
		geocoding:  &mockGeocoding{},
		boundaries: &mockBoundaries{},
		panel:      &mockPublisher{},
	}
	h.ctl = usecases.NewMapController(
		context.Background(),
		h.surface,
		usecases.Services{
			Routing:    h.routing,
			Geocoding:  h.geocoding,
			Boundaries: h.boundaries,
			Clusterer:  clustering.New(),
		},
		h.panel,
		h.sched,
		usecases.DefaultControllerConfig(),
		discardLogger(),
	)
	return h
}

func (h *harness) lastPanel(t *testing.T) domain.PanelViewModel {
	t.Helper()
	if len(h.panel.panels) == 0 {
		t.Fatal("no panel published")
	}
	return h.panel.panels[len(h.panel.panels)-1]
}

func pt(lat, lon float64) *domain.GeoPoint { return &domain.GeoPoint{Lat: lat, Lon: lon} }

func twoSectionRoute() *domain.RouteResult {
	return &domain.RouteResult{Sections: []domain.Section{
		{
			Path: []domain.GeoPoint{{Lat: 34.05, Lon: -118.24}, {Lat: 34.10, Lon: -118.60}, {Lat: 34.12, Lon: -118.90}},
			Maneuvers: []domain.Maneuver{
				{Offset: 0, Instruction: "Head west on I-10", Action: "depart"},
				{Offset: 2, Instruction: "Turn right onto US-101", Direction: "right", Action: "turn"},
			},
			Summary:       domain.TravelSummary{DistanceMeters: 1000, DurationSeconds: 120},
			RoadNameTrace: []string{"I-10", "US-101", "I-10"},
		},
		{
			Path: []domain.GeoPoint{{Lat: 34.12, Lon: -118.90}, {Lat: 34.14, Lon: -119.20}},
			Maneuvers: []domain.Maneuver{
				{Offset: 1, Instruction: "Arrive at destination", Action: "arrive"},
			},
			Summary:       domain.TravelSummary{DistanceMeters: 500, DurationSeconds: 60},
			RoadNameTrace: []string{"US-101", "Main St"},
		},
	}}
}

func routeParams() domain.ModeParams {
	return domain.ModeParams{Origin: pt(34.05, -118.24), Destination: pt(34.14, -119.20)}
}

func TestActivateRoute_SumsSectionsAndFormatsDuration(t *testing.T) {
	h := newHarness()
	h.routing.computeFn = func(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
		if req.TravelMode != domain.TravelModeTruck {
			t.Errorf("expected default travel mode truck, got %s", req.TravelMode)
		}
		return twoSectionRoute(), nil
	}

	h.ctl.Activate(domain.ModeRoute, routeParams())
	h.sched.runAll()

	vm := h.lastPanel(t)
	if vm.DistanceMeters != 1500 {
		t.Errorf("expected 1500 m, got %d", vm.DistanceMeters)
	}
	if vm.DurationFormatted != "3 minutes 0 seconds" {
		t.Errorf("unexpected duration %q", vm.DurationFormatted)
	}
	if want := []string{"I-10", "US-101", "Main St"}; !reflect.DeepEqual(vm.WaypointLabels, want) {
		t.Errorf("expected waypoints %v, got %v", want, vm.WaypointLabels)
	}
	if len(vm.Maneuvers) != 3 {
		t.Fatalf("expected 3 maneuvers, got %d", len(vm.Maneuvers))
	}
	if vm.Maneuvers[1].IconClass != "arrow rightturn" {
		t.Errorf("unexpected icon class %q", vm.Maneuvers[1].IconClass)
	}

	kinds := h.surface.kinds()
	if kinds[domain.ObjectPolyline] != 2 || kinds[domain.ObjectGroup] != 2 {
		t.Errorf("expected 2 lines and 2 marker groups, got %v", kinds)
	}
	if h.surface.view == nil {
		t.Fatal("viewport not set")
	}
	if h.surface.view.MinLon != -119.20 || h.surface.view.MaxLon != -118.24 {
		t.Errorf("viewport is not the union of both sections: %+v", *h.surface.view)
	}
}

func TestActivateRoute_MissingEndpointIsNoop(t *testing.T) {
	h := newHarness()

	h.ctl.Activate(domain.ModeRoute, domain.ModeParams{Origin: pt(34.05, -118.24)})
	h.sched.runAll()

	if h.routing.calls != 0 {
		t.Errorf("expected no routing call, got %d", h.routing.calls)
	}
	if len(h.surface.objects) != 0 {
		t.Errorf("expected empty map, got %d objects", len(h.surface.objects))
	}
	if len(h.panel.notifications) != 0 {
		t.Error("missing parameters must not notify")
	}
	if vm := h.lastPanel(t); len(vm.Maneuvers) != 0 || vm.DistanceMeters != 0 {
		t.Errorf("expected empty panel, got %+v", vm)
	}
}

func TestActivateRoute_FailureNotifiesOnceAndLeavesMapEmpty(t *testing.T) {
	h := newHarness()
	h.routing.computeFn = func(context.Context, domain.RouteRequest) (*domain.RouteResult, error) {
		return nil, errors.New("dial tcp: connection refused")
	}

	h.ctl.Activate(domain.ModeRoute, routeParams())
	h.sched.runAll()

	if len(h.panel.notifications) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(h.panel.notifications))
	}
	if h.panel.notifications[0].Level != domain.NotifyError {
		t.Errorf("expected error level, got %s", h.panel.notifications[0].Level)
	}
	if len(h.surface.objects) != 0 {
		t.Errorf("expected no objects, got %d", len(h.surface.objects))
	}
	if h.routing.calls != 1 {
		t.Errorf("expected no retry, got %d calls", h.routing.calls)
	}
}

func TestActivateRoute_OutOfRangeOffsetSkipsMarkerOnly(t *testing.T) {
	h := newHarness()
	h.routing.computeFn = func(context.Context, domain.RouteRequest) (*domain.RouteResult, error) {
		return &domain.RouteResult{Sections: []domain.Section{{
			Path: []domain.GeoPoint{{Lat: 34.05, Lon: -118.24}, {Lat: 34.14, Lon: -119.20}},
			Maneuvers: []domain.Maneuver{
				{Offset: 0, Instruction: "Depart", Action: "depart"},
				{Offset: 7, Instruction: "Bogus", Action: "turn"},
				{Offset: -1, Instruction: "Also bogus", Action: "turn"},
				{Offset: 1, Instruction: "Arrive", Action: "arrive"},
			},
		}}}, nil
	}

	h.ctl.Activate(domain.ModeRoute, routeParams())
	h.sched.runAll()

	var markers int
	for _, o := range h.surface.objects {
		if o.Kind == domain.ObjectGroup {
			markers += len(o.Children)
		}
	}
	if markers != 2 {
		t.Errorf("expected 2 markers, got %d", markers)
	}
	rows := h.lastPanel(t).Maneuvers
	if len(rows) != 4 {
		t.Fatalf("expected 4 turn-list rows, got %d", len(rows))
	}
	if rows[1].Instruction != "Bogus" || rows[2].Instruction != "Also bogus" {
		t.Errorf("turn list out of order: %+v", rows)
	}
}

func TestManeuverTap_RecentersAndReusesBubble(t *testing.T) {
	h := newHarness()
	h.routing.computeFn = func(context.Context, domain.RouteRequest) (*domain.RouteResult, error) {
		return twoSectionRoute(), nil
	}
	h.ctl.Activate(domain.ModeRoute, routeParams())
	h.sched.runAll()

	var taps int
	for _, o := range h.surface.objects {
		if o.Kind != domain.ObjectGroup {
			continue
		}
		for i := range o.Children {
			child := o.Children[i]
			o.OnTap(domain.TapEvent{Object: &child})
			taps++
		}
	}

	if taps != 3 {
		t.Fatalf("expected 3 markers to tap, got %d", taps)
	}
	if h.surface.opened != 1 || len(h.surface.bubbles) != 1 {
		t.Errorf("expected a single bubble, opened=%d open=%d", h.surface.opened, len(h.surface.bubbles))
	}
	if h.surface.center == nil {
		t.Error("map was not recentered")
	}
}

func TestGenerationDiscard_StaleRouteProducesNoMutations(t *testing.T) {
	h := newHarness()
	h.routing.computeFn = func(context.Context, domain.RouteRequest) (*domain.RouteResult, error) {
		return twoSectionRoute(), nil
	}

	h.ctl.Activate(domain.ModeRoute, routeParams())
	h.ctl.Activate(domain.ModeStaticCircle, domain.ModeParams{})
	before := h.surface.mutations
	panels := len(h.panel.panels)

	h.sched.runAll()

	if h.surface.mutations != before {
		t.Errorf("stale route mutated the map %d times", h.surface.mutations-before)
	}
	if len(h.panel.panels) != panels {
		t.Error("stale route published a panel")
	}
	if kinds := h.surface.kinds(); kinds[domain.ObjectCircle] != 1 || len(h.surface.objects) != 1 {
		t.Errorf("expected only the static circle, got %v", kinds)
	}
}

func TestActivate_IdempotentRebuild(t *testing.T) {
	h := newHarness()
	h.routing.computeFn = func(context.Context, domain.RouteRequest) (*domain.RouteResult, error) {
		return twoSectionRoute(), nil
	}

	h.ctl.Activate(domain.ModeRoute, routeParams())
	h.sched.runAll()
	firstKinds := h.surface.kinds()
	firstPanel := h.lastPanel(t)

	h.ctl.Activate(domain.ModeRoute, routeParams())
	h.sched.runAll()

	if !reflect.DeepEqual(firstKinds, h.surface.kinds()) {
		t.Errorf("object set changed: %v vs %v", firstKinds, h.surface.kinds())
	}
	if !reflect.DeepEqual(firstPanel, h.lastPanel(t)) {
		t.Error("panel changed on identical re-activation")
	}
	if h.ctl.State().Generation != 2 {
		t.Errorf("expected generation 2, got %d", h.ctl.State().Generation)
	}
}

func TestTeardown_KeepsOnlyProbeAndBubble(t *testing.T) {
	h := newHarness()
	h.routing.computeFn = func(context.Context, domain.RouteRequest) (*domain.RouteResult, error) {
		return twoSectionRoute(), nil
	}

	h.surface.tap(domain.TapEvent{Screen: domain.ScreenPoint{X: 10, Y: 10}})
	h.ctl.Activate(domain.ModeRoute, routeParams())
	h.sched.runAll()
	for _, o := range h.surface.objects {
		if o.Kind == domain.ObjectGroup {
			child := o.Children[0]
			o.OnTap(domain.TapEvent{Object: &child})
			break
		}
	}

	for _, mode := range []domain.Mode{
		domain.ModeStaticPolyline, domain.ModeStaticRectangle, domain.ModeCluster, domain.ModeNone,
	} {
		h.ctl.Activate(mode, domain.ModeParams{})
		h.sched.runAll()
	}

	if len(h.surface.objects) != 1 {
		t.Fatalf("expected only the probe circle, got %v", h.surface.kinds())
	}
	for _, o := range h.surface.objects {
		if o.Kind != domain.ObjectCircle {
			t.Errorf("unexpected leftover %s", o.Kind)
		}
	}
	if len(h.surface.layers) != 0 {
		t.Errorf("expected no layers, got %d", len(h.surface.layers))
	}
	if len(h.surface.bubbles) != 1 {
		t.Errorf("expected the bubble to persist, got %d", len(h.surface.bubbles))
	}
}

func clusterParams() domain.ModeParams {
	return domain.ModeParams{
		Points: []domain.ClusterInputPoint{
			{Lat: 34.0500, Lon: -118.2400, Weight: 1, Label: "Union Station"},
			{Lat: 34.0501, Lon: -118.2401, Weight: 1, Label: "Olvera Street"},
			{Lat: 34.0502, Lon: -118.2399, Weight: 1, Label: "City Hall"},
			{Lat: 36.1699, Lon: -115.1398, Weight: 1, Label: "Las Vegas"},
		},
		Eps:       32,
		MinWeight: 2,
	}
}

func TestClusterTap_ClusterLogsOnlyLeafGeocodesOnce(t *testing.T) {
	h := newHarness()
	h.geocoding.geocodeFn = func(_ context.Context, q ports.GeocodeQuery) ([]ports.GeocodeItem, error) {
		return []ports.GeocodeItem{{Position: domain.GeoPoint{Lat: 36.17, Lon: -115.14}, FormattedAddress: "Las Vegas, NV, United States"}}, nil
	}

	h.ctl.Activate(domain.ModeCluster, clusterParams())

	layer, ok := h.surface.onlyLayer()
	if !ok {
		t.Fatalf("expected a single cluster layer, got %d", len(h.surface.layers))
	}
	var cluster, leaf *domain.MapObject
	for i := range layer.Objects {
		node := layer.Objects[i].Data.(domain.ClusterNode)
		if node.IsCluster() {
			cluster = &layer.Objects[i]
		} else {
			leaf = &layer.Objects[i]
		}
	}
	if cluster == nil || leaf == nil {
		t.Fatal("expected one cluster and one leaf")
	}

	layer.OnTap(domain.TapEvent{Object: cluster})
	h.sched.runAll()
	if len(h.geocoding.queries) != 0 {
		t.Fatalf("cluster tap issued %d geocode calls", len(h.geocoding.queries))
	}
	if len(h.surface.bubbles) != 0 {
		t.Fatal("cluster tap opened a bubble")
	}

	layer.OnTap(domain.TapEvent{Object: leaf})
	h.sched.runAll()
	if len(h.geocoding.queries) != 1 {
		t.Fatalf("expected exactly one geocode call, got %d", len(h.geocoding.queries))
	}
	q := h.geocoding.queries[0]
	if q.Text != "Las Vegas" {
		t.Errorf("expected leaf label as query, got %q", q.Text)
	}
	if q.CountryFilter != "countryCode:USA" {
		t.Errorf("unexpected country filter %q", q.CountryFilter)
	}
	if len(h.surface.bubbles) != 1 {
		t.Errorf("expected one bubble, got %d", len(h.surface.bubbles))
	}
}

func TestClusterTap_GeocodeFailureOpensNoBubble(t *testing.T) {
	h := newHarness()
	h.geocoding.geocodeFn = func(context.Context, ports.GeocodeQuery) ([]ports.GeocodeItem, error) {
		return nil, errors.New("timeout")
	}
	h.ctl.Activate(domain.ModeCluster, clusterParams())
	layer, _ := h.surface.onlyLayer()

	for i := range layer.Objects {
		if !layer.Objects[i].Data.(domain.ClusterNode).IsCluster() {
			layer.OnTap(domain.TapEvent{Object: &layer.Objects[i]})
		}
	}
	h.sched.runAll()

	if len(h.surface.bubbles) != 0 {
		t.Error("failed geocode opened a bubble")
	}
	if len(h.panel.notifications) != 1 {
		t.Errorf("expected one notification, got %d", len(h.panel.notifications))
	}
}

func TestClusterRezoom_SplitsClusterIntoTappableLeaves(t *testing.T) {
	h := newHarness()
	params := domain.ModeParams{Points: []domain.ClusterInputPoint{
		{Lat: 34.05, Lon: -118.24, Weight: 1, Label: "Union Station"},
		{Lat: 34.06, Lon: -118.25, Weight: 1, Label: "Chinatown"},
	}}

	h.ctl.Activate(domain.ModeCluster, params)
	layer, ok := h.surface.onlyLayer()
	if !ok || len(layer.Objects) != 1 {
		t.Fatalf("expected one cluster at zoom 7, got %d layers", len(h.surface.layers))
	}
	gen := h.ctl.State().Generation

	h.surface.zoom = 18
	h.ctl.Rezoom()

	layer, ok = h.surface.onlyLayer()
	if !ok {
		t.Fatalf("expected the cluster layer to be replaced, got %d layers", len(h.surface.layers))
	}
	if len(layer.Objects) != 2 {
		t.Fatalf("expected 2 leaves at zoom 18, got %d nodes", len(layer.Objects))
	}
	if h.ctl.State().Generation != gen {
		t.Errorf("rezoom must not start a new generation")
	}

	layer.OnTap(domain.TapEvent{Object: &layer.Objects[0]})
	h.sched.runAll()
	if len(h.geocoding.queries) != 1 {
		t.Errorf("expected a geocode call for the leaf, got %d", len(h.geocoding.queries))
	}
}

func TestClusterRezoom_IgnoredOutsideClusterMode(t *testing.T) {
	h := newHarness()
	h.ctl.Activate(domain.ModeStaticCircle, domain.ModeParams{})
	before := h.surface.mutations

	h.surface.zoom = 12
	h.ctl.Rezoom()

	if h.surface.mutations != before {
		t.Errorf("rezoom touched the map in %s mode", h.ctl.State().Mode)
	}
}

func TestGenerationDiscard_StaleGeocodeOpensNoBubble(t *testing.T) {
	h := newHarness()
	h.geocoding.geocodeFn = func(context.Context, ports.GeocodeQuery) ([]ports.GeocodeItem, error) {
		return []ports.GeocodeItem{{Position: domain.GeoPoint{Lat: 36.17, Lon: -115.14}, FormattedAddress: "Las Vegas, NV"}}, nil
	}
	h.ctl.Activate(domain.ModeCluster, clusterParams())
	layer, _ := h.surface.onlyLayer()
	for i := range layer.Objects {
		if !layer.Objects[i].Data.(domain.ClusterNode).IsCluster() {
			layer.OnTap(domain.TapEvent{Object: &layer.Objects[i]})
		}
	}

	h.ctl.Activate(domain.ModeCluster, clusterParams())
	h.sched.runAll()

	if len(h.geocoding.queries) != 1 {
		t.Fatalf("expected the held geocode call to run, got %d", len(h.geocoding.queries))
	}
	if len(h.surface.bubbles) != 0 {
		t.Error("stale geocode opened a bubble")
	}
	if len(h.panel.notifications) != 0 {
		t.Error("stale geocode notified")
	}
}

func TestGenerationDiscard_StaleGeofenceNeverRendered(t *testing.T) {
	h := newHarness()
	var loaded []string
	h.boundaries.loadFn = func(_ context.Context, key string) ([]byte, error) {
		loaded = append(loaded, key)
		if key == "los_angeles" {
			return []byte(regionDoc), nil
		}
		return []byte(`{"type":"FeatureCollection","features":[
		  {"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[-87.6,30.2],[-84.9,30.2],[-84.9,35.0],[-87.6,35.0],[-87.6,30.2]]]}}
		]}`), nil
	}

	h.ctl.Activate(domain.ModeGeofence, domain.ModeParams{RegionKey: "los_angeles"})
	h.ctl.Activate(domain.ModeGeofence, domain.ModeParams{RegionKey: "alabama"})
	h.sched.runAll()

	if !reflect.DeepEqual(loaded, []string{"los_angeles", "alabama"}) {
		t.Fatalf("unexpected loads %v", loaded)
	}
	layer, ok := h.surface.onlyLayer()
	if !ok {
		t.Fatalf("expected one geojson layer, got %d", len(h.surface.layers))
	}
	if len(layer.Objects) != 1 || layer.Objects[0].Kind != domain.ObjectPolygon {
		t.Errorf("expected only the alabama polygon, got %d objects", len(layer.Objects))
	}
}

func TestActivateRoute_EmptyGatewayResultNotifies(t *testing.T) {
	h := newHarness()
	h.routing.computeFn = func(context.Context, domain.RouteRequest) (*domain.RouteResult, error) {
		return nil, nil
	}
	ctl := usecases.NewMapController(
		context.Background(),
		h.surface,
		usecases.Services{Routing: usecases.NewServiceGateway(h.routing, h.geocoding, h.boundaries, nil)},
		h.panel,
		h.sched,
		usecases.DefaultControllerConfig(),
		discardLogger(),
	)

	ctl.Activate(domain.ModeRoute, routeParams())
	h.sched.runAll()

	if len(h.panel.notifications) != 1 {
		t.Errorf("expected one notification, got %d", len(h.panel.notifications))
	}
	if len(h.surface.objects) != 0 {
		t.Errorf("expected an empty map, got %v", h.surface.kinds())
	}
}

func TestGeofence_UnknownRegionRendersNothing(t *testing.T) {
	h := newHarness()

	h.ctl.Activate(domain.ModeGeofence, domain.ModeParams{RegionKey: "atlantis"})
	h.sched.runAll()

	if len(h.surface.layers) != 0 || len(h.surface.objects) != 0 {
		t.Errorf("expected nothing rendered, got %d layers %d objects", len(h.surface.layers), len(h.surface.objects))
	}
	if len(h.panel.notifications) != 1 {
		t.Errorf("expected one notification, got %d", len(h.panel.notifications))
	}
}

const regionDoc = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": [[[-118.5,34.0],[-118.1,34.0],[-118.1,34.3],[-118.5,34.3],[-118.5,34.0]]]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [-118.24, 34.05]}}
  ]
}`

func TestGeofence_StylesPolygonsOnly(t *testing.T) {
	h := newHarness()
	h.boundaries.loadFn = func(_ context.Context, key string) ([]byte, error) {
		if key != "los_angeles" {
			t.Errorf("unexpected key %s", key)
		}
		return []byte(regionDoc), nil
	}

	h.ctl.Activate(domain.ModeGeofence, domain.ModeParams{RegionKey: "los_angeles"})
	h.sched.runAll()

	layer, ok := h.surface.onlyLayer()
	if !ok {
		t.Fatalf("expected one geojson layer, got %d", len(h.surface.layers))
	}
	if len(layer.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(layer.Objects))
	}
	for _, o := range layer.Objects {
		switch o.Kind {
		case domain.ObjectPolygon:
			if o.Style == nil || o.Style.LineWidth != 3 {
				t.Errorf("polygon not styled: %+v", o.Style)
			}
		case domain.ObjectMarker:
			if o.Style != nil {
				t.Error("non-polygon geometry must use defaults")
			}
		default:
			t.Errorf("unexpected kind %s", o.Kind)
		}
	}

	h.ctl.Activate(domain.ModeGeofence, domain.ModeParams{RegionKey: "los_angeles"})
	h.sched.runAll()
	if len(h.surface.layers) != 1 {
		t.Errorf("regions must not accumulate, got %d layers", len(h.surface.layers))
	}
}

func TestClickProbe_ReplacesCircleAndPublishesReadout(t *testing.T) {
	h := newHarness()
	h.ctl.Activate(domain.ModeClickProbe, domain.ModeParams{})

	h.surface.tap(domain.TapEvent{Screen: domain.ScreenPoint{X: 1, Y: 1}})
	h.surface.tapCoord = domain.GeoPoint{Lat: -33.8688, Lon: 151.2093}
	h.surface.tap(domain.TapEvent{Screen: domain.ScreenPoint{X: 2, Y: 2}})

	if len(h.surface.objects) != 1 {
		t.Fatalf("expected a single probe circle, got %d objects", len(h.surface.objects))
	}
	for _, o := range h.surface.objects {
		if o.Kind != domain.ObjectCircle || o.Radius != 10000 {
			t.Errorf("unexpected probe %+v", o)
		}
	}
	vm := h.lastPanel(t)
	if vm.Clicked == nil || vm.Clicked.Label != "33.8688S 151.2093E" {
		t.Errorf("unexpected readout %+v", vm.Clicked)
	}

	h.ctl.Activate(domain.ModeStaticPolyline, domain.ModeParams{})
	if h.lastPanel(t).Clicked == nil {
		t.Error("readout lost on mode switch")
	}
}

func TestClickProbe_ScreenConversionFailureIgnored(t *testing.T) {
	h := newHarness()
	h.surface.tapErr = errors.New("viewport unknown")

	h.surface.tap(domain.TapEvent{})

	if len(h.surface.objects) != 0 {
		t.Error("probe drawn without a coordinate")
	}
}

func TestStaticShapes(t *testing.T) {
	tests := []struct {
		mode domain.Mode
		kind domain.ObjectKind
	}{
		{domain.ModeStaticPolyline, domain.ObjectPolyline},
		{domain.ModeStaticCircle, domain.ObjectCircle},
		{domain.ModeStaticRectangle, domain.ObjectRectangle},
	}
	h := newHarness()
	for _, tt := range tests {
		h.ctl.Activate(tt.mode, domain.ModeParams{})
		kinds := h.surface.kinds()
		if len(h.surface.objects) != 1 || kinds[tt.kind] != 1 {
			t.Errorf("%s: expected one %s, got %v", tt.mode, tt.kind, kinds)
		}
	}
}

func TestClose_DropsPendingAndClearsSurface(t *testing.T) {
	h := newHarness()
	h.routing.computeFn = func(context.Context, domain.RouteRequest) (*domain.RouteResult, error) {
		return twoSectionRoute(), nil
	}
	h.surface.tap(domain.TapEvent{})
	h.ctl.Activate(domain.ModeRoute, routeParams())

	h.ctl.Close()
	h.sched.runAll()

	if len(h.surface.objects) != 0 || len(h.surface.layers) != 0 {
		t.Errorf("surface not cleared: %v", h.surface.kinds())
	}
	if h.ctl.State().Mode != domain.ModeNone {
		t.Errorf("expected mode none, got %s", h.ctl.State().Mode)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{
		0:   "0 minutes 0 seconds",
		59:  "0 minutes 59 seconds",
		180: "3 minutes 0 seconds",
		754: "12 minutes 34 seconds",
	}
	for in, want := range tests {
		if got := usecases.FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}
