package usecases

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/metrics"
)

// upstreamFailureMessage is shown once per failed external call.
const upstreamFailureMessage = "Can't reach the remote server"

// ControllerConfig holds the per-session tunables.
type ControllerConfig struct {
	ProbeRadiusMeters float64
	ClusterEps        float64
	ClusterMinWeight  int
	CountryFilter     string
	TravelMode        domain.TravelMode
	ServiceTimeout    time.Duration
}

// DefaultControllerConfig mirrors the shipped configuration defaults.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		ProbeRadiusMeters: 10000,
		ClusterEps:        32,
		ClusterMinWeight:  2,
		CountryFilter:     "countryCode:USA",
		TravelMode:        domain.TravelModeTruck,
		ServiceTimeout:    10 * time.Second,
	}
}

// Services bundles the capabilities a controller consumes.
type Services struct {
	Routing    ports.RoutingService
	Geocoding  ports.GeocodingService
	Boundaries ports.BoundaryLoader
	Clusterer  ports.Clusterer
}

// MapController owns one map surface for its whole lifetime and switches
// between visualization modes. All methods, and every handler it registers on
// the surface, must run on the session's event loop.
type MapController struct {
	ctx     context.Context
	surface ports.MapSurface
	svc     Services
	panel   ports.PanelPublisher
	sched   Scheduler
	cfg     ControllerConfig
	log     *slog.Logger

	state  domain.ActiveModeState
	closed bool

	// objects and layers added by the active mode
	objects  []domain.ObjectID
	layers   []domain.LayerID
	geofence domain.LayerID
	cluster  domain.LayerID

	probe  domain.ObjectID
	bubble *BubbleManager
	view   domain.PanelViewModel
}

// NewMapController builds a controller and registers the global click-probe
// listener on the surface. ctx bounds every external call the controller
// issues.
func NewMapController(
	ctx context.Context,
	surface ports.MapSurface,
	svc Services,
	panel ports.PanelPublisher,
	sched Scheduler,
	cfg ControllerConfig,
	log *slog.Logger,
) *MapController {
	if log == nil {
		log = slog.Default()
	}
	c := &MapController{
		ctx:     ctx,
		surface: surface,
		svc:     svc,
		panel:   panel,
		sched:   sched,
		cfg:     cfg,
		log:     log,
		bubble:  NewBubbleManager(surface),
	}
	surface.OnMapTap(c.handleMapTap)
	return c
}

// State returns a copy of the active mode state.
func (c *MapController) State() domain.ActiveModeState { return c.state }

// Panel returns the last published view-model.
func (c *MapController) Panel() domain.PanelViewModel { return c.view }

// Activate is the single entry point for user-driven mode and parameter
// changes. Re-activating the same mode is a full rebuild.
func (c *MapController) Activate(mode domain.Mode, params domain.ModeParams) {
	if c.closed {
		return
	}
	c.state.Generation++
	gen := c.state.Generation

	c.teardown()
	c.state.Mode = mode
	c.state.Params = params
	metrics.Activations.WithLabelValues(mode.String()).Inc()
	c.log.Info("mode activated", slog.String("mode", mode.String()), slog.Uint64("generation", gen))

	c.setPanel(domain.PanelViewModel{Mode: mode, Clicked: c.view.Clicked})

	switch mode {
	case domain.ModeNone, domain.ModeClickProbe:
		// the probe listener is always on; nothing mode-specific to draw
	case domain.ModeRoute:
		c.presentRoute(gen, params)
	case domain.ModeCluster:
		c.presentClusters(gen, params)
	case domain.ModeGeofence:
		c.presentGeofence(gen, params)
	case domain.ModeStaticPolyline:
		c.presentStaticPolyline()
	case domain.ModeStaticCircle:
		c.presentStaticCircle()
	case domain.ModeStaticRectangle:
		c.presentStaticRectangle()
	default:
		c.log.Warn("unhandled mode", slog.Int("mode", int(mode)))
	}
}

// Close tears the session down: pending completions become stale, every
// object is removed and the bubble closed.
func (c *MapController) Close() {
	if c.closed {
		return
	}
	c.state.Generation++
	c.teardown()
	c.state.Mode = domain.ModeNone
	c.state.Params = domain.ModeParams{}
	c.bubble.Close()
	if c.probe != "" {
		c.surface.RemoveObject(c.probe)
		c.probe = ""
	}
	c.closed = true
}

// teardown removes everything the previous mode added. The probe circle and
// the bubble survive.
func (c *MapController) teardown() {
	for _, id := range c.objects {
		c.surface.RemoveObject(id)
	}
	for _, id := range c.layers {
		c.surface.RemoveLayer(id)
	}
	c.objects = c.objects[:0]
	c.layers = c.layers[:0]
	c.geofence = ""
	c.cluster = ""
}

func (c *MapController) addObject(obj domain.MapObject) domain.ObjectID {
	id := c.surface.AddObject(obj)
	c.objects = append(c.objects, id)
	return id
}

func (c *MapController) addLayer(layer domain.Layer) domain.LayerID {
	id := c.surface.AddLayer(layer)
	c.layers = append(c.layers, id)
	return id
}

func (c *MapController) removeLayer(id domain.LayerID) {
	c.surface.RemoveLayer(id)
	for i, l := range c.layers {
		if l == id {
			c.layers = append(c.layers[:i], c.layers[i+1:]...)
			break
		}
	}
}

// current reports whether a completion stamped with gen may still mutate
// the map. Stale completions are counted and dropped.
func (c *MapController) current(gen uint64, capability string) bool {
	if !c.closed && gen == c.state.Generation {
		return true
	}
	metrics.StaleResults.WithLabelValues(capability).Inc()
	c.log.Debug("stale result dropped",
		slog.String("capability", capability),
		slog.Uint64("generation", gen),
		slog.Uint64("current", c.state.Generation),
	)
	return false
}

// fail surfaces an upstream failure once. Nothing is retried.
func (c *MapController) fail(capability string, err error) {
	c.log.Warn("upstream call failed", slog.String("capability", capability), slog.Any("error", err))
	if nerr := c.panel.Notify(c.ctx, domain.Notification{Level: domain.NotifyError, Message: upstreamFailureMessage}); nerr != nil {
		c.log.Warn("notify failed", slog.Any("error", nerr))
	}
}

func (c *MapController) skip(kind string, attrs ...any) {
	metrics.SkippedItems.WithLabelValues(kind).Inc()
	c.log.Warn("malformed item skipped", append([]any{slog.String("kind", kind)}, attrs...)...)
}

func (c *MapController) setPanel(vm domain.PanelViewModel) {
	c.view = vm
	if err := c.panel.PublishPanel(c.ctx, vm); err != nil {
		c.log.Warn("publish panel failed", slog.Any("error", err))
	}
}
