package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Jeong-wonho/heremap-start/internal/adapters/scene"
	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
	"github.com/Jeong-wonho/heremap-start/internal/core/usecases"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/metrics"
)

// clientMessage is one user event sent by the browser renderer.
//
//	{"action":"activate","mode":"route","origin_id":"union-station","destination_id":"city-hall"}
//	{"action":"tap","x":412,"y":230,"target":"<object id>"}
//	{"action":"viewport","center":{"lat":34.05,"lon":-118.24},"zoom":7,"width":800,"height":600}
//	{"action":"bubble_closed","id":"<bubble id>"}
type clientMessage struct {
	Action string `json:"action"`

	Mode          string  `json:"mode"`
	OriginID      string  `json:"origin_id"`
	DestinationID string  `json:"destination_id"`
	TravelMode    string  `json:"travel_mode"`
	Region        string  `json:"region"`
	Eps           float64 `json:"eps"`
	MinWeight     int     `json:"min_weight"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Target string  `json:"target"`

	Center *domain.GeoPoint `json:"center"`
	Zoom   float64          `json:"zoom"`
	Width  float64          `json:"width"`
	Height float64          `json:"height"`

	ID string `json:"id"`
}

type panelMessage struct {
	Type  string                `json:"type"`
	Panel domain.PanelViewModel `json:"panel"`
}

type notifyMessage struct {
	Type string `json:"type"`
	domain.Notification
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

var errUnknownAction = errors.New("unknown action")

// sessionPublisher sends panels and notifications to the session's socket
// and mirrors them to the feed without holding up the event loop.
type sessionPublisher struct {
	id    string
	write func(v any) error
	feed  ports.PanelFeed
	log   *slog.Logger
	wg    sync.WaitGroup
}

func (p *sessionPublisher) PublishPanel(ctx context.Context, vm domain.PanelViewModel) error {
	if err := p.write(panelMessage{Type: "panel", Panel: vm}); err != nil {
		return fmt.Errorf("write panel: %w", err)
	}
	p.mirror("panel", func(ctx context.Context) error { return p.feed.PublishPanel(ctx, p.id, vm) })
	return nil
}

func (p *sessionPublisher) Notify(ctx context.Context, n domain.Notification) error {
	if err := p.write(notifyMessage{Type: "notify", Notification: n}); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	p.mirror("notification", func(ctx context.Context) error { return p.feed.PublishNotification(ctx, p.id, n) })
	return nil
}

func (p *sessionPublisher) mirror(kind string, publish func(ctx context.Context) error) {
	if p.feed == nil {
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := publish(ctx); err != nil {
			p.log.Debug("feed publish failed", "kind", kind, "error", err)
		}
	}()
}

// mapSession binds one socket to one event loop, scene and controller.
type mapSession struct {
	id    string
	deps  *Dependencies
	log   *slog.Logger
	loop  *usecases.EventLoop
	scene *scene.Scene
	ctl   *usecases.MapController
	pub   *sessionPublisher

	cancel context.CancelFunc
}

// newMapSession starts the session's event loop and builds the controller on
// it. write must be safe for concurrent use.
func newMapSession(deps *Dependencies, write func(v any) error, log *slog.Logger) (*mapSession, error) {
	id := uuid.NewString()
	log = log.With("session", id)

	ctx, cancel := context.WithCancel(context.Background())
	s := &mapSession{
		id:     id,
		deps:   deps,
		log:    log,
		loop:   usecases.NewEventLoop(64),
		cancel: cancel,
		pub:    &sessionPublisher{id: id, write: write, feed: deps.Feed, log: log},
	}
	go func() { _ = s.loop.Run(ctx) }()

	s.scene = scene.New(func(op scene.Op) {
		if err := write(op); err != nil {
			log.Debug("scene op dropped", "op", op.Op, "error", err)
		}
	}, deps.Session.Viewport)

	svc := usecases.Services{
		Routing:    deps.Gateway,
		Geocoding:  deps.Gateway,
		Boundaries: deps.Gateway,
		Clusterer:  deps.Clusterer,
	}
	err := s.sync(func() {
		s.ctl = usecases.NewMapController(ctx, s.scene, svc, s.pub, s.loop, deps.Session.Controller, log)
	})
	if err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

// sync runs fn on the loop and waits for it.
func (s *mapSession) sync(fn func()) error {
	done := make(chan struct{})
	if err := s.loop.Post(func() { fn(); close(done) }); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-s.loop.Done():
		return usecases.ErrLoopClosed
	}
}

// handle decodes one client message and applies it on the loop. Lookups
// that block (location ids, cluster input) run here, on the reader, before
// anything is posted.
func (s *mapSession) handle(ctx context.Context, raw []byte) error {
	var m clientMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	switch m.Action {
	case "activate":
		mode, err := domain.ParseMode(m.Mode)
		if err != nil {
			return err
		}
		params := s.params(ctx, mode, m)
		return s.loop.Post(func() { s.ctl.Activate(mode, params) })

	case "tap":
		p := domain.ScreenPoint{X: m.X, Y: m.Y}
		target := domain.ObjectID(m.Target)
		return s.loop.Post(func() { s.scene.Tap(p, target) })

	case "viewport":
		return s.loop.Post(func() {
			v := s.scene.Viewport()
			zoom := v.Zoom
			if m.Center != nil {
				v.Center = *m.Center
			}
			if m.Zoom > 0 {
				v.Zoom = m.Zoom
			}
			if m.Width > 0 && m.Height > 0 {
				v.Width, v.Height = m.Width, m.Height
			}
			s.scene.SetViewport(v)
			if v.Zoom != zoom {
				s.ctl.Rezoom()
			}
		})

	case "bubble_closed":
		id := domain.ObjectID(m.ID)
		return s.loop.Post(func() { s.scene.BubbleClosed(id) })

	default:
		return fmt.Errorf("%w: %q", errUnknownAction, m.Action)
	}
}

func (s *mapSession) params(ctx context.Context, mode domain.Mode, m clientMessage) domain.ModeParams {
	p := domain.ModeParams{
		TravelMode: domain.TravelMode(m.TravelMode),
		Eps:        m.Eps,
		MinWeight:  m.MinWeight,
		RegionKey:  m.Region,
	}
	switch mode {
	case domain.ModeRoute:
		p.Origin = s.deps.Locations.Resolve(ctx, m.OriginID)
		p.Destination = s.deps.Locations.Resolve(ctx, m.DestinationID)
	case domain.ModeCluster:
		pts, err := s.deps.Locations.ClusterPoints(ctx)
		if err != nil {
			s.log.Warn("cluster input unavailable", "error", err)
		}
		p.Points = pts
	}
	return p
}

// close tears the controller down on the loop, then stops the loop.
func (s *mapSession) close() {
	if err := s.sync(func() { s.ctl.Close() }); err != nil {
		s.log.Debug("session already stopped", "error", err)
	}
	s.cancel()
	<-s.loop.Done()
	s.pub.wg.Wait()
}

// MapSessionHandler serves one map surface per WebSocket connection. The
// browser applies the scene ops it receives and reports user events back.
func MapSessionHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		log := slog.Default().With("remote", c.RemoteAddr().String())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			log = log.With("request_id", rid)
		}

		var mu sync.Mutex
		writeJSON := func(v any) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		sess, err := newMapSession(deps, writeJSON, log)
		if err != nil {
			log.Error("map session start failed", "error", err)
			return
		}
		metrics.ActiveSessions.Inc()
		defer metrics.ActiveSessions.Dec()
		sess.log.Info("map session opened")

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		ctx := context.Background()
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}
			if err := sess.handle(ctx, msg); err != nil {
				if errors.Is(err, usecases.ErrLoopClosed) {
					break
				}
				_ = writeJSON(errorMessage{Type: "error", Error: err.Error()})
			}
		}

		close(done)
		sess.close()
		sess.log.Info("map session closed")
	}
}
