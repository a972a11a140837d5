package usecases

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
)

func (c *MapController) presentClusters(gen uint64, p domain.ModeParams) {
	if len(p.Points) == 0 {
		c.log.Debug("cluster activation without points")
		return
	}
	opts := domain.ClusterOptions{Eps: p.Eps, MinWeight: p.MinWeight, Zoom: c.surface.Zoom()}
	if opts.Eps <= 0 {
		opts.Eps = c.cfg.ClusterEps
	}
	if opts.MinWeight <= 0 {
		opts.MinWeight = c.cfg.ClusterMinWeight
	}

	nodes := c.svc.Clusterer.Cluster(p.Points, opts)
	objects := make([]domain.MapObject, 0, len(nodes))
	for _, n := range nodes {
		pos := n.Centroid
		objects = append(objects, domain.MapObject{
			Kind:     domain.ObjectMarker,
			Position: &pos,
			Icon:     clusterIcon(n),
			Data:     n,
		})
	}
	c.cluster = c.addLayer(domain.Layer{
		Kind:    domain.LayerCluster,
		Objects: objects,
		OnTap:   func(ev domain.TapEvent) { c.handleClusterTap(gen, ev) },
	})
}

// Rezoom regroups the cluster layer for the surface's current zoom, since eps
// is measured in screen pixels. The generation does not change: a leaf
// lookup already in flight still resolves.
func (c *MapController) Rezoom() {
	if c.closed || c.state.Mode != domain.ModeCluster || c.cluster == "" {
		return
	}
	c.removeLayer(c.cluster)
	c.cluster = ""
	c.presentClusters(c.state.Generation, c.state.Params)
}

// handleClusterTap resolves a tap on the cluster layer. Clusters only log
// their members; leaves trigger one geocode query.
func (c *MapController) handleClusterTap(gen uint64, ev domain.TapEvent) {
	if ev.Object == nil {
		return
	}
	node, ok := ev.Object.Data.(domain.ClusterNode)
	if !ok {
		return
	}

	if node.IsCluster() {
		for _, m := range node.Members {
			c.log.Info("cluster member",
				slog.Float64("lat", m.Lat),
				slog.Float64("lon", m.Lon),
				slog.String("label", m.Label),
			)
		}
		return
	}
	if node.Point == nil {
		return
	}

	at, err := c.surface.ScreenToGeo(ev.Screen)
	if err != nil {
		at = node.Centroid
	}
	q := ports.GeocodeQuery{Text: node.Point.Label, At: at, CountryFilter: c.cfg.CountryFilter}
	submit(c, gen, c.cfg.ServiceTimeout, func(ctx context.Context) ([]ports.GeocodeItem, error) {
		return c.svc.Geocoding.Geocode(ctx, q)
	}, c.resolveGeocode)
}

// resolveGeocode is the cluster presenter's only resolution point.
func (c *MapController) resolveGeocode(res Result[[]ports.GeocodeItem]) {
	if !c.current(res.Gen, "geocoding") {
		return
	}
	if res.Err != nil {
		c.fail("geocoding", res.Err)
		return
	}
	for _, item := range res.Value {
		c.bubble.Show(item.Position, item.FormattedAddress)
	}
}

func clusterIcon(n domain.ClusterNode) *domain.Icon {
	if !n.IsCluster() {
		return nil
	}
	w := strconv.Itoa(n.Weight())
	return &domain.Icon{
		SVG: `<svg width="28" height="28" xmlns="http://www.w3.org/2000/svg">` +
			`<circle cx="14" cy="14" r="13" fill="#1b468d" fill-opacity="0.8" />` +
			`<text x="14" y="19" font-size="12" text-anchor="middle" fill="white">` + w + `</text></svg>`,
		AnchorX: 14,
		AnchorY: 14,
	}
}
