// Package clustering groups weighted points in screen space.
package clustering

import (
	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/geospatial"
)

// Clusterer is a weighted density clustering over Web-Mercator pixels at the
// requested zoom. A point is a core point when the weight inside its eps
// neighbourhood, itself included, reaches MinWeight; clusters grow through
// core points. Everything else stays a leaf.
type Clusterer struct{}

func New() *Clusterer { return &Clusterer{} }

// Cluster implements ports.Clusterer. Output order follows the first member
// of each node in the input.
func (Clusterer) Cluster(points []domain.ClusterInputPoint, opts domain.ClusterOptions) []domain.ClusterNode {
	n := len(points)
	if n == 0 {
		return nil
	}
	minWeight := opts.MinWeight
	if minWeight < 1 {
		minWeight = 1
	}

	px := make([]domain.ScreenPoint, n)
	for i, p := range points {
		px[i] = geospatial.WorldPixel(p.Position(), opts.Zoom)
	}

	neighbours := func(i int) []int {
		var out []int
		for j := range px {
			if geospatial.PixelDistance(px[i], px[j]) <= opts.Eps {
				out = append(out, j)
			}
		}
		return out
	}
	isCore := func(nb []int) bool {
		w := 0
		for _, j := range nb {
			w += weightOf(points[j])
		}
		return w >= minWeight
	}

	const unassigned = -1
	label := make([]int, n)
	for i := range label {
		label[i] = unassigned
	}

	var groups [][]int
	for i := range points {
		if label[i] != unassigned {
			continue
		}
		nb := neighbours(i)
		if !isCore(nb) {
			continue
		}
		id := len(groups)
		group := []int{i}
		label[i] = id
		queue := nb
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]
			if label[j] != unassigned {
				continue
			}
			label[j] = id
			group = append(group, j)
			if jn := neighbours(j); isCore(jn) {
				queue = append(queue, jn...)
			}
		}
		groups = append(groups, group)
	}

	nodes := make([]domain.ClusterNode, 0, n)
	emitted := make([]bool, len(groups))
	for i, p := range points {
		g := label[i]
		if g == unassigned {
			nodes = append(nodes, domain.NewLeaf(p))
			continue
		}
		if emitted[g] {
			continue
		}
		emitted[g] = true
		nodes = append(nodes, makeCluster(points, px, groups[g], opts.Zoom))
	}
	return nodes
}

func makeCluster(points []domain.ClusterInputPoint, px []domain.ScreenPoint, group []int, zoom float64) domain.ClusterNode {
	if len(group) == 1 {
		return domain.NewLeaf(points[group[0]])
	}
	members := make([]domain.ClusterInputPoint, 0, len(group))
	var sx, sy, sw float64
	for _, i := range group {
		w := float64(weightOf(points[i]))
		sx += px[i].X * w
		sy += px[i].Y * w
		sw += w
		members = append(members, points[i])
	}
	centroid := geospatial.FromWorldPixel(domain.ScreenPoint{X: sx / sw, Y: sy / sw}, zoom)
	return domain.NewCluster(centroid, members)
}

func weightOf(p domain.ClusterInputPoint) int {
	if p.Weight < 1 {
		return 1
	}
	return p.Weight
}
