package domain

// ClusterInputPoint is one weighted point handed to the clustering capability.
type ClusterInputPoint struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Weight int     `json:"weight"`
	Label  string  `json:"label"`
}

// Position returns the point's coordinate.
func (p ClusterInputPoint) Position() GeoPoint {
	return GeoPoint{Lat: p.Lat, Lon: p.Lon}
}

// ClusterKind tags a ClusterNode.
type ClusterKind string

const (
	ClusterKindCluster ClusterKind = "cluster"
	ClusterKindLeaf    ClusterKind = "leaf"
)

// ClusterOptions are the clustering tunables.
type ClusterOptions struct {
	Eps       float64 `json:"eps"`        // neighbourhood radius in screen pixels
	MinWeight int     `json:"min_weight"` // minimum summed weight to form a cluster
	Zoom      float64 `json:"zoom"`
}

// ClusterNode is either a Cluster (Members + Centroid) or a Leaf (exactly one Point).
type ClusterNode struct {
	Kind     ClusterKind         `json:"kind"`
	Centroid GeoPoint            `json:"centroid"`
	Members  []ClusterInputPoint `json:"members,omitempty"`
	Point    *ClusterInputPoint  `json:"point,omitempty"`
}

// NewCluster builds a cluster node.
func NewCluster(centroid GeoPoint, members []ClusterInputPoint) ClusterNode {
	return ClusterNode{Kind: ClusterKindCluster, Centroid: centroid, Members: members}
}

// NewLeaf builds a leaf node.
func NewLeaf(p ClusterInputPoint) ClusterNode {
	return ClusterNode{Kind: ClusterKindLeaf, Centroid: p.Position(), Point: &p}
}

// IsCluster reports whether the node groups several points.
func (n ClusterNode) IsCluster() bool { return n.Kind == ClusterKindCluster }

// Weight sums member weights (or the leaf weight).
func (n ClusterNode) Weight() int {
	if n.Point != nil {
		return n.Point.Weight
	}
	w := 0
	for _, m := range n.Members {
		w += m.Weight
	}
	return w
}
