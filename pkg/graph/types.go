package graph

import (
	"slices"

	"github.com/matzehuels/mindgeo/pkg/geometry"
)

// =============================================================================
// Node - Positioned Mind-Map Entry
// =============================================================================

// Node is a positioned entry of the mind map.
//
// Position is relative to the node's container (ParentID) or absolute when
// the node has no container. Depth equals the container's depth plus one;
// top-level nodes have depth 0.
type Node struct {
	ID       string         `json:"id" bson:"id"`
	ParentID string         `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Label    string         `json:"label,omitempty" bson:"label,omitempty"`
	Position geometry.Point `json:"position" bson:"position"`
	Size     geometry.Size  `json:"size" bson:"size"`
	Depth    int            `json:"depth,omitempty" bson:"depth,omitempty"`
}

// HasParent reports whether the node is nested inside a container.
func (n Node) HasParent() bool { return n.ParentID != "" }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// =============================================================================
// Edge - Directed Connection
// =============================================================================

// Edge is an explicit directed connection between two nodes. Edges are
// independent of containment: a node may sit inside one container while
// being connected to a different logical parent.
//
// SourceSide and TargetSide record which side of each endpoint the edge
// attaches to. When Manual is set the sides are a user override and every
// resolver keeps them; otherwise they are recomputed from geometry.
type Edge struct {
	ID         string             `json:"id" bson:"id"`
	Source     string             `json:"source" bson:"source"`
	Target     string             `json:"target" bson:"target"`
	SourceSide geometry.Direction `json:"source_side,omitempty" bson:"source_side,omitempty"`
	TargetSide geometry.Direction `json:"target_side,omitempty" bson:"target_side,omitempty"`
	Manual     bool               `json:"manual,omitempty" bson:"manual,omitempty"`
}

// Touches reports whether id is one of the edge's endpoints.
func (e Edge) Touches(id string) bool { return e.Source == id || e.Target == id }

// =============================================================================
// Snapshot - Complete Node/Edge List
// =============================================================================

// Snapshot is the full node/edge list exchanged with the engine. Engine
// operations read a snapshot and return a replacement; they never modify
// their input.
type Snapshot struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Nodes: slices.Clone(s.Nodes),
		Edges: slices.Clone(s.Edges),
	}
}

// NodeCount returns the number of nodes.
func (s Snapshot) NodeCount() int { return len(s.Nodes) }

// EdgeCount returns the number of edges.
func (s Snapshot) EdgeCount() int { return len(s.Edges) }

// Node returns the node with the given id.
func (s Snapshot) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the edge with the given id.
func (s Snapshot) Edge(id string) (Edge, bool) {
	for _, e := range s.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}
