package graph

import (
	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
)

// Index is a read-only lookup structure over a snapshot. It answers the
// structural questions every engine component asks: which node has a given
// id, which nodes a container holds, which edges leave a node and where a
// node sits in absolute coordinates.
//
// The Index keeps references to the snapshot's slices; callers must not
// modify the snapshot while the index is in use.
type Index struct {
	nodes    []Node
	edges    []Edge
	pos      map[string]int
	children map[string][]string // container id -> contained ids, input order
	outgoing map[string][]int    // source id -> edge indices, input order
	incident map[string][]int    // node id -> indices of edges touching it
	incoming map[string]int      // node id -> number of inbound edges
}

// NewIndex builds an index for s. When ids repeat, the first occurrence wins.
func NewIndex(s Snapshot) *Index {
	ix := &Index{
		nodes:    s.Nodes,
		edges:    s.Edges,
		pos:      make(map[string]int, len(s.Nodes)),
		children: make(map[string][]string),
		outgoing: make(map[string][]int),
		incident: make(map[string][]int),
		incoming: make(map[string]int),
	}
	for i, n := range s.Nodes {
		if _, dup := ix.pos[n.ID]; !dup {
			ix.pos[n.ID] = i
		}
	}
	for i, n := range s.Nodes {
		if ix.pos[n.ID] != i || n.ParentID == "" {
			continue
		}
		ix.children[n.ParentID] = append(ix.children[n.ParentID], n.ID)
	}
	for i, e := range s.Edges {
		ix.outgoing[e.Source] = append(ix.outgoing[e.Source], i)
		ix.incident[e.Source] = append(ix.incident[e.Source], i)
		if e.Target != e.Source {
			ix.incident[e.Target] = append(ix.incident[e.Target], i)
		}
		ix.incoming[e.Target]++
	}
	return ix
}

// Len returns the number of distinct nodes.
func (ix *Index) Len() int { return len(ix.pos) }

// Has reports whether a node with the given id exists.
func (ix *Index) Has(id string) bool {
	_, ok := ix.pos[id]
	return ok
}

// Node returns the node with the given id.
func (ix *Index) Node(id string) (Node, bool) {
	i, ok := ix.pos[id]
	if !ok {
		return Node{}, false
	}
	return ix.nodes[i], true
}

// Order returns the input position of the node, or -1 if unknown.
func (ix *Index) Order(id string) int {
	if i, ok := ix.pos[id]; ok {
		return i
	}
	return -1
}

// Nodes returns the indexed nodes in input order.
func (ix *Index) Nodes() []Node { return ix.nodes }

// Edges returns the indexed edges in input order.
func (ix *Index) Edges() []Edge { return ix.edges }

// Children returns the ids of nodes whose ParentID is id, in input order.
func (ix *Index) Children(id string) []string { return ix.children[id] }

// Outgoing returns the edges whose source is id, in input order.
func (ix *Index) Outgoing(id string) []Edge {
	idx := ix.outgoing[id]
	out := make([]Edge, len(idx))
	for i, j := range idx {
		out[i] = ix.edges[j]
	}
	return out
}

// IncidentEdges returns the positions in Edges of every edge touching id.
func (ix *Index) IncidentEdges(id string) []int { return ix.incident[id] }

// InDegree returns the number of edges targeting id.
func (ix *Index) InDegree(id string) int { return ix.incoming[id] }

// Parent returns the id of the node's container when that container exists
// in the index.
func (ix *Index) Parent(id string) (string, bool) {
	n, ok := ix.Node(id)
	if !ok || n.ParentID == "" || !ix.Has(n.ParentID) {
		return "", false
	}
	return n.ParentID, true
}

// Roots returns nodes that have neither a container nor an inbound edge,
// in input order. These are the natural candidates for a layout root.
func (ix *Index) Roots() []string {
	var roots []string
	for i, n := range ix.nodes {
		if ix.pos[n.ID] != i {
			continue
		}
		if _, hasParent := ix.Parent(n.ID); hasParent {
			continue
		}
		if ix.incoming[n.ID] > 0 {
			continue
		}
		roots = append(roots, n.ID)
	}
	return roots
}

// Ancestors returns the container chain of id, nearest first.
//
// The walk is bounded by the node count and guarded by a visited set, so it
// terminates even when parent links form a cycle. In that case the chain up
// to the repeat is returned together with an ErrCodeCycle error.
func (ix *Index) Ancestors(id string) ([]string, error) {
	var chain []string
	seen := map[string]bool{id: true}
	cur := id
	for steps := 0; steps <= ix.Len(); steps++ {
		parent, ok := ix.Parent(cur)
		if !ok {
			return chain, nil
		}
		if seen[parent] {
			return chain, errors.New(errors.ErrCodeCycle, "parent chain of %q loops at %q", id, parent)
		}
		seen[parent] = true
		chain = append(chain, parent)
		cur = parent
	}
	return chain, errors.New(errors.ErrCodeCycle, "parent chain of %q exceeds %d nodes", id, ix.Len())
}

// AncestorDepth returns the length of the node's container chain.
func (ix *Index) AncestorDepth(id string) int {
	chain, _ := ix.Ancestors(id)
	return len(chain)
}

// IsDescendant reports whether ancestor appears in id's container chain.
func (ix *Index) IsDescendant(id, ancestor string) bool {
	chain, _ := ix.Ancestors(id)
	for _, a := range chain {
		if a == ancestor {
			return true
		}
	}
	return false
}

// Descendants returns every node nested (transitively) inside id.
func (ix *Index) Descendants(id string) map[string]bool {
	out := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range ix.children[cur] {
			if c == id || out[c] {
				continue
			}
			out[c] = true
			stack = append(stack, c)
		}
	}
	return out
}

// AbsolutePosition resolves the node's position in global coordinates by
// adding the relative positions of every container up the chain. On a
// cycle the partial sum is returned along with an ErrCodeCycle error.
func (ix *Index) AbsolutePosition(id string) (geometry.Point, error) {
	n, ok := ix.Node(id)
	if !ok {
		return geometry.Point{}, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	abs := n.Position
	chain, err := ix.Ancestors(id)
	for _, a := range chain {
		p, _ := ix.Node(a)
		abs = abs.Add(p.Position)
	}
	return abs, err
}

// BoundingBox returns the node's rendered box in absolute coordinates,
// derived from its absolute position and stored size. Nodes without a
// measured size report false.
func (ix *Index) BoundingBox(id string) (geometry.Rect, bool) {
	n, ok := ix.Node(id)
	if !ok {
		return geometry.Rect{}, false
	}
	abs, _ := ix.AbsolutePosition(id)
	r := geometry.RectAt(abs, n.Size)
	if r.Empty() {
		return geometry.Rect{}, false
	}
	return r, true
}
