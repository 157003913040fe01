package containment

import (
	"slices"

	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

// GeometryProvider reports the rendered box of a node in absolute
// coordinates. ok is false for nodes that have not been measured.
type GeometryProvider interface {
	BoundingBox(id string) (box geometry.Rect, ok bool)
}

// Boxes is a [GeometryProvider] backed by client measurements. Nodes
// without an entry are unmeasured.
type Boxes map[string]geometry.Rect

// BoundingBox returns the measured box of id.
func (b Boxes) BoundingBox(id string) (geometry.Rect, bool) {
	r, ok := b[id]
	return r, ok
}

// Drop describes a completed drag.
type Drop struct {
	NodeID string         `json:"node_id"`
	Point  geometry.Point `json:"point"` // new absolute top-left corner
}

// Result is the outcome of a drop.
type Result struct {
	Snapshot   graph.Snapshot `json:"snapshot"`
	ParentID   string         `json:"parent_id,omitempty"`  // container of the dropped node after the drop
	Reparented []string       `json:"reparented,omitempty"` // nodes whose container changed
	Warnings   []error        `json:"-"`
}

// Resolve applies a drop to snap. When geo is nil, boxes are derived from
// the snapshot itself. An unknown node id returns snap unchanged.
func Resolve(snap graph.Snapshot, drop Drop, geo GeometryProvider) Result {
	ix := graph.NewIndex(snap)
	if !ix.Has(drop.NodeID) {
		return Result{Snapshot: snap}
	}
	if geo == nil {
		geo = ix
	}

	dragged, _ := ix.Node(drop.NodeID)
	subtree := ix.Descendants(drop.NodeID)
	subtree[drop.NodeID] = true

	res := Result{}
	winner := findContainer(ix, geo, drop.Point, subtree)

	nodes := slices.Clone(snap.Nodes)
	parent := make(map[string]string, len(nodes))
	for _, n := range nodes {
		parent[n.ID] = n.ParentID
	}
	at := make(map[string]int, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		at[nodes[i].ID] = i
	}

	// Drop point in the container's frame.
	pos := drop.Point
	if winner != "" {
		origin, err := ix.AbsolutePosition(winner)
		if err != nil {
			res.Warnings = append(res.Warnings, err)
		}
		pos = drop.Point.Sub(origin)
	}
	d := &nodes[at[drop.NodeID]]
	d.Position = pos
	if d.ParentID != winner {
		d.ParentID = winner
		res.Reparented = append(res.Reparented, drop.NodeID)
	}
	parent[drop.NodeID] = winner
	res.ParentID = winner

	// Adopt nodes now fully inside the dragged node's new box. A measured
	// size wins over the stored one.
	size := dragged.Size
	if m, ok := geo.BoundingBox(drop.NodeID); ok && !m.Empty() {
		size = geometry.Size{Width: m.Width, Height: m.Height}
	}
	box := geometry.RectAt(drop.Point, size)
	if !box.Empty() {
		for _, id := range adoptionCandidates(ix, geo, box, subtree) {
			if isAncestor(parent, drop.NodeID, id) || isAncestor(parent, id, drop.NodeID) {
				continue
			}
			abs, err := ix.AbsolutePosition(id)
			if err != nil {
				res.Warnings = append(res.Warnings, err)
			}
			n := &nodes[at[id]]
			n.ParentID = drop.NodeID
			n.Position = abs.Sub(drop.Point)
			parent[id] = drop.NodeID
			res.Reparented = append(res.Reparented, id)
		}
	}

	_, warnings := graph.NormalizeDepths(nodes)
	res.Warnings = append(res.Warnings, warnings...)
	res.Snapshot = graph.Snapshot{
		Nodes: TopologicalOrder(nodes),
		Edges: slices.Clone(snap.Edges),
	}
	return res
}

// findContainer returns the deepest candidate whose box contains p. Ties go
// to the candidate listed first.
func findContainer(ix *graph.Index, geo GeometryProvider, p geometry.Point, exclude map[string]bool) string {
	winner, best := "", -1
	for _, n := range ix.Nodes() {
		if exclude[n.ID] {
			continue
		}
		box, ok := geo.BoundingBox(n.ID)
		if !ok || !box.Contains(p) {
			continue
		}
		if depth := ix.AncestorDepth(n.ID); depth > best {
			winner, best = n.ID, depth
		}
	}
	return winner
}

// adoptionCandidates lists nodes outside exclude whose box lies inside box,
// shallowest first so nested frames keep their own children.
func adoptionCandidates(ix *graph.Index, geo GeometryProvider, box geometry.Rect, exclude map[string]bool) []string {
	var ids []string
	for _, n := range ix.Nodes() {
		if exclude[n.ID] {
			continue
		}
		b, ok := geo.BoundingBox(n.ID)
		if ok && box.ContainsRect(b) {
			ids = append(ids, n.ID)
		}
	}
	slices.SortStableFunc(ids, func(a, b string) int {
		return ix.AncestorDepth(a) - ix.AncestorDepth(b)
	})
	return ids
}

// isAncestor reports whether ancestor is on id's parent chain.
func isAncestor(parent map[string]string, ancestor, id string) bool {
	seen := map[string]bool{id: true}
	for cur := parent[id]; cur != ""; cur = parent[cur] {
		if cur == ancestor {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
	}
	return false
}

// TopologicalOrder returns nodes reordered so every container precedes its
// contents. Nodes keep their input order except that a container listed
// after one of its descendants moves to just before the earliest one.
// Cyclic chains are emitted in input order once the cycle is detected.
func TopologicalOrder(nodes []graph.Node) []graph.Node {
	at := make(map[string]int, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		at[nodes[i].ID] = i
	}
	out := make([]graph.Node, 0, len(nodes))
	emitted := make([]bool, len(nodes))
	visiting := make([]bool, len(nodes))

	var emit func(i int)
	emit = func(i int) {
		if emitted[i] || visiting[i] {
			return
		}
		visiting[i] = true
		if p, ok := at[nodes[i].ParentID]; ok && nodes[i].ParentID != "" {
			emit(p)
		}
		visiting[i] = false
		emitted[i] = true
		out = append(out, nodes[i])
	}
	for i := range nodes {
		emit(i)
	}
	return out
}
