package layout

import (
	"slices"

	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

// link is a traversal edge from a tree parent to one of its children.
// Virtual links stand in for containment without a matching edge.
type link struct {
	child   string
	side    geometry.Direction // stored source side, None if unset
	virtual bool
}

// tree is the breadth-first spanning tree rooted at the layout root.
type tree struct {
	ix       *graph.Index
	root     string
	abs      map[string]geometry.Point // pre-layout absolute positions
	depth    map[string]int
	parent   map[string]string
	children map[string][]link // ordered tree children
	order    []string          // visit order
	warnings []error

	ordered map[string][]link // memoized candidate order per node
}

func buildTree(ix *graph.Index, root string) *tree {
	t := &tree{
		ix:       ix,
		root:     root,
		abs:      make(map[string]geometry.Point),
		depth:    map[string]int{root: 0},
		parent:   make(map[string]string),
		children: make(map[string][]link),
		ordered:  make(map[string][]link),
	}
	queue := []string{root}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		t.order = append(t.order, u)
		for _, l := range t.candidates(u) {
			if _, seen := t.depth[l.child]; seen {
				continue
			}
			t.depth[l.child] = t.depth[u] + 1
			t.parent[l.child] = u
			t.children[u] = append(t.children[u], l)
			queue = append(queue, l.child)
		}
	}
	return t
}

// candidates returns u's outgoing links: edge targets in edge order, then
// contained children lacking an edge, sorted by absolute X.
func (t *tree) candidates(u string) []link {
	if c, ok := t.ordered[u]; ok {
		return c
	}
	var out []link
	linked := make(map[string]bool)
	for _, e := range t.ix.Outgoing(u) {
		if !t.ix.Has(e.Target) || linked[e.Target] {
			continue
		}
		linked[e.Target] = true
		out = append(out, link{child: e.Target, side: e.SourceSide})
	}
	var contained []link
	for _, c := range t.ix.Children(u) {
		if !linked[c] {
			contained = append(contained, link{child: c, virtual: true})
		}
	}
	slices.SortStableFunc(contained, func(a, b link) int {
		ax, bx := t.absOf(a.child).X, t.absOf(b.child).X
		switch {
		case ax < bx:
			return -1
		case ax > bx:
			return 1
		}
		return 0
	})
	out = append(out, contained...)
	t.ordered[u] = out
	return out
}

// absOf returns the memoized pre-layout absolute position of id.
func (t *tree) absOf(id string) geometry.Point {
	if p, ok := t.abs[id]; ok {
		return p
	}
	p, err := t.ix.AbsolutePosition(id)
	if err != nil {
		t.warnings = append(t.warnings, err)
	}
	t.abs[id] = p
	return p
}

// side returns the side of parent on which the child l hangs: the stored
// source side when present, otherwise the bearing between their current
// positions.
func (t *tree) side(parent string, l link) geometry.Direction {
	if l.side.Valid() {
		return l.side
	}
	return geometry.DirectionBetween(t.absOf(parent), t.absOf(l.child))
}

// preorder returns the tree nodes depth-first, children in order.
func (t *tree) preorder() []string {
	var out []string
	var walk func(id string)
	walk = func(id string) {
		out = append(out, id)
		for _, l := range t.children[id] {
			walk(l.child)
		}
	}
	walk(t.root)
	return out
}

// spread returns the offset of item i among n items centered on zero.
func spread(i, n int, step float64) float64 {
	return (float64(i) - float64(n-1)/2) * step
}
