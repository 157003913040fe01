package layout

import (
	"slices"

	"github.com/matzehuels/mindgeo/pkg/direction"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

// Result is the outcome of a layout run.
type Result struct {
	Snapshot     graph.Snapshot    `json:"snapshot"`
	Moved        []string          `json:"moved,omitempty"`         // nodes whose stored position changed
	Depths       map[string]int    `json:"depths,omitempty"`        // traversal depth of every reachable node
	Sectors      map[string]Sector `json:"sectors,omitempty"`       // radial mode only
	ChangedEdges []string          `json:"changed_edges,omitempty"` // edges whose sides were re-resolved
	Warnings     []error           `json:"-"`
}

// Reachable returns the number of nodes the traversal visited, root included.
func (r Result) Reachable() int { return len(r.Depths) }

// Apply lays out every node reachable from rootID. Unreachable nodes keep
// their position. An unknown root returns snap unchanged. Zero option
// fields take their defaults; an unknown mode falls back to [Horizontal].
func Apply(snap graph.Snapshot, rootID string, opts Options) Result {
	ix := graph.NewIndex(snap)
	if !ix.Has(rootID) {
		return Result{Snapshot: snap}
	}
	opts = opts.WithDefaults()

	t := buildTree(ix, rootID)
	origin := t.absOf(rootID)

	placed := make(map[string]geometry.Point, len(t.order))
	var sectors map[string]Sector
	switch mode, _ := ParseMode(string(opts.Mode)); mode {
	case Vertical:
		placeVertical(t, opts, origin, placed)
	case Radial:
		sectors = placeRadial(t, opts, origin, placed)
	default:
		placeHorizontal(t, opts, rootID, origin, placed)
	}

	res := Result{
		Depths:  t.depth,
		Sectors: sectors,
	}
	nodes, moved := relativize(t, snap.Nodes, placed)
	res.Moved = moved

	recalc := direction.RecalcAll(graph.Snapshot{Nodes: nodes, Edges: slices.Clone(snap.Edges)})
	res.Snapshot = recalc.Snapshot
	res.ChangedEdges = recalc.Changed
	res.Warnings = append(t.warnings, recalc.Warnings...)
	return res
}

// relativize converts placed absolute positions into parent-relative ones.
// A parent that was not placed keeps its old absolute position; unplaced
// nodes are copied unchanged.
func relativize(t *tree, nodes []graph.Node, placed map[string]geometry.Point) ([]graph.Node, []string) {
	final := func(id string) geometry.Point {
		if p, ok := placed[id]; ok {
			return p
		}
		return t.absOf(id)
	}

	out := slices.Clone(nodes)
	var moved []string
	for i := range out {
		n := &out[i]
		p, ok := placed[n.ID]
		if !ok {
			continue
		}
		if parent, hasParent := t.ix.Parent(n.ID); hasParent {
			p = p.Sub(final(parent))
		}
		if p != n.Position {
			n.Position = p
			moved = append(moved, n.ID)
		}
	}
	return out, moved
}
