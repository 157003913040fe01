package direction

import (
	"slices"

	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

// Result is the outcome of an edge recalculation.
type Result struct {
	Snapshot graph.Snapshot
	Changed  []string // ids of edges whose sides were replaced
	Warnings []error
}

// Resolve returns the source and target sides for e.
//
// Manual annotations win. Sides stored without the Manual flag are treated
// as earlier computed values and are recomputed from the bearing between
// the endpoints' absolute positions. The returned error is a warning: the
// sides are still usable. When an endpoint is missing the stored sides are
// returned unchanged with an ErrCodeNodeNotFound error.
func Resolve(ix *graph.Index, e graph.Edge) (source, target geometry.Direction, err error) {
	if e.Manual {
		if s, t, ok := manualSides(e); ok {
			return s, t, nil
		}
	}
	if !ix.Has(e.Source) || !ix.Has(e.Target) {
		return e.SourceSide, e.TargetSide, errors.New(errors.ErrCodeNodeNotFound,
			"edge %q: endpoint missing", e.ID)
	}
	from, err1 := ix.AbsolutePosition(e.Source)
	to, err2 := ix.AbsolutePosition(e.Target)
	d := geometry.DirectionBetween(from, to)
	return d, d.Opposite(), firstErr(err1, err2)
}

func manualSides(e graph.Edge) (geometry.Direction, geometry.Direction, bool) {
	s, t := e.SourceSide, e.TargetSide
	switch {
	case s.Valid() && t.Valid():
		return s, t, true
	case s.Valid():
		return s, s.Opposite(), true
	case t.Valid():
		return t.Opposite(), t, true
	default:
		return geometry.None, geometry.None, false
	}
}

// RecalcAll re-resolves every edge of snap.
func RecalcAll(snap graph.Snapshot) Result {
	ix := graph.NewIndex(snap)
	idx := make([]int, len(snap.Edges))
	for i := range idx {
		idx[i] = i
	}
	return recalc(snap, ix, idx)
}

// RecalcOne re-resolves only the edges touching nodeID. An unknown node
// leaves the snapshot unchanged.
func RecalcOne(snap graph.Snapshot, nodeID string) Result {
	ix := graph.NewIndex(snap)
	return recalc(snap, ix, ix.IncidentEdges(nodeID))
}

func recalc(snap graph.Snapshot, ix *graph.Index, idx []int) Result {
	res := Result{Snapshot: snap}
	var edges []graph.Edge
	for _, i := range idx {
		e := snap.Edges[i]
		s, t, err := Resolve(ix, e)
		if err != nil {
			res.Warnings = appendWarning(res.Warnings, err)
		}
		if s == e.SourceSide && t == e.TargetSide {
			continue
		}
		if edges == nil {
			edges = slices.Clone(snap.Edges)
		}
		edges[i].SourceSide, edges[i].TargetSide = s, t
		res.Changed = append(res.Changed, e.ID)
	}
	if edges != nil {
		res.Snapshot = graph.Snapshot{Nodes: slices.Clone(snap.Nodes), Edges: edges}
	}
	return res
}

// appendWarning drops exact repeats, which cycles produce once per edge.
func appendWarning(ws []error, err error) []error {
	for _, w := range ws {
		if w.Error() == err.Error() {
			return ws
		}
	}
	return append(ws, err)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
