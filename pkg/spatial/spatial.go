// Package spatial answers box-overlap queries over a snapshot.
//
// The index is a flat list of absolute boxes scanned linearly. Mind maps
// hold hundreds of nodes, so a query is a few hundred comparisons.
package spatial

import (
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

type entry struct {
	id  string
	box geometry.Rect
}

// Index holds absolute node boxes.
type Index struct {
	entries []entry
}

// New indexes every measured node of snap except the excluded ids.
func New(snap graph.Snapshot, exclude ...string) *Index {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	gix := graph.NewIndex(snap)
	ix := &Index{entries: make([]entry, 0, len(snap.Nodes))}
	for _, n := range snap.Nodes {
		if skip[n.ID] {
			continue
		}
		if box, ok := gix.BoundingBox(n.ID); ok {
			ix.Insert(n.ID, box)
		}
	}
	return ix
}

// Insert adds a box. Empty boxes are ignored.
func (ix *Index) Insert(id string, box geometry.Rect) {
	if box.Empty() {
		return
	}
	ix.entries = append(ix.entries, entry{id: id, box: box})
}

// Len returns the number of indexed boxes.
func (ix *Index) Len() int { return len(ix.entries) }

// Overlapping returns the ids of indexed boxes that strictly overlap box,
// in insertion order. Touching edges do not count.
func (ix *Index) Overlapping(box geometry.Rect) []string {
	var ids []string
	for _, e := range ix.entries {
		if e.box.Intersects(box) {
			ids = append(ids, e.id)
		}
	}
	return ids
}
