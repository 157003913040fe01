// Package graph defines the mind-map snapshot model and its structural queries.
//
// A [Snapshot] is the node/edge list the engine consumes and produces. Two
// relationships coexist and are deliberately independent:
//
//   - Containment: a [Node] may name a container through ParentID. Its
//     Position is then relative to the container's top-left corner, and its
//     Depth is the container's depth plus one.
//   - Edges: an [Edge] is a directed connection with a source and target side.
//     A node may be contained in one frame while being connected to another.
//
// # Index
//
// [NewIndex] builds a read-only lookup over a snapshot. It answers the
// questions every engine component asks:
//
//	ix := graph.NewIndex(snap)
//	abs, err := ix.AbsolutePosition("note-1") // walks the parent chain
//	box, ok := ix.BoundingBox("frame-a")      // absolute position + size
//	ix.IsDescendant("note-1", "frame-a")
//
// Parent-chain walks are bounded by the node count and guarded by a visited
// set. A cyclic parent chain yields a partial result and an error with code
// CYCLE_DETECTED rather than looping.
//
// # Serialization
//
// Snapshots use a plain JSON format:
//
//	{
//	  "nodes": [
//	    {"id": "root", "position": {"x": 0, "y": 0}, "size": {"width": 120, "height": 40}},
//	    {"id": "a", "parent_id": "root", "position": {"x": 10, "y": 10}, "size": {"width": 80, "height": 30}, "depth": 1}
//	  ],
//	  "edges": [{"id": "e1", "source": "root", "target": "a", "source_side": "right", "target_side": "left"}]
//	}
//
// Use [ReadSnapshotFile], [WriteSnapshotFile], [MarshalSnapshot] and
// [UnmarshalSnapshot] to move snapshots across process boundaries.
package graph
