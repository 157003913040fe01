// Package pkg provides the libraries behind mindgeo, the geometry engine of a
// mind-map canvas.
//
// # Overview
//
// A mind map is a set of positioned nodes, nested into containers, and
// joined by directed edges. The engine works on whole snapshots: every
// operation takes a snapshot and returns a replacement. The pkg directory
// is organized into three areas:
//
//  1. Model - geometry primitives and the snapshot graph
//  2. Algorithms - layout, containment, placement, edge sides, outline import
//  3. Infrastructure - pipeline, caching, configuration, errors, hooks
//
// # Architecture
//
// The typical data flow through an edit:
//
//	canvas snapshot (JSON)
//	         ↓
//	    [pipeline] Runner (validation, caching, hooks)
//	         ↓
//	    [layout] | [containment] | [placement] | [outline]
//	         ↓
//	    [direction] (re-resolve edge sides)
//	         ↓
//	updated snapshot (JSON)
//
// # Quick Start
//
// Lay out the only tree in a snapshot:
//
//	snap, _ := graph.ReadSnapshotFile("map.json")
//	r := pipeline.NewRunner(nil, nil, nil)
//	res, err := r.Layout(ctx, snap, pipeline.Options{
//	    Layout: layout.Options{Mode: layout.Radial},
//	})
//	_ = graph.WriteSnapshotFile(res.Snapshot, "map.layout.json")
//
// # Package Organization
//
// ## Model
//
// [geometry] - Points, sizes, rectangles, bearings and the four sides an
// edge can attach to.
//
// [graph] - Nodes, edges and snapshots, plus [graph.Index] for parent,
// child and absolute-position queries. Reads and writes the JSON format.
//
// ## Algorithms
//
// [layout] - Horizontal, vertical and radial tree arrangement.
//
// [containment] - Drag-and-drop resolution: which container a dropped node
// joins and which nodes it adopts.
//
// [spatial] - Overlap queries over absolute node boxes.
//
// [placement] - Free-position search for new nodes.
//
// [direction] - Edge side resolution from node bearings.
//
// [outline] - Bulleted-outline parsing and node creation.
//
// ## Infrastructure
//
// [pipeline] - The entry point shared by the CLI and the HTTP server.
//
// [cache] - Result caches: file, Redis, MongoDB and a no-op backend.
//
// [config] - TOML settings.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for operations, caches and HTTP requests.
//
// [buildinfo] - Version metadata stamped at build time.
package pkg
