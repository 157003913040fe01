package pipeline

import (
	"context"

	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
	"github.com/matzehuels/mindgeo/pkg/layout"
	"github.com/matzehuels/mindgeo/pkg/outline"
	"github.com/matzehuels/mindgeo/pkg/placement"
)

// Import parses a bulleted outline and merges it into snap.
//
// With opts.ParentID set, top-level items become children of that node.
// Otherwise each top-level item starts a new tree at opts.Origin or, when
// Origin is nil, at the first free spot near the canvas origin. With
// opts.AutoLayout each affected tree is laid out before the next one is
// placed, so later trees avoid earlier ones.
func (r *Runner) Import(ctx context.Context, snap graph.Snapshot, text string, opts Options) (*ImportResult, error) {
	s := r.begin(ctx, OpImport, snap, &opts)
	if err := opts.ValidateForImport(); err != nil {
		return nil, s.fail(err)
	}
	if err := checkSnapshot(snap, &opts); err != nil {
		return nil, s.fail(err)
	}

	items := outline.Parse(text)
	res := &ImportResult{Snapshot: snap}
	if len(items) == 0 {
		res.Stats = s.end(nil, nil)
		s.logger.Info("outline has no bullets; nothing imported")
		return res, nil
	}

	var warnings []error
	moved := map[string]bool{}
	apply := func(root string) {
		if !opts.AutoLayout {
			return
		}
		lres := layout.Apply(res.Snapshot, root, opts.Layout)
		res.Snapshot = lres.Snapshot
		for _, id := range lres.Moved {
			moved[id] = true
		}
		warnings = append(warnings, lres.Warnings...)
	}

	build := outline.BuildOptions{
		ParentID: opts.ParentID,
		NodeSize: opts.NodeSize,
		IDFunc:   opts.IDFunc,
	}
	if opts.ParentID != "" {
		imp, err := outline.Build(res.Snapshot, items, build)
		if err != nil {
			return nil, s.fail(err)
		}
		res.Snapshot = imp.Snapshot
		res.Roots = imp.Roots
		res.Added = imp.Added
		apply(opts.ParentID)
	} else {
		for _, it := range items {
			build.Origin = importOrigin(res.Snapshot, opts, &warnings)
			imp, err := outline.Build(res.Snapshot, []*outline.Item{it}, build)
			if err != nil {
				return nil, s.fail(err)
			}
			res.Snapshot = imp.Snapshot
			res.Roots = append(res.Roots, imp.Roots...)
			res.Added = append(res.Added, imp.Added...)
			apply(imp.Roots[0])
		}
	}

	added := make(map[string]bool, len(res.Added))
	for _, id := range res.Added {
		added[id] = true
	}
	for _, n := range res.Snapshot.Nodes {
		if moved[n.ID] && !added[n.ID] {
			res.Moved = append(res.Moved, n.ID)
		}
	}

	res.Warnings = Warnings(warnings)
	res.Stats = s.end(res.Warnings, nil)
	s.logger.Info("imported outline",
		"roots", len(res.Roots),
		"nodes", len(res.Added),
		"duration", res.Stats.Duration)
	return res, nil
}

// importOrigin returns the fixed origin or searches for a free one.
func importOrigin(snap graph.Snapshot, opts Options, warnings *[]error) geometry.Point {
	if opts.Origin != nil {
		return *opts.Origin
	}
	p := placement.Find(snap, placement.Request{
		Size:      opts.NodeSize,
		Spacing:   opts.Spacing,
		MaxProbes: opts.MaxProbes,
	}, nil)
	*warnings = append(*warnings, p.Warnings...)
	return p.Absolute
}
