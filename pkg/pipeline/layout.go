package pipeline

import (
	"context"
	"strings"

	"github.com/matzehuels/mindgeo/pkg/cache"
	"github.com/matzehuels/mindgeo/pkg/direction"
	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/graph"
	"github.com/matzehuels/mindgeo/pkg/layout"
)

// =============================================================================
// Layout
// =============================================================================

// ResolveRoot returns root when set. Otherwise it picks the only top-level
// node of snap, or fails with ErrCodeInvalidInput when there is none or
// more than one. Callers that can ask the user should do so before.
func ResolveRoot(snap graph.Snapshot, root string) (string, error) {
	if root != "" {
		return root, nil
	}
	roots := graph.NewIndex(snap).Roots()
	switch len(roots) {
	case 1:
		return roots[0], nil
	case 0:
		return "", errors.New(errors.ErrCodeInvalidInput, "snapshot has no root node; pass a root explicitly")
	default:
		return "", errors.New(errors.ErrCodeInvalidInput,
			"snapshot has %d roots (%s); pass one explicitly", len(roots), strings.Join(roots, ", "))
	}
}

// Layout arranges the tree reachable from opts.Root. An empty root is
// resolved with [ResolveRoot]. A root missing from snap leaves the snapshot
// unchanged and adds a NODE_NOT_FOUND warning.
func (r *Runner) Layout(ctx context.Context, snap graph.Snapshot, opts Options) (*LayoutResult, error) {
	s := r.begin(ctx, OpLayout, snap, &opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, s.fail(err)
	}
	if err := checkSnapshot(snap, &opts); err != nil {
		return nil, s.fail(err)
	}
	root, err := ResolveRoot(snap, opts.Root)
	if err != nil {
		return nil, s.fail(err)
	}
	opts.Root = root

	hash, err := snapshotHash(snap)
	if err != nil {
		return nil, s.fail(err)
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	res, hit, err := cached(ctx, r, s, key, opts.Refresh, ttlOr(r.LayoutTTL, cache.LayoutTTL), func() (LayoutResult, error) {
		return computeLayout(snap, opts), nil
	})
	if err != nil {
		return nil, s.fail(err)
	}
	s.stats.CacheHit = hit
	res.Stats = s.end(res.Warnings, nil)

	s.logger.Info("computed layout",
		"root", root,
		"mode", opts.Layout.Mode,
		"reachable", len(res.Depths),
		"moved", len(res.Moved),
		"duration", res.Stats.Duration)
	return &res, nil
}

func computeLayout(snap graph.Snapshot, opts Options) LayoutResult {
	out := LayoutResult{Root: opts.Root}
	if !graph.NewIndex(snap).Has(opts.Root) {
		out.Snapshot = snap
		out.Warnings = []Warning{{
			Code:    string(errors.ErrCodeNodeNotFound),
			Message: "root " + opts.Root + " not found; layout skipped",
		}}
		return out
	}
	res := layout.Apply(snap, opts.Root, opts.Layout)
	out.Snapshot = res.Snapshot
	out.Moved = res.Moved
	out.Depths = res.Depths
	out.Sectors = res.Sectors
	out.ChangedEdges = res.ChangedEdges
	out.Warnings = Warnings(res.Warnings)
	return out
}

// =============================================================================
// Edge recalculation
// =============================================================================

// Recalc re-resolves edge sides. With an empty nodeID every edge is
// recalculated; otherwise only edges touching nodeID.
func (r *Runner) Recalc(ctx context.Context, snap graph.Snapshot, nodeID string, opts Options) (*RecalcResult, error) {
	s := r.begin(ctx, OpRecalc, snap, &opts)
	opts.SetDefaults()
	if nodeID != "" {
		if err := errors.ValidateNodeID(nodeID); err != nil {
			return nil, s.fail(err)
		}
	}
	if err := checkSnapshot(snap, &opts); err != nil {
		return nil, s.fail(err)
	}

	hash, err := snapshotHash(snap)
	if err != nil {
		return nil, s.fail(err)
	}
	key := r.Keyer.RecalcKey(hash, nodeID)

	res, hit, err := cached(ctx, r, s, key, opts.Refresh, ttlOr(r.RecalcTTL, cache.RecalcTTL), func() (RecalcResult, error) {
		var d direction.Result
		if nodeID == "" {
			d = direction.RecalcAll(snap)
		} else {
			d = direction.RecalcOne(snap, nodeID)
		}
		return RecalcResult{
			Snapshot: d.Snapshot,
			Changed:  d.Changed,
			Warnings: Warnings(d.Warnings),
		}, nil
	})
	if err != nil {
		return nil, s.fail(err)
	}
	s.stats.CacheHit = hit
	res.Stats = s.end(res.Warnings, nil)

	s.logger.Info("recalculated edges",
		"node", nodeID,
		"changed", len(res.Changed),
		"duration", res.Stats.Duration)
	return &res, nil
}
