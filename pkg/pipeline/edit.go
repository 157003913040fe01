package pipeline

import (
	"context"

	"github.com/matzehuels/mindgeo/pkg/containment"
	"github.com/matzehuels/mindgeo/pkg/direction"
	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/graph"
	"github.com/matzehuels/mindgeo/pkg/placement"
)

// Drop resolves a drag-and-drop and re-resolves every edge whose endpoints
// moved as a result. geo may be nil to derive boxes from the snapshot.
func (r *Runner) Drop(ctx context.Context, snap graph.Snapshot, drop containment.Drop, geo containment.GeometryProvider, opts Options) (*DropResult, error) {
	s := r.begin(ctx, OpDrop, snap, &opts)
	opts.SetDefaults()
	if err := errors.ValidateNodeID(drop.NodeID); err != nil {
		return nil, s.fail(err)
	}
	if err := checkSnapshot(snap, &opts); err != nil {
		return nil, s.fail(err)
	}

	var warnings []error
	if _, ok := snap.Node(drop.NodeID); !ok {
		warnings = append(warnings, errors.New(errors.ErrCodeNodeNotFound, "dropped node %q not found; nothing changed", drop.NodeID))
	}
	cres := containment.Resolve(snap, drop, geo)
	warnings = append(warnings, cres.Warnings...)
	dres := direction.RecalcAll(cres.Snapshot)
	warnings = append(warnings, dres.Warnings...)

	res := &DropResult{
		Snapshot:     dres.Snapshot,
		ParentID:     cres.ParentID,
		Reparented:   cres.Reparented,
		ChangedEdges: dres.Changed,
		Warnings:     Warnings(warnings),
	}
	res.Stats = s.end(res.Warnings, nil)

	s.logger.Info("resolved drop",
		"node", drop.NodeID,
		"parent", cres.ParentID,
		"reparented", len(cres.Reparented),
		"duration", res.Stats.Duration)
	return res, nil
}

// Place finds a collision-free position for a new node. Zero spacing and
// probe limits in req take their values from opts.
func (r *Runner) Place(ctx context.Context, snap graph.Snapshot, req placement.Request, opts Options) (*PlaceResult, error) {
	s := r.begin(ctx, OpPlace, snap, &opts)
	if err := opts.ValidateForPlacement(); err != nil {
		return nil, s.fail(err)
	}
	if req.Size.Width < 0 || req.Size.Height < 0 {
		return nil, s.fail(errors.New(errors.ErrCodeInvalidInput, "size must not be negative"))
	}
	if err := checkSnapshot(snap, &opts); err != nil {
		return nil, s.fail(err)
	}
	if req.Spacing == 0 {
		req.Spacing = opts.Spacing
	}
	if req.MaxProbes == 0 {
		req.MaxProbes = opts.MaxProbes
	}

	p := placement.Find(snap, req, nil)
	res := &PlaceResult{
		Position: p.Position,
		Absolute: p.Absolute,
		Found:    p.Found,
		Probes:   p.Probes,
		Warnings: Warnings(p.Warnings),
	}
	res.Stats = s.end(res.Warnings, nil)

	s.logger.Info("placed node",
		"x", p.Position.X,
		"y", p.Position.Y,
		"found", p.Found,
		"probes", p.Probes,
		"duration", res.Stats.Duration)
	return res, nil
}
