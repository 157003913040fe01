// Package placement finds a free spot for a new node.
//
// [Find] probes positions along the vertical axis around a desired anchor,
// alternating below and above it: offsets 0, +s, -s, +2s, -2s and so on.
// The first probe whose box overlaps nothing wins. The search is capped at
// [DefaultMaxProbes] probes; when every probe collides the last one is
// returned with Found unset and a NO_FREE_SLOT warning.
package placement

import (
	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
	"github.com/matzehuels/mindgeo/pkg/spatial"
)

// Defaults for [Request] fields left zero.
const (
	DefaultSpacing   = 50.0
	DefaultMaxProbes = 500
)

// OverlapFunc returns the ids of existing nodes that overlap candidate,
// given in absolute coordinates.
type OverlapFunc func(candidate geometry.Rect) []string

// Request describes the node to place.
type Request struct {
	Anchor    geometry.Point `json:"anchor"`              // desired position, relative to ParentID if set
	Size      geometry.Size  `json:"size"`                // size of the node being placed
	ParentID  string         `json:"parent_id,omitempty"` // intended container
	Spacing   float64        `json:"spacing,omitempty"`
	MaxProbes int            `json:"max_probes,omitempty"`
}

// Result is the chosen position.
type Result struct {
	Position geometry.Point `json:"position"` // relative to the request's parent
	Absolute geometry.Point `json:"absolute"`
	Found    bool           `json:"found"`
	Probes   int            `json:"probes"`
	Warnings []error        `json:"-"`
}

// ProbeOffset returns the vertical offset of probe i: 0, +s, -s, +2s, -2s, ...
func ProbeOffset(i int, spacing float64) float64 {
	switch {
	case i == 0:
		return 0
	case i%2 == 1:
		return float64((i+1)/2) * spacing
	default:
		return -float64(i/2) * spacing
	}
}

// Find searches for a collision-free position. When overlap is nil a
// [spatial.Index] over snap is used. A ParentID that is not in snap is
// treated as absent.
func Find(snap graph.Snapshot, req Request, overlap OverlapFunc) Result {
	if req.Spacing <= 0 {
		req.Spacing = DefaultSpacing
	}
	if req.MaxProbes <= 0 {
		req.MaxProbes = DefaultMaxProbes
	}
	if overlap == nil {
		overlap = spatial.New(snap).Overlapping
	}

	var res Result
	var origin geometry.Point
	if req.ParentID != "" {
		ix := graph.NewIndex(snap)
		if ix.Has(req.ParentID) {
			o, err := ix.AbsolutePosition(req.ParentID)
			if err != nil {
				res.Warnings = append(res.Warnings, err)
			}
			origin = o
		} else {
			res.Warnings = append(res.Warnings, errors.New(errors.ErrCodeNodeNotFound,
				"parent %q not found, placing in absolute coordinates", req.ParentID))
		}
	}
	anchor := req.Anchor.Add(origin)

	var candidate geometry.Point
	for i := 0; i < req.MaxProbes; i++ {
		candidate = geometry.Point{X: anchor.X, Y: anchor.Y + ProbeOffset(i, req.Spacing)}
		res.Probes = i + 1
		if len(overlap(geometry.RectAt(candidate, req.Size))) == 0 {
			res.Found = true
			break
		}
	}
	if !res.Found {
		res.Warnings = append(res.Warnings, errors.New(errors.ErrCodeNoFreeSlot,
			"no free slot within %d probes of (%g, %g)", req.MaxProbes, anchor.X, anchor.Y))
	}
	res.Absolute = candidate
	res.Position = candidate.Sub(origin)
	return res
}
