// Package pipeline runs mindgeo engine operations for the CLI and the
// HTTP server.
//
// Every operation takes a [graph.Snapshot] and returns a new one together
// with the ids it touched, soft warnings and timing stats. By routing both
// entry points through a [Runner], caching, logging and observability hooks
// behave the same everywhere.
//
// # Operations
//
//   - Layout: arrange the tree reachable from a root ([layout.Apply])
//   - Drop: resolve a drag-and-drop into a container ([containment.Resolve])
//   - Place: find a free spot for a new node ([placement.Find])
//   - Recalc: re-resolve edge sides ([direction.RecalcAll], [direction.RecalcOne])
//   - Import: turn a bulleted outline into nodes ([outline.Parse], [outline.Build])
//
// Layout and Recalc are pure functions of their input and are cached by
// snapshot hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Layout(ctx, snap, pipeline.Options{
//	    Root:   "topic",
//	    Layout: layout.Options{Mode: layout.Radial},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	graph.WriteSnapshot(res.Snapshot, os.Stdout)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindgeo/pkg/cache"
	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
	"github.com/matzehuels/mindgeo/pkg/layout"
	"github.com/matzehuels/mindgeo/pkg/outline"
	"github.com/matzehuels/mindgeo/pkg/placement"
)

// Operation names reported to observability hooks and logs.
const (
	OpLayout = "layout"
	OpDrop   = "containment"
	OpPlace  = "placement"
	OpRecalc = "recalc"
	OpImport = "import"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains configuration shared by all operations. Each operation
// reads only the fields it needs. This struct supports JSON serialization
// for API requests.
type Options struct {
	// Layout options
	Root   string         `json:"root,omitempty"`
	Layout layout.Options `json:"layout"`

	// Placement options
	Spacing   float64 `json:"spacing,omitempty"`
	MaxProbes int     `json:"max_probes,omitempty"`

	// Import options
	ParentID   string          `json:"parent_id,omitempty"`   // attach imported items below this node
	Origin     *geometry.Point `json:"origin,omitempty"`      // absolute start of new trees; searched when nil
	NodeSize   geometry.Size   `json:"node_size"`             // size of imported nodes
	AutoLayout bool            `json:"auto_layout,omitempty"` // lay out each imported tree

	// Strict rejects snapshots that fail [graph.Snapshot.Validate] instead
	// of degrading with warnings.
	Strict bool `json:"strict,omitempty"`

	// Refresh bypasses the cache for reads. Results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-"`
	IDFunc func() string `json:"-"`
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	o.Layout = o.Layout.WithDefaults()
	if o.Spacing == 0 {
		o.Spacing = placement.DefaultSpacing
	}
	if o.MaxProbes == 0 {
		o.MaxProbes = placement.DefaultMaxProbes
	}
	if o.NodeSize.Width == 0 && o.NodeSize.Height == 0 {
		o.NodeSize = outline.DefaultNodeSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults and checks the layout options.
func (o *Options) ValidateForLayout() error {
	o.SetDefaults()
	return o.Layout.Validate()
}

// ValidateForPlacement sets defaults and checks the search options.
func (o *Options) ValidateForPlacement() error {
	o.SetDefaults()
	if err := errors.ValidateSpacing("spacing", o.Spacing); err != nil {
		return err
	}
	if o.MaxProbes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_probes must not be negative, got %d", o.MaxProbes)
	}
	return nil
}

// ValidateForImport checks everything an import may touch.
func (o *Options) ValidateForImport() error {
	if err := o.ValidateForPlacement(); err != nil {
		return err
	}
	if o.NodeSize.Width <= 0 || o.NodeSize.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "node_size must be positive, got %vx%v",
			o.NodeSize.Width, o.NodeSize.Height)
	}
	if o.ParentID != "" {
		if err := errors.ValidateNodeID(o.ParentID); err != nil {
			return err
		}
	}
	if o.AutoLayout {
		return o.Layout.Validate()
	}
	return nil
}

// LayoutKeyOpts returns cache key options for a layout run.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Root:             o.Root,
		Mode:             string(o.Layout.Mode),
		HorizontalOffset: o.Layout.HorizontalOffset,
		RootSpacing:      o.Layout.RootSpacing,
		ChildSpacing:     o.Layout.ChildSpacing,
		VerticalGap:      o.Layout.VerticalGap,
	}
}

// =============================================================================
// Results
// =============================================================================

// Warning is a serializable engine warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Code == "" {
		return w.Message
	}
	return w.Code + ": " + w.Message
}

// Warnings converts engine warnings, dropping nils.
func Warnings(errs []error) []Warning {
	var out []Warning
	for _, err := range errs {
		if err == nil {
			continue
		}
		out = append(out, Warning{
			Code:    string(errors.GetCode(err)),
			Message: errors.UserMessage(err),
		})
	}
	return out
}

// Stats contains execution statistics for one operation.
type Stats struct {
	NodeCount int           `json:"node_count"`
	EdgeCount int           `json:"edge_count"`
	Duration  time.Duration `json:"duration_ns"`
	CacheHit  bool          `json:"cache_hit"`
}

// LayoutResult is the outcome of [Runner.Layout].
type LayoutResult struct {
	Snapshot     graph.Snapshot           `json:"snapshot"`
	Root         string                   `json:"root"`
	Moved        []string                 `json:"moved,omitempty"`
	Depths       map[string]int           `json:"depths,omitempty"`
	Sectors      map[string]layout.Sector `json:"sectors,omitempty"`
	ChangedEdges []string                 `json:"changed_edges,omitempty"`
	Warnings     []Warning                `json:"warnings,omitempty"`
	Stats        Stats                    `json:"stats"`
}

// DropResult is the outcome of [Runner.Drop].
type DropResult struct {
	Snapshot     graph.Snapshot `json:"snapshot"`
	ParentID     string         `json:"parent_id,omitempty"`
	Reparented   []string       `json:"reparented,omitempty"`
	ChangedEdges []string       `json:"changed_edges,omitempty"`
	Warnings     []Warning      `json:"warnings,omitempty"`
	Stats        Stats          `json:"stats"`
}

// PlaceResult is the outcome of [Runner.Place].
type PlaceResult struct {
	Position geometry.Point `json:"position"`
	Absolute geometry.Point `json:"absolute"`
	Found    bool           `json:"found"`
	Probes   int            `json:"probes"`
	Warnings []Warning      `json:"warnings,omitempty"`
	Stats    Stats          `json:"stats"`
}

// RecalcResult is the outcome of [Runner.Recalc].
type RecalcResult struct {
	Snapshot graph.Snapshot `json:"snapshot"`
	Changed  []string       `json:"changed,omitempty"`
	Warnings []Warning      `json:"warnings,omitempty"`
	Stats    Stats          `json:"stats"`
}

// ImportResult is the outcome of [Runner.Import].
type ImportResult struct {
	Snapshot graph.Snapshot `json:"snapshot"`
	Roots    []string       `json:"roots,omitempty"`
	Added    []string       `json:"added,omitempty"`
	Moved    []string       `json:"moved,omitempty"`
	Warnings []Warning      `json:"warnings,omitempty"`
	Stats    Stats          `json:"stats"`
}
