package server

import (
	"net/http"

	"github.com/matzehuels/mindgeo/pkg/containment"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
	"github.com/matzehuels/mindgeo/pkg/pipeline"
	"github.com/matzehuels/mindgeo/pkg/placement"
)

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Snapshot graph.Snapshot   `json:"snapshot"`
	Root     string           `json:"root,omitempty" validate:"max=256"`
	Options  pipeline.Options `json:"options"`
}

// ContainmentRequest is the body of POST /v1/containment. Boxes carries
// rendered node measurements in absolute coordinates; when empty, boxes
// are derived from the snapshot.
type ContainmentRequest struct {
	Snapshot graph.Snapshot           `json:"snapshot"`
	NodeID   string                   `json:"node_id" validate:"required,max=256"`
	Point    geometry.Point           `json:"point"`
	Boxes    map[string]geometry.Rect `json:"boxes,omitempty"`
	Options  pipeline.Options         `json:"options"`
}

// PlacementRequest is the body of POST /v1/placement.
type PlacementRequest struct {
	Snapshot  graph.Snapshot   `json:"snapshot"`
	Anchor    geometry.Point   `json:"anchor"`
	Size      geometry.Size    `json:"size"`
	ParentID  string           `json:"parent_id,omitempty" validate:"max=256"`
	Spacing   float64          `json:"spacing,omitempty" validate:"gte=0"`
	MaxProbes int              `json:"max_probes,omitempty" validate:"gte=0,lte=100000"`
	Options   pipeline.Options `json:"options"`
}

// RecalcRequest is the body of POST /v1/edges/recalc. An empty NodeID
// recalculates every edge.
type RecalcRequest struct {
	Snapshot graph.Snapshot   `json:"snapshot"`
	NodeID   string           `json:"node_id,omitempty" validate:"max=256"`
	Options  pipeline.Options `json:"options"`
}

// OutlineRequest is the body of POST /v1/outline.
type OutlineRequest struct {
	Snapshot graph.Snapshot   `json:"snapshot"`
	Text     string           `json:"text" validate:"required"`
	Options  pipeline.Options `json:"options"`
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	opts := s.options(req.Options)
	if req.Root != "" {
		opts.Root = req.Root
	}
	res, err := s.runner.Layout(r.Context(), req.Snapshot, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) containment(w http.ResponseWriter, r *http.Request) {
	var req ContainmentRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	var geo containment.GeometryProvider
	if len(req.Boxes) > 0 {
		geo = containment.Boxes(req.Boxes)
	}
	drop := containment.Drop{NodeID: req.NodeID, Point: req.Point}
	res, err := s.runner.Drop(r.Context(), req.Snapshot, drop, geo, s.options(req.Options))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) placement(w http.ResponseWriter, r *http.Request) {
	var req PlacementRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	preq := placement.Request{
		Anchor:    req.Anchor,
		Size:      req.Size,
		ParentID:  req.ParentID,
		Spacing:   req.Spacing,
		MaxProbes: req.MaxProbes,
	}
	res, err := s.runner.Place(r.Context(), req.Snapshot, preq, s.options(req.Options))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) recalc(w http.ResponseWriter, r *http.Request) {
	var req RecalcRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	res, err := s.runner.Recalc(r.Context(), req.Snapshot, req.NodeID, s.options(req.Options))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) outline(w http.ResponseWriter, r *http.Request) {
	var req OutlineRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	res, err := s.runner.Import(r.Context(), req.Snapshot, req.Text, s.options(req.Options))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

// options fills zero request options from the server defaults.
func (s *Server) options(o pipeline.Options) pipeline.Options {
	d := s.cfg.Defaults
	if o.Layout.Mode == "" {
		o.Layout.Mode = d.Layout.Mode
	}
	if o.Layout.HorizontalOffset == 0 {
		o.Layout.HorizontalOffset = d.Layout.HorizontalOffset
	}
	if o.Layout.RootSpacing == 0 {
		o.Layout.RootSpacing = d.Layout.RootSpacing
	}
	if o.Layout.ChildSpacing == 0 {
		o.Layout.ChildSpacing = d.Layout.ChildSpacing
	}
	if o.Layout.VerticalGap == 0 {
		o.Layout.VerticalGap = d.Layout.VerticalGap
	}
	if o.Spacing == 0 {
		o.Spacing = d.Spacing
	}
	if o.MaxProbes == 0 {
		o.MaxProbes = d.MaxProbes
	}
	o.Strict = o.Strict || d.Strict
	o.Logger = s.logger
	return o
}
