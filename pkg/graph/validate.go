package graph

import (
	"github.com/matzehuels/mindgeo/pkg/errors"
)

// Validate checks structural integrity of the snapshot: identifiers are
// well-formed and unique, containers and edge endpoints exist, and no node
// contains itself. It reports the first problem found.
func (s Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "node")
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidSnapshot, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}

	for _, n := range s.Nodes {
		if n.ParentID == "" {
			continue
		}
		if n.ParentID == n.ID {
			return errors.New(errors.ErrCodeInvalidSnapshot, "node %q contains itself", n.ID)
		}
		if !seen[n.ParentID] {
			return errors.New(errors.ErrCodeInvalidSnapshot, "node %q has unknown parent %q", n.ID, n.ParentID)
		}
	}

	edgeIDs := make(map[string]bool, len(s.Edges))
	for _, e := range s.Edges {
		if err := errors.ValidateNodeID(e.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "edge")
		}
		if edgeIDs[e.ID] {
			return errors.New(errors.ErrCodeInvalidSnapshot, "duplicate edge id %q", e.ID)
		}
		edgeIDs[e.ID] = true
		if !seen[e.Source] {
			return errors.New(errors.ErrCodeInvalidSnapshot, "edge %q has unknown source %q", e.ID, e.Source)
		}
		if !seen[e.Target] {
			return errors.New(errors.ErrCodeInvalidSnapshot, "edge %q has unknown target %q", e.ID, e.Target)
		}
		if e.Manual && !e.SourceSide.Valid() && !e.TargetSide.Valid() {
			return errors.New(errors.ErrCodeInvalidSnapshot, "manual edge %q has no side", e.ID)
		}
	}

	ix := NewIndex(s)
	for _, n := range s.Nodes {
		if _, err := ix.Ancestors(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "containment")
		}
	}
	return nil
}
