package graph

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Nodes: []Node{
			{ID: "root", Position: geometry.Point{X: 0, Y: 0}, Size: geometry.Size{Width: 100, Height: 40}},
			{ID: "frame", Position: geometry.Point{X: 300, Y: 100}, Size: geometry.Size{Width: 400, Height: 300}},
			{ID: "a", ParentID: "frame", Position: geometry.Point{X: 20, Y: 30}, Size: geometry.Size{Width: 80, Height: 30}, Depth: 1},
			{ID: "b", ParentID: "a", Position: geometry.Point{X: 5, Y: 5}, Size: geometry.Size{Width: 40, Height: 20}, Depth: 2},
		},
		Edges: []Edge{
			{ID: "e1", Source: "root", Target: "frame", SourceSide: geometry.Right, TargetSide: geometry.Left},
			{ID: "e2", Source: "root", Target: "a"},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap := sampleSnapshot()
	data, err := MarshalSnapshot(snap)
	if err != nil {
		t.Fatalf("MarshalSnapshot: %v", err)
	}
	if !strings.Contains(string(data), `"source_side": "right"`) {
		t.Errorf("marshalled snapshot missing side token:\n%s", data)
	}
	if strings.Contains(string(data), `"target_side": ""`) {
		t.Errorf("empty side should be omitted:\n%s", data)
	}

	got, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot: %v", err)
	}
	if got.NodeCount() != 4 || got.EdgeCount() != 2 {
		t.Fatalf("counts = %d/%d, want 4/2", got.NodeCount(), got.EdgeCount())
	}
	b, _ := got.Node("b")
	if b.ParentID != "a" || b.Depth != 2 {
		t.Errorf("b = %+v, want parent a depth 2", b)
	}
	e1, _ := got.Edge("e1")
	if e1.SourceSide != geometry.Right || e1.TargetSide != geometry.Left {
		t.Errorf("e1 sides = %v/%v, want right/left", e1.SourceSide, e1.TargetSide)
	}
}

func TestSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	if err := WriteSnapshotFile(sampleSnapshot(), path); err != nil {
		t.Fatalf("WriteSnapshotFile: %v", err)
	}
	got, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("ReadSnapshotFile: %v", err)
	}
	if got.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", got.NodeCount())
	}

	_, err = ReadSnapshotFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadSnapshotInvalid(t *testing.T) {
	_, err := ReadSnapshot(bytes.NewBufferString("{not json"))
	if !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
		t.Errorf("ReadSnapshot() error = %v, want INVALID_SNAPSHOT", err)
	}
}

func TestWriteSnapshotEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(Snapshot{}, &buf); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if !strings.Contains(buf.String(), `"nodes": []`) {
		t.Errorf("empty snapshot should encode empty arrays, got %s", buf.String())
	}
}

func TestClone(t *testing.T) {
	snap := sampleSnapshot()
	c := snap.Clone()
	c.Nodes[0].Position.X = 999
	c.Edges[0].SourceSide = geometry.Top
	if snap.Nodes[0].Position.X == 999 || snap.Edges[0].SourceSide == geometry.Top {
		t.Error("Clone shares storage with original")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
		ok     bool
	}{
		{name: "Valid", mutate: func(s *Snapshot) {}, ok: true},
		{name: "DuplicateNode", mutate: func(s *Snapshot) { s.Nodes = append(s.Nodes, Node{ID: "root"}) }},
		{name: "EmptyID", mutate: func(s *Snapshot) { s.Nodes[0].ID = "" }},
		{name: "UnknownParent", mutate: func(s *Snapshot) { s.Nodes[2].ParentID = "ghost" }},
		{name: "SelfParent", mutate: func(s *Snapshot) { s.Nodes[2].ParentID = "a" }},
		{name: "ParentCycle", mutate: func(s *Snapshot) { s.Nodes[1].ParentID = "b" }},
		{name: "DanglingEdge", mutate: func(s *Snapshot) { s.Edges[0].Target = "ghost" }},
		{name: "DuplicateEdge", mutate: func(s *Snapshot) { s.Edges[1].ID = "e1" }},
		{name: "ManualWithoutSide", mutate: func(s *Snapshot) { s.Edges[1].Manual = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleSnapshot()
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
				t.Errorf("Validate() = %v, want INVALID_SNAPSHOT", err)
			}
		})
	}
}
