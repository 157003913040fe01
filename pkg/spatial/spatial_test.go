package spatial

import (
	"slices"
	"testing"

	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

func TestOverlapping(t *testing.T) {
	snap := graph.Snapshot{Nodes: []graph.Node{
		{ID: "a", Position: geometry.Point{X: 0, Y: 0}, Size: geometry.Size{Width: 100, Height: 50}},
		{ID: "frame", Position: geometry.Point{X: 200, Y: 0}, Size: geometry.Size{Width: 300, Height: 300}},
		{ID: "inner", ParentID: "frame", Position: geometry.Point{X: 10, Y: 10}, Size: geometry.Size{Width: 50, Height: 50}},
		{ID: "unmeasured", Position: geometry.Point{X: 0, Y: 0}},
	}}
	ix := New(snap, "frame")
	if ix.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ix.Len())
	}

	tests := []struct {
		name string
		box  geometry.Rect
		want []string
	}{
		{"HitsA", geometry.Rect{X: 50, Y: 10, Width: 10, Height: 10}, []string{"a"}},
		{"HitsNestedAbsolute", geometry.Rect{X: 215, Y: 15, Width: 5, Height: 5}, []string{"inner"}},
		{"TouchingEdge", geometry.Rect{X: 100, Y: 0, Width: 10, Height: 10}, nil},
		{"Both", geometry.Rect{X: 0, Y: 0, Width: 300, Height: 100}, []string{"a", "inner"}},
		{"Empty", geometry.Rect{X: 1000, Y: 1000, Width: 10, Height: 10}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.Overlapping(tt.box); !slices.Equal(got, tt.want) {
				t.Errorf("Overlapping(%v) = %v, want %v", tt.box, got, tt.want)
			}
		})
	}
}
