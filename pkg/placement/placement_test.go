package placement

import (
	"testing"

	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

func TestProbeOffset(t *testing.T) {
	want := []float64{0, 50, -50, 100, -100, 150, -150}
	for i, w := range want {
		if got := ProbeOffset(i, 50); got != w {
			t.Errorf("ProbeOffset(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestFindSecondProbe(t *testing.T) {
	snap := graph.Snapshot{Nodes: []graph.Node{
		{ID: "existing", Position: geometry.Point{X: 100, Y: 100}, Size: geometry.Size{Width: 100, Height: 40}},
	}}
	req := Request{
		Anchor:  geometry.Point{X: 100, Y: 100},
		Size:    geometry.Size{Width: 100, Height: 40},
		Spacing: 50,
	}
	res := Find(snap, req, nil)
	if !res.Found {
		t.Fatalf("Found = false, warnings %v", res.Warnings)
	}
	if want := (geometry.Point{X: 100, Y: 150}); res.Position != want {
		t.Errorf("Position = %v, want %v", res.Position, want)
	}
	if res.Probes != 2 {
		t.Errorf("Probes = %d, want 2", res.Probes)
	}
}

func TestFindCallsOverlapOncePerProbe(t *testing.T) {
	var calls []geometry.Rect
	overlap := func(c geometry.Rect) []string {
		calls = append(calls, c)
		if len(calls) < 4 {
			return []string{"busy"}
		}
		return nil
	}
	res := Find(graph.Snapshot{}, Request{Size: geometry.Size{Width: 10, Height: 10}, Spacing: 20}, overlap)
	if len(calls) != 4 || res.Probes != 4 {
		t.Fatalf("calls = %d probes = %d, want 4", len(calls), res.Probes)
	}
	wantY := []float64{0, 20, -20, 40}
	for i, c := range calls {
		if c.Y != wantY[i] || c.X != 0 {
			t.Errorf("probe %d at (%v,%v), want (0,%v)", i, c.X, c.Y, wantY[i])
		}
	}
}

func TestFindRelativeToParent(t *testing.T) {
	snap := graph.Snapshot{Nodes: []graph.Node{
		{ID: "frame", Position: geometry.Point{X: 500, Y: 500}, Size: geometry.Size{Width: 400, Height: 400}},
		{ID: "kid", ParentID: "frame", Position: geometry.Point{X: 20, Y: 20}, Size: geometry.Size{Width: 100, Height: 40}},
	}}
	overlap := func(c geometry.Rect) []string {
		// Only the nested child blocks; the frame itself is the target container.
		kid := geometry.Rect{X: 520, Y: 520, Width: 100, Height: 40}
		if kid.Intersects(c) {
			return []string{"kid"}
		}
		return nil
	}
	res := Find(snap, Request{
		Anchor:   geometry.Point{X: 20, Y: 20},
		Size:     geometry.Size{Width: 100, Height: 40},
		ParentID: "frame",
		Spacing:  50,
	}, overlap)
	if want := (geometry.Point{X: 20, Y: 70}); res.Position != want {
		t.Errorf("Position = %v, want %v", res.Position, want)
	}
	if want := (geometry.Point{X: 520, Y: 570}); res.Absolute != want {
		t.Errorf("Absolute = %v, want %v", res.Absolute, want)
	}
}

func TestFindExhausted(t *testing.T) {
	always := func(geometry.Rect) []string { return []string{"wall"} }
	res := Find(graph.Snapshot{}, Request{Spacing: 10, MaxProbes: 5}, always)
	if res.Found {
		t.Fatal("Found = true, want false")
	}
	if res.Probes != 5 {
		t.Errorf("Probes = %d, want 5", res.Probes)
	}
	if want := (geometry.Point{X: 0, Y: -20}); res.Position != want {
		t.Errorf("Position = %v, want last probe %v", res.Position, want)
	}
	if len(res.Warnings) != 1 || !errors.Is(res.Warnings[0], errors.ErrCodeNoFreeSlot) {
		t.Errorf("Warnings = %v, want NO_FREE_SLOT", res.Warnings)
	}
}

func TestFindDefaultCap(t *testing.T) {
	calls := 0
	always := func(geometry.Rect) []string { calls++; return []string{"wall"} }
	Find(graph.Snapshot{}, Request{}, always)
	if calls != DefaultMaxProbes {
		t.Errorf("calls = %d, want %d", calls, DefaultMaxProbes)
	}
}
