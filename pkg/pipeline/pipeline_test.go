package pipeline

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/mindgeo/pkg/cache"
	"github.com/matzehuels/mindgeo/pkg/containment"
	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
	"github.com/matzehuels/mindgeo/pkg/layout"
	"github.com/matzehuels/mindgeo/pkg/observability"
	"github.com/matzehuels/mindgeo/pkg/placement"
)

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func ideaSnapshot() graph.Snapshot {
	return graph.Snapshot{
		Nodes: []graph.Node{
			{ID: "idea", Size: geometry.Size{Width: 100, Height: 40}},
			{ID: "pros", Size: geometry.Size{Width: 100, Height: 40}},
			{ID: "cons", Size: geometry.Size{Width: 100, Height: 40}},
		},
		Edges: []graph.Edge{
			{ID: "e1", Source: "idea", Target: "pros", SourceSide: geometry.Right},
			{ID: "e2", Source: "idea", Target: "cons", SourceSide: geometry.Left},
		},
	}
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
}

func TestLayout(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Layout(context.Background(), ideaSnapshot(), Options{})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if res.Root != "idea" {
		t.Errorf("Root = %q, want idea (the only root)", res.Root)
	}
	pros, _ := res.Snapshot.Node("pros")
	cons, _ := res.Snapshot.Node("cons")
	if pros.Position != (geometry.Point{X: 250}) || cons.Position != (geometry.Point{X: -250}) {
		t.Errorf("pros = %v, cons = %v", pros.Position, cons.Position)
	}
	if !slices.Equal(res.Moved, []string{"pros", "cons"}) {
		t.Errorf("Moved = %v", res.Moved)
	}
	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 2 || res.Stats.CacheHit {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestLayoutCache(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	ctx := context.Background()
	opts := Options{Root: "idea", Layout: layout.Options{Mode: layout.Radial}}

	first, err := r.Layout(ctx, ideaSnapshot(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Layout(ctx, ideaSnapshot(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Stats.CacheHit || !second.Stats.CacheHit {
		t.Errorf("cache hits = %v, %v; want false, true", first.Stats.CacheHit, second.Stats.CacheHit)
	}
	for _, n := range first.Snapshot.Nodes {
		got, _ := second.Snapshot.Node(n.ID)
		if got.Position != n.Position {
			t.Errorf("cached %s at %v, computed %v", n.ID, got.Position, n.Position)
		}
	}

	opts.Layout.Mode = layout.Vertical
	third, _ := r.Layout(ctx, ideaSnapshot(), opts)
	if third.Stats.CacheHit {
		t.Error("different mode should not hit the cache")
	}

	opts.Refresh = true
	fourth, _ := r.Layout(ctx, ideaSnapshot(), opts)
	if fourth.Stats.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
	if mc.sets != 3 {
		t.Errorf("cache sets = %d, want 3", mc.sets)
	}
}

func TestLayoutCorruptCacheEntry(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	snap := ideaSnapshot()
	hash, _ := snapshotHash(snap)
	opts := Options{Root: "idea"}
	opts.SetDefaults()
	mc.data[r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())] = []byte("{not json")

	res, err := r.Layout(context.Background(), snap, Options{Root: "idea"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.CacheHit || len(res.Moved) != 2 {
		t.Errorf("corrupt entry should be recomputed: %+v", res)
	}
}

func TestLayoutErrors(t *testing.T) {
	twoRoots := graph.Snapshot{Nodes: []graph.Node{{ID: "a"}, {ID: "b"}}}
	cyclic := graph.Snapshot{Nodes: []graph.Node{{ID: "a", ParentID: "b"}, {ID: "b", ParentID: "a"}}}
	tests := []struct {
		name string
		snap graph.Snapshot
		opts Options
		code errors.Code
	}{
		{"AmbiguousRoot", twoRoots, Options{}, errors.ErrCodeInvalidInput},
		{"NoRoot", graph.Snapshot{}, Options{}, errors.ErrCodeInvalidInput},
		{"BadMode", ideaSnapshot(), Options{Layout: layout.Options{Mode: "spiral"}}, errors.ErrCodeInvalidMode},
		{"StrictCycle", cyclic, Options{Root: "a", Strict: true}, errors.ErrCodeInvalidSnapshot},
	}
	r := NewRunner(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Layout(context.Background(), tt.snap, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Layout() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLayoutUnknownRootWarns(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	snap := ideaSnapshot()
	res, err := r.Layout(context.Background(), snap, Options{Root: "ghost"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != string(errors.ErrCodeNodeNotFound) {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if len(res.Moved) != 0 {
		t.Errorf("Moved = %v, want none", res.Moved)
	}
}

func TestResolveRoot(t *testing.T) {
	if got, _ := ResolveRoot(graph.Snapshot{}, "given"); got != "given" {
		t.Errorf("explicit root = %q", got)
	}
	if got, err := ResolveRoot(ideaSnapshot(), ""); err != nil || got != "idea" {
		t.Errorf("ResolveRoot = %q, %v", got, err)
	}
}

func TestRecalc(t *testing.T) {
	snap := graph.Snapshot{
		Nodes: []graph.Node{
			{ID: "a"},
			{ID: "b", Position: geometry.Point{X: 0, Y: 100}},
		},
		Edges: []graph.Edge{{ID: "e", Source: "a", Target: "b"}},
	}
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	res, err := r.Recalc(context.Background(), snap, "", Options{})
	if err != nil {
		t.Fatal(err)
	}
	e, _ := res.Snapshot.Edge("e")
	if e.SourceSide != geometry.Bottom || e.TargetSide != geometry.Top {
		t.Errorf("sides = %v/%v, want bottom/top", e.SourceSide, e.TargetSide)
	}
	if !slices.Equal(res.Changed, []string{"e"}) {
		t.Errorf("Changed = %v", res.Changed)
	}

	again, _ := r.Recalc(context.Background(), snap, "", Options{})
	if !again.Stats.CacheHit {
		t.Error("second recalc should hit the cache")
	}
	one, _ := r.Recalc(context.Background(), snap, "b", Options{})
	if one.Stats.CacheHit {
		t.Error("single-node recalc uses its own key")
	}

	if _, err := r.Recalc(context.Background(), snap, " b", Options{}); !errors.Is(err, errors.ErrCodeInvalidNodeID) {
		t.Errorf("bad node id error = %v", err)
	}
}

func TestDrop(t *testing.T) {
	snap := graph.Snapshot{
		Nodes: []graph.Node{
			{ID: "x", Size: geometry.Size{Width: 50, Height: 20}},
			{ID: "y", Position: geometry.Point{X: 200, Y: 100}, Size: geometry.Size{Width: 300, Height: 200}},
			{ID: "z", Position: geometry.Point{X: 0, Y: 600}, Size: geometry.Size{Width: 50, Height: 20}},
		},
		Edges: []graph.Edge{{ID: "e", Source: "z", Target: "x", SourceSide: geometry.Top, TargetSide: geometry.Bottom}},
	}
	r := NewRunner(nil, nil, nil)
	res, err := r.Drop(context.Background(), snap, containment.Drop{NodeID: "x", Point: geometry.Point{X: 250, Y: 150}}, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.ParentID != "y" || !slices.Equal(res.Reparented, []string{"x"}) {
		t.Errorf("ParentID = %q, Reparented = %v", res.ParentID, res.Reparented)
	}
	x, _ := res.Snapshot.Node("x")
	if x.Position != (geometry.Point{X: 50, Y: 50}) {
		t.Errorf("x.Position = %v", x.Position)
	}
	// x now sits up and to the right of z: bearing about 299 degrees.
	e, _ := res.Snapshot.Edge("e")
	if e.SourceSide != geometry.Top || len(res.ChangedEdges) != 0 {
		t.Errorf("edge = %+v, changed = %v", e, res.ChangedEdges)
	}
}

func TestDropUnknownNode(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Drop(context.Background(), ideaSnapshot(), containment.Drop{NodeID: "ghost"}, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) == 0 || res.Warnings[0].Code != string(errors.ErrCodeNodeNotFound) {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestPlace(t *testing.T) {
	snap := graph.Snapshot{Nodes: []graph.Node{
		{ID: "existing", Position: geometry.Point{X: 100, Y: 100}, Size: geometry.Size{Width: 100, Height: 40}},
	}}
	r := NewRunner(nil, nil, nil)
	res, err := r.Place(context.Background(), snap, placement.Request{
		Anchor: geometry.Point{X: 100, Y: 100},
		Size:   geometry.Size{Width: 100, Height: 40},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found || res.Position != (geometry.Point{X: 100, Y: 150}) {
		t.Errorf("Place = %+v, want (100,150)", res)
	}
}

func TestPlaceExhaustedReportsWarning(t *testing.T) {
	counters := observability.NewCounters()
	observability.SetEngineHooks(counters)
	t.Cleanup(observability.Reset)

	snap := graph.Snapshot{Nodes: []graph.Node{
		{ID: "wall", Position: geometry.Point{X: -500, Y: -500}, Size: geometry.Size{Width: 1000, Height: 1000}},
	}}
	r := NewRunner(nil, nil, nil)
	res, err := r.Place(context.Background(), snap, placement.Request{
		Size: geometry.Size{Width: 10, Height: 10},
	}, Options{MaxProbes: 3})
	if err != nil {
		t.Fatal(err)
	}
	if res.Found || res.Probes != 3 {
		t.Errorf("Place = %+v, want 3 failed probes", res)
	}
	got := counters.Snapshot()
	if got.Warnings[string(errors.ErrCodeNoFreeSlot)] != 1 || got.Operations[OpPlace] != 1 {
		t.Errorf("counters = %+v", got)
	}
}

func TestPlaceRejectsBadOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Place(context.Background(), graph.Snapshot{}, placement.Request{}, Options{Spacing: -1})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v", err)
	}
}

func TestImport(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Import(context.Background(), graph.Snapshot{}, "- a\n  - b\n- c\n", Options{IDFunc: seqIDs()})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(res.Roots, []string{"id1", "id4"}) || !slices.Equal(res.Added, []string{"id1", "id2", "id4"}) {
		t.Fatalf("Roots = %v, Added = %v", res.Roots, res.Added)
	}
	if len(res.Snapshot.Edges) != 1 || res.Snapshot.Edges[0].Source != "id1" || res.Snapshot.Edges[0].Target != "id2" {
		t.Errorf("Edges = %+v", res.Snapshot.Edges)
	}
	// The second tree is pushed below the first one.
	c, _ := res.Snapshot.Node("id4")
	if c.Position != (geometry.Point{X: 0, Y: 50}) || c.Label != "c" {
		t.Errorf("c = %+v", c)
	}
}

func TestImportAttachWithLayout(t *testing.T) {
	snap := graph.Snapshot{Nodes: []graph.Node{
		{ID: "topic", Size: geometry.Size{Width: 100, Height: 40}},
	}}
	r := NewRunner(nil, nil, nil)
	res, err := r.Import(context.Background(), snap, "- x\n- y", Options{
		ParentID:   "topic",
		AutoLayout: true,
		IDFunc:     seqIDs(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Added) != 2 || len(res.Snapshot.Edges) != 2 {
		t.Fatalf("Added = %v, Edges = %v", res.Added, res.Snapshot.Edges)
	}
	topic, _ := res.Snapshot.Node("topic")
	x, _ := res.Snapshot.Node(res.Added[0])
	y, _ := res.Snapshot.Node(res.Added[1])
	if topic.Position != (geometry.Point{}) {
		t.Errorf("root moved to %v", topic.Position)
	}
	if x.Position == topic.Position || x.Position == y.Position {
		t.Errorf("imported nodes not spread: x=%v y=%v", x.Position, y.Position)
	}
	if len(res.Moved) != 0 {
		t.Errorf("Moved = %v, want only new nodes affected", res.Moved)
	}
}

func TestImportErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Import(context.Background(), graph.Snapshot{}, "- a", Options{ParentID: "ghost"}); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("unknown parent error = %v", err)
	}
	res, err := r.Import(context.Background(), ideaSnapshot(), "no bullets here", Options{})
	if err != nil || len(res.Added) != 0 || len(res.Snapshot.Nodes) != 3 {
		t.Errorf("plain text import = %+v, %v", res, err)
	}
}

func TestWarnings(t *testing.T) {
	got := Warnings([]error{
		nil,
		errors.New(errors.ErrCodeCycle, "loop at %s", "a"),
		fmt.Errorf("plain"),
	})
	want := []Warning{
		{Code: "CYCLE_DETECTED", Message: "loop at a"},
		{Code: "", Message: "plain"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Warnings = %v, want %v", got, want)
	}
	if s := want[0].String(); s != "CYCLE_DETECTED: loop at a" {
		t.Errorf("String() = %q", s)
	}
}
