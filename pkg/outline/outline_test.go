package outline

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

func texts(items []*Item) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []*Item
	}{
		{
			name: "NestedSiblings",
			in:   "- One\n  - Two\n  - Three",
			want: []*Item{{Text: "One", Children: []*Item{{Text: "Two"}, {Text: "Three"}}}},
		},
		{
			name: "MixedMarkersAndTabs",
			in:   "* Root\n\t+ Child\n\t\t- Grandchild\n- Second",
			want: []*Item{
				{Text: "Root", Children: []*Item{{Text: "Child", Children: []*Item{{Text: "Grandchild"}}}}},
				{Text: "Second"},
			},
		},
		{
			name: "Continuation",
			in:   "- First line\n  continues here\n- Next",
			want: []*Item{{Text: "First line continues here"}, {Text: "Next"}},
		},
		{
			name: "BlankLinesAndCRLF",
			in:   "- A\r\n\r\n  - B\r\n\n- C",
			want: []*Item{{Text: "A", Children: []*Item{{Text: "B"}}}, {Text: "C"}},
		},
		{
			name: "OddIndentFloors",
			in:   "- A\n   - B\n - C",
			want: []*Item{{Text: "A", Children: []*Item{{Text: "B"}}}, {Text: "C"}},
		},
		{
			name: "DedentPopsStack",
			in:   "- A\n  - B\n    - C\n  - D",
			want: []*Item{{Text: "A", Children: []*Item{{Text: "B", Children: []*Item{{Text: "C"}}}, {Text: "D"}}}},
		},
		{
			name: "LeadingProseIgnored",
			in:   "Notes for today\n- Item",
			want: []*Item{{Text: "Item"}},
		},
		{
			name: "DashWithoutSpaceIsText",
			in:   "- Range\n-5 degrees",
			want: []*Item{{Text: "Range -5 degrees"}},
		},
		{name: "NoBullets", in: "just text\nmore text", want: nil},
		{name: "Empty", in: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %s, want %s", dump(got), dump(tt.want))
			}
		})
	}
}

func dump(items []*Item) string {
	s := "["
	for i, it := range items {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%q", it.Text)
		if len(it.Children) > 0 {
			s += dump(it.Children)
		}
	}
	return s + "]"
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("n%d", n)
	}
}

func TestBuildTopLevel(t *testing.T) {
	items := Parse("- One\n  - Two\n  - Three")
	imp, err := Build(graph.Snapshot{}, items, BuildOptions{
		Origin: geometry.Point{X: 10, Y: 20},
		IDFunc: sequentialIDs(),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(imp.Roots, []string{"n1"}) {
		t.Errorf("Roots = %v, want [n1]", imp.Roots)
	}
	if len(imp.Snapshot.Nodes) != 3 || len(imp.Snapshot.Edges) != 2 {
		t.Fatalf("got %d nodes %d edges, want 3/2", len(imp.Snapshot.Nodes), len(imp.Snapshot.Edges))
	}
	one, _ := imp.Snapshot.Node("n1")
	if one.Label != "One" || one.Position != (geometry.Point{X: 10, Y: 20}) || one.Size != DefaultNodeSize {
		t.Errorf("root node = %+v", one)
	}
	e := imp.Snapshot.Edges[0]
	if e.Source != "n1" || e.Target != "n2" {
		t.Errorf("first edge = %+v, want n1 -> n2", e)
	}
	if err := imp.Snapshot.Validate(); err != nil {
		t.Errorf("built snapshot invalid: %v", err)
	}
}

func TestBuildAttached(t *testing.T) {
	snap := graph.Snapshot{Nodes: []graph.Node{
		{ID: "frame", Size: geometry.Size{Width: 500, Height: 500}},
		{ID: "topic", ParentID: "frame", Depth: 1, Position: geometry.Point{X: 30, Y: 40}},
	}}
	imp, err := Build(snap, Parse("- A\n- B"), BuildOptions{ParentID: "topic"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(imp.Added) != 2 {
		t.Fatalf("Added = %v, want 2 ids", imp.Added)
	}
	for _, id := range imp.Added {
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("id %q is not a UUID", id)
		}
		n, _ := imp.Snapshot.Node(id)
		if n.ParentID != "frame" || n.Depth != 1 || n.Position != (geometry.Point{X: 30, Y: 40}) {
			t.Errorf("attached node = %+v, want sibling of topic", n)
		}
	}
	for _, e := range imp.Snapshot.Edges {
		if e.Source != "topic" {
			t.Errorf("edge %+v should start at topic", e)
		}
	}
	if len(snap.Nodes) != 2 {
		t.Error("Build mutated its input")
	}
}

func TestBuildUnknownParent(t *testing.T) {
	_, err := Build(graph.Snapshot{}, Parse("- A"), BuildOptions{ParentID: "ghost"})
	if !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("error = %v, want NODE_NOT_FOUND", err)
	}
}

func TestCount(t *testing.T) {
	items := Parse("- A\n  - B\n    - C\n  - D\n- E")
	total := 0
	for _, it := range items {
		total += it.Count()
	}
	if total != 5 {
		t.Errorf("Count = %d, want 5", total)
	}
	if got := texts(items); !reflect.DeepEqual(got, []string{"A", "E"}) {
		t.Errorf("roots = %v", got)
	}
}
