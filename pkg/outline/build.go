package outline

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

// DefaultNodeSize is the size given to imported nodes before they are measured.
var DefaultNodeSize = geometry.Size{Width: 160, Height: 40}

// BuildOptions controls how items become nodes.
type BuildOptions struct {
	// ParentID is an existing node the top-level items attach to by edges.
	// The new nodes join that node's container. Empty means the items form
	// new top-level trees.
	ParentID string
	// Origin is the absolute position new nodes start at when ParentID is
	// empty. Attached nodes start at the attachment node's position.
	Origin geometry.Point
	// NodeSize is the initial size of every new node.
	NodeSize geometry.Size
	// IDFunc generates node and edge ids. Defaults to random UUIDs.
	IDFunc func() string
}

// Import is the result of merging an outline into a snapshot.
type Import struct {
	Snapshot graph.Snapshot
	Roots    []string // ids of the nodes created for top-level items
	Added    []string // ids of every created node, in outline order
}

// Build appends one node per item and one edge per parent/child pair to a
// copy of snap. An unknown ParentID is an ErrCodeNodeNotFound error.
func Build(snap graph.Snapshot, items []*Item, opts BuildOptions) (Import, error) {
	if opts.IDFunc == nil {
		opts.IDFunc = uuid.NewString
	}
	if opts.NodeSize.Width <= 0 || opts.NodeSize.Height <= 0 {
		opts.NodeSize = DefaultNodeSize
	}

	var (
		container string
		depth     int
		start     = opts.Origin
	)
	if opts.ParentID != "" {
		ix := graph.NewIndex(snap)
		anchor, ok := ix.Node(opts.ParentID)
		if !ok {
			return Import{}, errors.New(errors.ErrCodeNodeNotFound, "attach node %q not found", opts.ParentID)
		}
		container, depth, start = anchor.ParentID, anchor.Depth, anchor.Position
	}

	b := &builder{
		opts:      opts,
		container: container,
		depth:     depth,
		start:     start,
		nodes:     slices.Clone(snap.Nodes),
		edges:     slices.Clone(snap.Edges),
	}
	out := Import{}
	for _, it := range items {
		id := b.add(it, opts.ParentID)
		out.Roots = append(out.Roots, id)
	}
	out.Added = b.added
	out.Snapshot = graph.Snapshot{Nodes: b.nodes, Edges: b.edges}
	return out, nil
}

type builder struct {
	opts      BuildOptions
	container string
	depth     int
	start     geometry.Point
	nodes     []graph.Node
	edges     []graph.Edge
	added     []string
}

func (b *builder) add(it *Item, from string) string {
	id := b.opts.IDFunc()
	b.nodes = append(b.nodes, graph.Node{
		ID:       id,
		ParentID: b.container,
		Label:    it.Text,
		Position: b.start,
		Size:     b.opts.NodeSize,
		Depth:    b.depth,
	})
	b.added = append(b.added, id)
	if from != "" {
		b.edges = append(b.edges, graph.Edge{ID: b.opts.IDFunc(), Source: from, Target: id})
	}
	for _, c := range it.Children {
		b.add(c, id)
	}
	return id
}
