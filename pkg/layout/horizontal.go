package layout

import (
	"math"

	"github.com/matzehuels/mindgeo/pkg/geometry"
)

// placeHorizontal positions id at pos and recurses into its children.
// Left and right groups are stacked vertically around the parent's Y;
// top and bottom groups are spread horizontally around its X.
func placeHorizontal(t *tree, opts Options, id string, pos geometry.Point, out map[string]geometry.Point) {
	out[id] = pos

	groups := make(map[geometry.Direction][]string, 4)
	for _, l := range t.children[id] {
		d := t.side(id, l)
		groups[d] = append(groups[d], l.child)
	}

	spacing := opts.ChildSpacing
	if id == t.root {
		spacing = opts.RootSpacing
	}
	n, _ := t.ix.Node(id)
	vertical := math.Max(opts.ChildSpacing, n.Size.Height+opts.VerticalGap)

	for _, d := range geometry.Directions {
		kids := groups[d]
		for i, c := range kids {
			var p geometry.Point
			switch d {
			case geometry.Left, geometry.Right:
				p = geometry.Point{
					X: pos.X + d.Sign()*opts.HorizontalOffset,
					Y: pos.Y + spread(i, len(kids), spacing),
				}
			case geometry.Top, geometry.Bottom:
				p = geometry.Point{
					X: pos.X + spread(i, len(kids), opts.HorizontalOffset),
					Y: pos.Y + d.Sign()*vertical,
				}
			}
			placeHorizontal(t, opts, c, p, out)
		}
	}
}
