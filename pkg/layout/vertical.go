package layout

import (
	"github.com/matzehuels/mindgeo/pkg/geometry"
)

// rowKey identifies one row of the vertical layout.
type rowKey struct {
	sign  float64
	depth int
}

// placeVertical splits the root's children into a southern half (the
// first ceil(n/2)) and a northern half. Descendants inherit the sign of
// their branch. Each (sign, depth) pair forms one row, filled in
// depth-first order and centered on the root's X.
func placeVertical(t *tree, opts Options, origin geometry.Point, out map[string]geometry.Point) {
	out[t.root] = origin

	sign := make(map[string]float64)
	top := t.children[t.root]
	south := (len(top) + 1) / 2
	for i, l := range top {
		if i < south {
			sign[l.child] = 1
		} else {
			sign[l.child] = -1
		}
	}

	rows := make(map[rowKey][]string)
	var keys []rowKey
	for _, id := range t.preorder() {
		if id == t.root {
			continue
		}
		s, ok := sign[id]
		if !ok {
			s = sign[t.parent[id]]
			sign[id] = s
		}
		k := rowKey{sign: s, depth: t.depth[id]}
		if _, seen := rows[k]; !seen {
			keys = append(keys, k)
		}
		rows[k] = append(rows[k], id)
	}

	for _, k := range keys {
		row := rows[k]
		y := origin.Y + k.sign*opts.depthOffset(k.depth)
		for i, id := range row {
			out[id] = geometry.Point{X: origin.X + spread(i, len(row), opts.HorizontalOffset), Y: y}
		}
	}
}
