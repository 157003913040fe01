package layout

import (
	"math"

	"github.com/matzehuels/mindgeo/pkg/geometry"
)

// Sector is an angular range in degrees, [Start, End).
type Sector struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Mid returns the sector's bisecting angle.
func (s Sector) Mid() float64 { return (s.Start + s.End) / 2 }

// Width returns the sector's angular size.
func (s Sector) Width() float64 { return s.End - s.Start }

// Contains reports whether deg lies strictly inside the sector.
func (s Sector) Contains(deg float64) bool { return deg > s.Start && deg < s.End }

// placeRadial gives the root the full circle and divides every node's
// sector equally among its children. A node sits at its sector's midpoint
// at radius max(depthOffset, HorizontalOffset*depth).
func placeRadial(t *tree, opts Options, origin geometry.Point, out map[string]geometry.Point) map[string]Sector {
	sectors := map[string]Sector{t.root: {Start: 0, End: 360}}
	out[t.root] = origin

	for _, id := range t.order {
		kids := t.children[id]
		if len(kids) == 0 {
			continue
		}
		s := sectors[id]
		w := s.Width() / float64(len(kids))
		for i, l := range kids {
			cs := Sector{Start: s.Start + float64(i)*w, End: s.Start + float64(i+1)*w}
			sectors[l.child] = cs
			d := t.depth[l.child]
			r := math.Max(opts.depthOffset(d), opts.HorizontalOffset*float64(d))
			out[l.child] = origin.Add(geometry.PolarOffset(r, cs.Mid()))
		}
	}
	return sectors
}
