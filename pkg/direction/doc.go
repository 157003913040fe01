// Package direction decides which cardinal side of each endpoint an edge
// attaches to.
//
// An edge marked Manual keeps its stored sides; a manual edge with only one
// side set gets the opposite side on the other end. Every other edge is
// recomputed from the bearing between its endpoints' absolute positions,
// bucketed with [geometry.DirectionForAngle]: a target mostly to the right
// of its source attaches source-right / target-left, and so on.
//
// [RecalcAll] is used after bulk changes such as an auto-layout, [RecalcOne]
// after a single drag. Both replace an edge only when its sides actually
// change, so running them twice yields the same snapshot.
package direction
