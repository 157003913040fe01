// Package containment resolves which frame a node belongs to after it is
// dropped.
//
// [Resolve] takes the snapshot, the dragged node and the absolute drop point
// (the node's new top-left corner). It picks the deepest node whose box
// contains the point as the new container, expresses the dragged node's
// position relative to that container and adopts every node that now sits
// entirely inside the dragged node's new box.
//
// Geometry comes from a [GeometryProvider] so callers can plug in measured
// boxes. [graph.Index] implements the interface from stored positions and
// sizes. Nodes without a box never contain anything.
//
// The returned node list always lists containers before their contents.
package containment
