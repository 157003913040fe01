// Package layout recomputes node positions around a root.
//
// [Apply] walks the map breadth-first from the root, following both
// containment (ParentID) and outgoing edges. Nodes it never reaches keep
// their exact position; a disconnected island is left alone rather than
// pulled into the root's arrangement.
//
// # Modes
//
//   - [Horizontal] (default): children grow sideways from their parent.
//     Left and right children are stacked vertically and centered on the
//     parent; top and bottom children are spread horizontally.
//   - [Vertical]: the root's children are split into a southern and a
//     northern half; each depth becomes one row above or below the root.
//   - [Radial]: every node owns an angular sector that is divided equally
//     among its children; depth determines the radius.
//
// # Child Order
//
// Children follow edge order first, so the first-added branch stays first.
// Contained children without an edge follow, sorted by current X. Such
// children are connected by a virtual edge for the traversal only; virtual
// edges never appear in the output.
//
// # Output
//
// Computed positions are converted back into each node's parent-relative
// form, nodes that did not move are reported as unmoved and edge sides are
// re-resolved for the new geometry.
package layout
