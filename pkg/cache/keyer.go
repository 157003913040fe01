package cache

// Keyer builds cache keys for engine results.
type Keyer interface {
	// LayoutKey identifies a layout of the snapshot with the given hash.
	LayoutKey(snapshotHash string, opts LayoutKeyOpts) string

	// RecalcKey identifies an edge recalculation. An empty nodeID means
	// every edge was recalculated.
	RecalcKey(snapshotHash string, nodeID string) string
}

// LayoutKeyOpts holds every option that changes a layout result.
type LayoutKeyOpts struct {
	Root             string  `json:"root"`
	Mode             string  `json:"mode"`
	HorizontalOffset float64 `json:"horizontal_offset"`
	RootSpacing      float64 `json:"root_spacing"`
	ChildSpacing     float64 `json:"child_spacing"`
	VerticalGap      float64 `json:"vertical_gap"`
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey hashes the snapshot hash together with the layout options.
func (DefaultKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", snapshotHash, opts)
}

// RecalcKey hashes the snapshot hash together with the moved node.
func (DefaultKeyer) RecalcKey(snapshotHash string, nodeID string) string {
	return hashKey("recalc", snapshotHash, nodeID)
}
