package graph

// NormalizeDepths rewrites Depth for every node from its container chain so
// that Depth(child) = Depth(parent)+1 and unparented nodes sit at 0. It
// returns the ids whose depth changed and any cycle warnings found on the
// way. nodes is modified in place; callers pass their own copy.
func NormalizeDepths(nodes []Node) (changed []string, warnings []error) {
	ix := NewIndex(Snapshot{Nodes: nodes})
	for i := range nodes {
		chain, err := ix.Ancestors(nodes[i].ID)
		if err != nil {
			warnings = append(warnings, err)
		}
		if nodes[i].Depth != len(chain) {
			nodes[i].Depth = len(chain)
			changed = append(changed, nodes[i].ID)
		}
	}
	return changed, warnings
}
