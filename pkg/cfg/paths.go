package cfg

// EnumeratePaths finds every simple path that starts on a condition-bearing
// node and ends on the next condition-bearing node reached after at least one
// edge. Paths are returned as ordered node-index sequences, grouped by start
// node in graph order. A loop's round trip (Invariant or Cutoff back to
// itself) is a valid path: the terminal check fires on re-entering the start
// node before the revisit check is consulted.
//
// Loop back-edges land on an Invariant or Cutoff node by construction, so a
// well-formed graph terminates every traversal at an annotation before a
// cycle can close. The search additionally stops when it revisits a
// non-terminal node already on the current path, which keeps it terminating
// even on graphs that violate that structural guarantee.
func EnumeratePaths(g *Graph) [][]NodeID {
	var paths [][]NodeID
	for _, start := range g.AnnotationNodes() {
		onPath := make(map[NodeID]bool)
		findPaths(g, start, nil, onPath, &paths)
	}
	return paths
}

func findPaths(g *Graph, current NodeID, path []NodeID, onPath map[NodeID]bool, paths *[][]NodeID) {
	path = append(path, current)

	if g.Node(current).IsAnnotation() && len(path) > 1 {
		recorded := make([]NodeID, len(path))
		copy(recorded, path)
		*paths = append(*paths, recorded)
		return
	}

	if onPath[current] {
		return
	}
	onPath[current] = true

	for _, e := range g.OutEdges(current) {
		findPaths(g, e.To, path, onPath, paths)
	}

	delete(onPath, current)
}
