package cfg

import "fmt"

// Simplify removes the merge-point scaffolding the builder introduced and
// re-normalizes statement and condition text. Every merge point with exactly
// one outgoing edge is collapsed: its incoming edges are redirected to its
// single successor and the merge point is deleted. Merge points are
// constructed with exactly one successor; finding more than one is a
// construction defect and is surfaced as an error rather than patched.
//
// Simplify is idempotent: a second run over an already simplified graph
// changes nothing.
func Simplify(g *Graph) error {
	worklist := make([]NodeID, 0)
	for _, id := range g.NodeIDs() {
		if g.Node(id).Kind == KindMergePoint {
			worklist = append(worklist, id)
		}
	}

	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if g.Removed(id) {
			continue
		}

		out := g.OutEdges(id)
		if len(out) == 0 {
			// disconnected by an earlier collapse
			continue
		}
		if len(out) > 1 {
			return fmt.Errorf("%w: merge point %d has %d outgoing edges", ErrInternal, id, len(out))
		}

		target := out[0].To
		for _, in := range g.InEdges(id) {
			g.AddEdge(in.From, target, in.Label)
		}
		g.RemoveNode(id)

		// the target may now carry redundant incoming edges and still need
		// its own single-successor collapse
		if g.Node(target).Kind == KindMergePoint {
			worklist = append(worklist, target)
		}
	}

	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if n.Kind == KindCondition || n.Kind == KindStatement {
			g.SetText(id, normalizeText(n.Text))
		}
	}

	return nil
}
