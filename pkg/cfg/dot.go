package cfg

import (
	"fmt"
	"strings"
)

// dotAttrs returns the display label and shape hint for a node.
func dotAttrs(n Node) (label, shape string) {
	switch n.Kind {
	case KindFunction:
		return n.Text, "Mdiamond"
	case KindPrecondition:
		return "Pre: " + n.Text, "ellipse"
	case KindPostcondition:
		return "Post: " + n.Text, "ellipse"
	case KindInvariant:
		return "@Inv: " + n.Text, "ellipse"
	case KindCutoff:
		return "@Cutoff " + n.Text, "ellipse"
	case KindStatement:
		return n.Text, "box"
	case KindCondition:
		return n.Text, "diamond"
	case KindReturn:
		return "return: " + n.Text, "ellipse"
	case KindMergePoint:
		return "Merge", "circle"
	default:
		return n.Text, "box"
	}
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func writeNode(sb *strings.Builder, id NodeID, n Node) {
	label, shape := dotAttrs(n)
	fmt.Fprintf(sb, "  %d [label=\"%s\", shape=%s];\n", id, escapeQuotes(label), shape)
}

func writeEdge(sb *strings.Builder, e Edge) {
	if e.Label == "" {
		fmt.Fprintf(sb, "  %d -> %d;\n", e.From, e.To)
		return
	}
	fmt.Fprintf(sb, "  %d -> %d [label=\"%s\"];\n", e.From, e.To, escapeQuotes(e.Label))
}

// DOT renders the whole graph as a digraph: one declaration per live node,
// then one per edge, in insertion order.
func DOT(g *Graph) string {
	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	for _, id := range g.NodeIDs() {
		writeNode(&sb, id, g.Node(id))
	}
	for _, e := range g.Edges() {
		writeEdge(&sb, e)
	}
	sb.WriteString("}\n")
	return sb.String()
}

// PathDOT renders a single enumerated path as its own digraph. For each
// consecutive pair the first connecting edge supplies the label; a bare edge
// is emitted only if no connecting edge exists, which cannot happen for a
// path built by following real edges.
func PathDOT(g *Graph, path []NodeID) string {
	var sb strings.Builder
	sb.WriteString("digraph Path {\n")
	for _, id := range path {
		writeNode(&sb, id, g.Node(id))
	}
	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		if conn := g.EdgesConnecting(from, to); len(conn) > 0 {
			writeEdge(&sb, conn[0])
		} else {
			fmt.Fprintf(&sb, "  %d -> %d;\n", from, to)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}
