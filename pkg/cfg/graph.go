// Package cfg builds control flow graphs from annotated Rust functions and
// enumerates the verification paths between annotation points. The graph is
// stored as a dense arena: nodes and edges are slices, node identity is the
// index at insertion time and is never reused after removal.
package cfg

import "errors"

// ErrInternal marks a violated graph-construction invariant. Callers should
// treat it as unrecoverable rather than patch around it.
var ErrInternal = errors.New("internal graph invariant violated")

// NodeKind identifies the variant of a CFG node.
type NodeKind int

const (
	KindFunction NodeKind = iota // function entry marker
	KindPrecondition
	KindPostcondition
	KindInvariant
	KindCutoff // synthesized cut point for a loop with no invariant
	KindStatement
	KindCondition // branch or loop test
	KindReturn
	KindMergePoint // scaffolding, removed by Simplify
)

func (k NodeKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindPrecondition:
		return "precondition"
	case KindPostcondition:
		return "postcondition"
	case KindInvariant:
		return "invariant"
	case KindCutoff:
		return "cutoff"
	case KindStatement:
		return "statement"
	case KindCondition:
		return "condition"
	case KindReturn:
		return "return"
	case KindMergePoint:
		return "merge"
	default:
		return "unknown"
	}
}

// NodeID is the positional identity of a node within its graph.
type NodeID int

// Node is one CFG node. Text is opaque annotation/source text, preserved
// verbatim apart from whitespace normalization.
type Node struct {
	Kind NodeKind
	Text string
}

// IsAnnotation reports whether the node is condition-bearing, i.e. a legal
// start or end point for an enumerated verification path.
func (n Node) IsAnnotation() bool {
	switch n.Kind {
	case KindPrecondition, KindPostcondition, KindInvariant, KindCutoff:
		return true
	}
	return false
}

// Edge is a directed, labeled edge. Parallel edges between the same pair of
// nodes are permitted.
type Edge struct {
	From  NodeID
	To    NodeID
	Label string
}

// Graph is a directed multigraph over an arena of nodes. Removing a node
// tombstones its slot; the index is never handed out again.
type Graph struct {
	nodes   []Node
	removed []bool
	edges   []Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddNode appends a node and returns its identity.
func (g *Graph) AddNode(n Node) NodeID {
	g.nodes = append(g.nodes, n)
	g.removed = append(g.removed, false)
	return NodeID(len(g.nodes) - 1)
}

// Node returns the node stored at id.
func (g *Graph) Node(id NodeID) Node {
	return g.nodes[id]
}

// SetText replaces the text of the node at id.
func (g *Graph) SetText(id NodeID, text string) {
	g.nodes[id].Text = text
}

// AddEdge appends a directed edge from one node to another.
func (g *Graph) AddEdge(from, to NodeID, label string) {
	g.edges = append(g.edges, Edge{From: from, To: to, Label: label})
}

// NodeIDs returns the identities of all live nodes in insertion order.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for i := range g.nodes {
		if !g.removed[i] {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	n := 0
	for i := range g.nodes {
		if !g.removed[i] {
			n++
		}
	}
	return n
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// OutEdges returns the outgoing edges of id in insertion order.
func (g *Graph) OutEdges(id NodeID) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// InEdges returns the incoming edges of id in insertion order.
func (g *Graph) InEdges(id NodeID) []Edge {
	var in []Edge
	for _, e := range g.edges {
		if e.To == id {
			in = append(in, e)
		}
	}
	return in
}

// EdgesConnecting returns every edge from one node to another, in insertion
// order.
func (g *Graph) EdgesConnecting(from, to NodeID) []Edge {
	var conn []Edge
	for _, e := range g.edges {
		if e.From == from && e.To == to {
			conn = append(conn, e)
		}
	}
	return conn
}

// RemoveNode tombstones the node at id and drops all of its incident edges.
func (g *Graph) RemoveNode(id NodeID) {
	g.removed[id] = true
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.From != id && e.To != id {
			kept = append(kept, e)
		}
	}
	g.edges = kept
}

// Removed reports whether the node at id has been removed.
func (g *Graph) Removed(id NodeID) bool {
	return g.removed[id]
}

// AnnotationNodes returns the identities of all live condition-bearing nodes.
func (g *Graph) AnnotationNodes() []NodeID {
	var ids []NodeID
	for _, id := range g.NodeIDs() {
		if g.Node(id).IsAnnotation() {
			ids = append(ids, id)
		}
	}
	return ids
}
