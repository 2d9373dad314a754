package cfg

// ExportNode is the machine-readable form of one graph node.
type ExportNode struct {
	ID   int    `json:"id" msgpack:"id"`
	Kind string `json:"kind" msgpack:"kind"`
	Text string `json:"text" msgpack:"text"`
}

// ExportEdge is the machine-readable form of one edge.
type ExportEdge struct {
	From  int    `json:"from" msgpack:"from"`
	To    int    `json:"to" msgpack:"to"`
	Label string `json:"label,omitempty" msgpack:"label"`
}

// Export is a serialization-friendly snapshot of a simplified graph and its
// enumerated verification paths, intended for downstream
// verification-condition generators.
type Export struct {
	Source string       `json:"source" msgpack:"source"`
	Nodes  []ExportNode `json:"nodes" msgpack:"nodes"`
	Edges  []ExportEdge `json:"edges" msgpack:"edges"`
	Paths  [][]int      `json:"paths,omitempty" msgpack:"paths"`
}

// NewExport snapshots a graph. paths may be nil when only the graph itself is
// wanted.
func NewExport(g *Graph, source string, paths [][]NodeID) Export {
	ex := Export{Source: source}

	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		ex.Nodes = append(ex.Nodes, ExportNode{
			ID:   int(id),
			Kind: n.Kind.String(),
			Text: n.Text,
		})
	}
	for _, e := range g.Edges() {
		ex.Edges = append(ex.Edges, ExportEdge{
			From:  int(e.From),
			To:    int(e.To),
			Label: e.Label,
		})
	}
	for _, p := range paths {
		indices := make([]int, len(p))
		for i, id := range p {
			indices[i] = int(id)
		}
		ex.Paths = append(ex.Paths, indices)
	}

	return ex
}
