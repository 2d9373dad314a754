package cfg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExport(t *testing.T) {
	g := NewGraph()
	pre := g.AddNode(Node{Kind: KindPrecondition, Text: "n >= 0"})
	post := g.AddNode(Node{Kind: KindPostcondition, Text: "r >= 0"})
	g.AddEdge(pre, post, "")

	ex := NewExport(g, "lib.rs", [][]NodeID{{pre, post}})

	assert.Equal(t, "lib.rs", ex.Source)
	require.Len(t, ex.Nodes, 2)
	assert.Equal(t, ExportNode{ID: 0, Kind: "precondition", Text: "n >= 0"}, ex.Nodes[0])
	require.Len(t, ex.Edges, 1)
	assert.Equal(t, ExportEdge{From: 0, To: 1}, ex.Edges[0])
	assert.Equal(t, [][]int{{0, 1}}, ex.Paths)
}

func TestNewExport_SkipsRemovedNodes(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(Node{Kind: KindStatement, Text: "a"})
	m := g.AddNode(Node{Kind: KindMergePoint})
	b := g.AddNode(Node{Kind: KindStatement, Text: "b"})
	g.AddEdge(a, m, "")
	g.AddEdge(m, b, "")
	require.NoError(t, Simplify(g))

	ex := NewExport(g, "lib.rs", nil)

	// removed merge points are absent but surviving identities keep their
	// original indices
	require.Len(t, ex.Nodes, 2)
	assert.Equal(t, 0, ex.Nodes[0].ID)
	assert.Equal(t, 2, ex.Nodes[1].ID)
	assert.Nil(t, ex.Paths)
}

func TestExport_JSONOmitsEmptyFields(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(Node{Kind: KindStatement, Text: "a"})
	b := g.AddNode(Node{Kind: KindStatement, Text: "b"})
	g.AddEdge(a, b, "")

	data, err := json.Marshal(NewExport(g, "lib.rs", nil))
	require.NoError(t, err)

	assert.NotContains(t, string(data), `"label"`)
	assert.NotContains(t, string(data), `"paths"`)
}
