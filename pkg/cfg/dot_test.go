package cfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOT_NodeShapes(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"function", Node{Kind: KindFunction, Text: "factorial"}, `0 [label="factorial", shape=Mdiamond];`},
		{"precondition", Node{Kind: KindPrecondition, Text: "n >= 0"}, `0 [label="Pre: n >= 0", shape=ellipse];`},
		{"postcondition", Node{Kind: KindPostcondition, Text: "r >= 1"}, `0 [label="Post: r >= 1", shape=ellipse];`},
		{"invariant", Node{Kind: KindInvariant, Text: "i <= n"}, `0 [label="@Inv: i <= n", shape=ellipse];`},
		{"cutoff", Node{Kind: KindCutoff}, `0 [label="@Cutoff ", shape=ellipse];`},
		{"statement", Node{Kind: KindStatement, Text: "x = 1"}, `0 [label="x = 1", shape=box];`},
		{"condition", Node{Kind: KindCondition, Text: "if: x == 0"}, `0 [label="if: x == 0", shape=diamond];`},
		{"return", Node{Kind: KindReturn, Text: "x"}, `0 [label="return: x", shape=ellipse];`},
		{"merge", Node{Kind: KindMergePoint}, `0 [label="Merge", shape=circle];`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGraph()
			g.AddNode(tc.node)
			assert.Contains(t, DOT(g), tc.want)
		})
	}
}

func TestDOT_EscapesQuotes(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{Kind: KindStatement, Text: `print("hello")`})

	out := DOT(g)
	assert.Contains(t, out, `label="print(\"hello\")"`)
}

func TestDOT_EdgeLabels(t *testing.T) {
	g := NewGraph()
	cond := g.AddNode(Node{Kind: KindCondition, Text: "if: x"})
	a := g.AddNode(Node{Kind: KindStatement, Text: "a"})
	b := g.AddNode(Node{Kind: KindStatement, Text: "b"})
	g.AddEdge(cond, a, "true")
	g.AddEdge(a, b, "")

	out := DOT(g)
	assert.Contains(t, out, `0 -> 1 [label="true"];`)
	// empty labels are omitted entirely
	assert.Contains(t, out, "1 -> 2;\n")
	assert.NotContains(t, out, `1 -> 2 [label=""]`)
}

func TestDOT_Envelope(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{Kind: KindFunction, Text: "f"})

	out := DOT(g)
	assert.True(t, strings.HasPrefix(out, "digraph G {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestPathDOT_UsesFirstConnectingEdge(t *testing.T) {
	g := NewGraph()
	pre := g.AddNode(Node{Kind: KindPrecondition, Text: "p"})
	post := g.AddNode(Node{Kind: KindPostcondition, Text: "q"})
	g.AddEdge(pre, post, "true")
	g.AddEdge(pre, post, "false")

	out := PathDOT(g, []NodeID{pre, post})
	assert.True(t, strings.HasPrefix(out, "digraph Path {\n"))
	assert.Contains(t, out, `0 -> 1 [label="true"];`)
	assert.NotContains(t, out, `label="false"`)
}

func TestPathDOT_OnlyPathNodesDeclared(t *testing.T) {
	g := NewGraph()
	pre := g.AddNode(Node{Kind: KindPrecondition, Text: "p"})
	s := g.AddNode(Node{Kind: KindStatement, Text: "x = 1"})
	post := g.AddNode(Node{Kind: KindPostcondition, Text: "q"})
	other := g.AddNode(Node{Kind: KindStatement, Text: "unrelated"})
	g.AddEdge(pre, s, "")
	g.AddEdge(s, post, "")
	g.AddEdge(post, other, "")

	out := PathDOT(g, []NodeID{pre, s, post})
	assert.NotContains(t, out, "unrelated")

	require.Len(t, EnumeratePaths(g), 1)
}
