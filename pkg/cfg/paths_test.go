package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumeratePaths_NoAnnotations(t *testing.T) {
	g := NewGraph()
	f := g.AddNode(Node{Kind: KindFunction, Text: "f"})
	s := g.AddNode(Node{Kind: KindStatement, Text: "x = 1"})
	r := g.AddNode(Node{Kind: KindReturn, Text: "x"})
	g.AddEdge(f, s, "")
	g.AddEdge(s, r, "")

	assert.Empty(t, EnumeratePaths(g))
}

func TestEnumeratePaths_PreToPost(t *testing.T) {
	g := NewGraph()
	pre := g.AddNode(Node{Kind: KindPrecondition, Text: "n >= 0"})
	s := g.AddNode(Node{Kind: KindStatement, Text: "r = n"})
	post := g.AddNode(Node{Kind: KindPostcondition, Text: "r >= 0"})
	g.AddEdge(pre, s, "")
	g.AddEdge(s, post, "")

	paths := EnumeratePaths(g)
	require.Len(t, paths, 1)
	assert.Equal(t, []NodeID{pre, s, post}, paths[0])
}

func TestEnumeratePaths_BranchYieldsOnePathPerArm(t *testing.T) {
	g := NewGraph()
	pre := g.AddNode(Node{Kind: KindPrecondition, Text: "n >= 0"})
	cond := g.AddNode(Node{Kind: KindCondition, Text: "if: n == 0"})
	a := g.AddNode(Node{Kind: KindStatement, Text: "r = 1"})
	b := g.AddNode(Node{Kind: KindStatement, Text: "r = n"})
	post := g.AddNode(Node{Kind: KindPostcondition, Text: "r >= 0"})

	g.AddEdge(pre, cond, "")
	g.AddEdge(cond, a, "true")
	g.AddEdge(cond, b, "false")
	g.AddEdge(a, post, "")
	g.AddEdge(b, post, "")

	paths := EnumeratePaths(g)
	require.Len(t, paths, 2)
	assert.Equal(t, []NodeID{pre, cond, a, post}, paths[0])
	assert.Equal(t, []NodeID{pre, cond, b, post}, paths[1])
}

func TestEnumeratePaths_StopsAtFirstAnnotation(t *testing.T) {
	// exploration must not continue past an annotation into the next segment
	g := NewGraph()
	pre := g.AddNode(Node{Kind: KindPrecondition, Text: "p"})
	inv := g.AddNode(Node{Kind: KindInvariant, Text: "i"})
	post := g.AddNode(Node{Kind: KindPostcondition, Text: "q"})
	g.AddEdge(pre, inv, "")
	g.AddEdge(inv, post, "")

	paths := EnumeratePaths(g)
	require.Len(t, paths, 2)
	assert.Equal(t, []NodeID{pre, inv}, paths[0])
	assert.Equal(t, []NodeID{inv, post}, paths[1])
}

func TestEnumeratePaths_LoopRoundTrip(t *testing.T) {
	// the loop body's verification path returns to the invariant it started
	// from; the terminal check fires on re-entering the start node
	g := NewGraph()
	inv := g.AddNode(Node{Kind: KindInvariant, Text: "i <= n"})
	cond := g.AddNode(Node{Kind: KindCondition, Text: "while: i < n"})
	body := g.AddNode(Node{Kind: KindStatement, Text: "i += 1"})
	post := g.AddNode(Node{Kind: KindPostcondition, Text: "i == n"})

	g.AddEdge(inv, cond, "")
	g.AddEdge(cond, body, "true")
	g.AddEdge(body, inv, "back to loop")
	g.AddEdge(cond, post, "false")

	paths := EnumeratePaths(g)
	require.Len(t, paths, 2)
	assert.Equal(t, []NodeID{inv, cond, body, inv}, paths[0])
	assert.Equal(t, []NodeID{inv, cond, post}, paths[1])
}

func TestEnumeratePaths_TerminatesOnMalformedCycle(t *testing.T) {
	// a back-edge to a non-annotation node violates the builder's structural
	// guarantee; the search must still terminate and record nothing for the
	// cyclic branch
	g := NewGraph()
	pre := g.AddNode(Node{Kind: KindPrecondition, Text: "p"})
	a := g.AddNode(Node{Kind: KindStatement, Text: "a"})
	b := g.AddNode(Node{Kind: KindStatement, Text: "b"})
	g.AddEdge(pre, a, "")
	g.AddEdge(a, b, "")
	g.AddEdge(b, a, "")

	assert.Empty(t, EnumeratePaths(g))
}
