package cfg

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/verigraph/verigraph/pkg/contracts"
)

// noCursor means the next node added starts a new chain with no incoming edge.
const noCursor = NodeID(-1)

// builder translates tree-sitter parse trees into a raw CFG. It carries two
// pieces of state across the whole translation: the cursor (the node the next
// emitted node links from) and the pending label for that next edge, consumed
// and cleared as soon as it is used.
type builder struct {
	src       []byte
	graph     *Graph
	cursor    NodeID
	nextLabel string
	registry  *contracts.Registry
}

// BuildFile parses an annotated Rust file and translates every function in
// it into a single graph, each function rooted at its own Function node.
func BuildFile(path string, reg *contracts.Registry) (*Graph, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return BuildSource(src, reg)
}

// BuildSource translates every function in src. It returns an error when the
// source contains no functions at all, since the resulting graph would be
// empty and every downstream stage would silently produce nothing.
func BuildSource(src []byte, reg *contracts.Registry) (*Graph, error) {
	return build(src, reg, "")
}

// BuildFunction translates only the named function.
func BuildFunction(src []byte, name string, reg *contracts.Registry) (*Graph, error) {
	g, err := build(src, reg, name)
	if err != nil {
		return nil, err
	}
	if g.NodeCount() == 0 {
		return nil, fmt.Errorf("function %q not found", name)
	}
	return g, nil
}

func build(src []byte, reg *contracts.Registry, only string) (*Graph, error) {
	if reg == nil {
		reg = contracts.Empty()
	}

	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	tree := parser.Parse(nil, src)
	defer tree.Close()

	b := &builder{
		src:      src,
		graph:    NewGraph(),
		cursor:   noCursor,
		registry: reg,
	}

	funcs := collectFunctions(tree.RootNode())
	if len(funcs) == 0 {
		return nil, fmt.Errorf("no functions found in source")
	}

	for _, fn := range funcs {
		name := b.nodeText(fn.ChildByFieldName("name"))
		if only != "" && name != only {
			continue
		}
		b.translateFunction(fn, name)
	}

	return b.graph, nil
}

// collectFunctions gathers every function_item in the parse tree.
func collectFunctions(node *sitter.Node) []*sitter.Node {
	var funcs []*sitter.Node
	if node == nil {
		return funcs
	}
	if node.Type() == "function_item" {
		funcs = append(funcs, node)
		return funcs
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		funcs = append(funcs, collectFunctions(node.Child(i))...)
	}
	return funcs
}

func (b *builder) translateFunction(fn *sitter.Node, name string) {
	b.cursor = noCursor
	b.nextLabel = ""
	b.addNode(Node{Kind: KindFunction, Text: name})

	if body := fn.ChildByFieldName("body"); body != nil {
		b.translateBlock(body)
	}

	b.cursor = noCursor
}

// addNode appends a node, links it from the cursor with the pending label
// (consumed on use), and advances the cursor to it.
func (b *builder) addNode(n Node) NodeID {
	id := b.graph.AddNode(n)
	if b.cursor != noCursor {
		b.graph.AddEdge(b.cursor, id, b.nextLabel)
		b.nextLabel = ""
	}
	b.cursor = id
	return id
}

// addNodeDetached appends a node without linking it; used for merge points,
// which receive their incoming edges explicitly.
func (b *builder) addNodeDetached(n Node) NodeID {
	id := b.graph.AddNode(n)
	b.cursor = id
	return id
}

func (b *builder) translateBlock(block *sitter.Node) {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		b.translateStmt(block.NamedChild(i))
	}
}

func (b *builder) translateStmt(n *sitter.Node) {
	switch n.Type() {
	case "line_comment", "block_comment", "empty_statement":
		// skipped, contributes no node
	case "expression_statement":
		if expr := n.NamedChild(0); expr != nil {
			b.translateExpr(expr)
		}
	case "let_declaration":
		b.addNode(Node{Kind: KindStatement, Text: normalizeText(b.nodeText(n))})
	default:
		b.translateExpr(n)
	}
}

func (b *builder) translateExpr(n *sitter.Node) {
	switch n.Type() {
	case "if_expression":
		b.translateIf(n)
	case "while_expression":
		b.translateWhile(n)
	case "for_expression":
		b.translateFor(n)
	case "return_expression":
		b.translateReturn(n)
	case "macro_invocation":
		b.translateMacro(n)
	case "call_expression":
		b.translateCall(n)
	case "array_expression":
		// element expressions may hide nested annotation macros
		for i := 0; i < int(n.NamedChildCount()); i++ {
			b.translateExpr(n.NamedChild(i))
		}
	default:
		b.addNode(Node{Kind: KindStatement, Text: normalizeText(b.nodeText(n))})
	}
}

func (b *builder) translateIf(n *sitter.Node) {
	condText := normalizeText(b.nodeText(n.ChildByFieldName("condition")))
	label := "if: " + condText
	if b.nextLabel == "false" {
		// reached through the false edge of an enclosing condition
		label = "else if: " + condText
	}
	cond := b.addNode(Node{Kind: KindCondition, Text: label})

	b.nextLabel = "true"
	if consequence := n.ChildByFieldName("consequence"); consequence != nil {
		b.translateBlock(consequence)
	}
	trueEnd := b.cursor

	merge := b.addNodeDetached(Node{Kind: KindMergePoint})
	b.graph.AddEdge(trueEnd, merge, "")

	if alt := n.ChildByFieldName("alternative"); alt != nil {
		b.cursor = cond
		b.nextLabel = "false"
		if elseIf := findChildByType(alt, "if_expression"); elseIf != nil {
			b.translateIf(elseIf)
		} else if block := findChildByType(alt, "block"); block != nil {
			b.translateBlock(block)
		} else if expr := alt.NamedChild(0); expr != nil {
			b.translateExpr(expr)
		}
		b.graph.AddEdge(b.cursor, merge, "")
	} else {
		b.graph.AddEdge(cond, merge, "false")
	}

	b.cursor = merge
	b.nextLabel = ""
}

func (b *builder) translateWhile(n *sitter.Node) {
	loopBack := b.loopBackTarget()

	condText := normalizeText(b.nodeText(n.ChildByFieldName("condition")))
	cond := b.addNode(Node{Kind: KindCondition, Text: "while: " + condText})

	b.nextLabel = "true"
	if body := n.ChildByFieldName("body"); body != nil {
		b.translateBlock(body)
	}
	b.graph.AddEdge(b.cursor, loopBack, "back to loop")

	merge := b.addNodeDetached(Node{Kind: KindMergePoint})
	b.graph.AddEdge(cond, merge, "false")

	b.cursor = merge
	b.nextLabel = ""
}

func (b *builder) translateFor(n *sitter.Node) {
	loopBack := b.loopBackTarget()

	pattern := normalizeText(b.nodeText(n.ChildByFieldName("pattern")))
	iterator := normalizeText(b.nodeText(n.ChildByFieldName("value")))
	cond := b.addNode(Node{Kind: KindCondition, Text: fmt.Sprintf("for %s in %s", pattern, iterator)})

	b.nextLabel = "true"
	if body := n.ChildByFieldName("body"); body != nil {
		b.translateBlock(body)
	}
	b.graph.AddEdge(b.cursor, loopBack, "back to loop")

	merge := b.addNodeDetached(Node{Kind: KindMergePoint})
	b.graph.AddEdge(cond, merge, "false")

	b.cursor = merge
	b.nextLabel = ""
}

// loopBackTarget returns the node a loop body links back to: the Invariant
// immediately preceding the loop when one exists, otherwise a synthesized
// Cutoff marking the unverified loop bound.
func (b *builder) loopBackTarget() NodeID {
	if b.cursor != noCursor && b.graph.Node(b.cursor).Kind == KindInvariant {
		return b.cursor
	}
	return b.addNode(Node{Kind: KindCutoff})
}

func (b *builder) translateReturn(n *sitter.Node) {
	text := ""
	if expr := n.NamedChild(0); expr != nil {
		text = normalizeText(b.nodeText(expr))
	}
	b.addNode(Node{Kind: KindReturn, Text: text})
}

// translateMacro handles a macro invocation. The annotation macros pre!,
// post! and invariant! become their condition-bearing nodes; any other macro
// is treated as a call and matched against the registry under "name!".
func (b *builder) translateMacro(n *sitter.Node) {
	name := macroName(n, b.src)
	args := b.macroArgs(n)

	switch name {
	case "pre":
		b.addNode(Node{Kind: KindPrecondition, Text: args})
	case "post":
		b.addNode(Node{Kind: KindPostcondition, Text: args})
	case "invariant":
		b.addNode(Node{Kind: KindInvariant, Text: args})
	default:
		b.spliceCall(name+"!", normalizeText(b.nodeText(n)))
	}
}

// translateCall handles free-function and method calls. The callee name is
// matched against the registry; argument subtrees are scanned for nested
// annotation macros either way.
func (b *builder) translateCall(n *sitter.Node) {
	callee := b.calleeName(n)
	if args := n.ChildByFieldName("arguments"); args != nil {
		b.scanForMacros(args)
	}
	b.spliceCall(callee, normalizeText(b.nodeText(n)))
}

// calleeName extracts the bare identifier a call is matched by: the method
// name for method calls, the last path segment for free functions.
func (b *builder) calleeName(n *sitter.Node) string {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "field_expression":
		return b.nodeText(fn.ChildByFieldName("field"))
	case "scoped_identifier":
		return b.nodeText(fn.ChildByFieldName("name"))
	default:
		return b.nodeText(fn)
	}
}

// scanForMacros walks an argument subtree and translates any annotation
// macro found inside it, without descending into the macro's own tokens.
func (b *builder) scanForMacros(n *sitter.Node) {
	if n == nil {
		return
	}
	if n.Type() == "macro_invocation" {
		b.translateMacro(n)
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.scanForMacros(n.NamedChild(i))
	}
}

// spliceCall emits the node sequence for a call site: when the callee has a
// registered contract, one Precondition per registered precondition, the call
// statement, then one Postcondition per registered postcondition, all in
// registry order; otherwise just the call statement.
func (b *builder) spliceCall(name, callText string) {
	method, ok := b.registry.Lookup(name)
	if !ok {
		b.addNode(Node{Kind: KindStatement, Text: "Call: " + callText})
		return
	}

	for _, pre := range method.Preconditions {
		b.addNode(Node{Kind: KindPrecondition, Text: pre})
	}
	b.addNode(Node{Kind: KindStatement, Text: "Call: " + callText})
	for _, post := range method.Postconditions {
		b.addNode(Node{Kind: KindPostcondition, Text: post})
	}
}

// macroName returns the last segment of the macro path, without the bang.
func macroName(n *sitter.Node, src []byte) string {
	mac := n.ChildByFieldName("macro")
	if mac == nil {
		return ""
	}
	if mac.Type() == "scoped_identifier" {
		if name := mac.ChildByFieldName("name"); name != nil {
			return string(src[name.StartByte():name.EndByte()])
		}
	}
	return string(src[mac.StartByte():mac.EndByte()])
}

// macroArgs returns the macro's argument text with the surrounding token
// parentheses and string quotes stripped.
func (b *builder) macroArgs(n *sitter.Node) string {
	tokens := findChildByType(n, "token_tree")
	if tokens == nil {
		return ""
	}
	text := strings.TrimSpace(b.nodeText(tokens))
	text = strings.TrimPrefix(text, "(")
	text = strings.TrimSuffix(text, ")")
	text = strings.TrimSpace(text)
	return strings.Trim(text, `"'`)
}

func (b *builder) nodeText(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if start >= uint32(len(b.src)) || end > uint32(len(b.src)) {
		return ""
	}
	return string(b.src[start:end])
}

func findChildByType(node *sitter.Node, childType string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == childType {
			return child
		}
	}
	return nil
}

var punctuationRe = regexp.MustCompile(`\s*([()\[\]!.,;])\s*`)

// normalizeText collapses whitespace runs to single spaces and removes the
// spacing around punctuation. Idempotent; applied both during translation and
// as the simplifier's final cleanup pass.
func normalizeText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return punctuationRe.ReplaceAllString(s, "$1")
}
