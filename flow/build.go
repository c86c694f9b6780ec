package flow

import (
	"fmt"

	"github.com/kayvan61/gfg"
)

// GFG is a compiled Grammar Flow Graph: a dense node table plus the
// linkage maps between start/end nodes and call/return items. It is
// immutable once returned by Build and may be shared by any number of
// concurrent parses.
type GFG struct {
	Grammar *Grammar
	Start   string // start non-terminal's name
	Nodes   []*Node

	ProdToStart  map[string]int
	StartToEnd   map[int]int
	EndToStart   map[int]int
	CallToReturn map[int]int
	ReturnToCall map[int]int
}

// Node returns the node with the given id.
func (g *GFG) Node(id int) *Node { return g.Nodes[id] }

// StartNode returns the id of "•S" for the grammar's start symbol.
// Build guarantees this is always 0.
func (g *GFG) StartNode() int { return g.ProdToStart[g.Start] }

// EndNode returns the id of "S•" for the grammar's start symbol. Build
// guarantees this is always 1.
func (g *GFG) EndNode() int { return g.StartToEnd[g.StartNode()] }

// Build compiles a grammar into a Grammar Flow Graph. It fails with a
// *gfg.GrammarError if start names a non-terminal the grammar does not
// define.
func Build(grammar *Grammar, start string) (*GFG, error) {
	if _, ok := grammar.prods[start]; !ok {
		return nil, &gfg.GrammarError{Kind: gfg.MissingStart, Symbol: start}
	}

	g := &GFG{
		Grammar:      grammar,
		Start:        start,
		ProdToStart:  make(map[string]int),
		StartToEnd:   make(map[int]int),
		EndToStart:   make(map[int]int),
		CallToReturn: make(map[int]int),
		ReturnToCall: make(map[int]int),
	}

	alloc := func(kind Kind, prod, name string) *Node {
		n := newNode(len(g.Nodes), kind, prod, name)
		g.Nodes = append(g.Nodes, n)
		return n
	}

	// Allocate •S=0 and S•=1 first, so the accept test "(S•,0) ∈ Σₙ"
	// always refers to node 1 regardless of grammar size.
	addStartEndPair := func(prod string) {
		s := alloc(Start, prod, "•"+prod)
		e := alloc(End, prod, prod+"•")
		g.ProdToStart[prod] = s.ID
		g.StartToEnd[s.ID] = e.ID
		g.EndToStart[e.ID] = s.ID
	}
	addStartEndPair(start)
	for _, nt := range grammar.NonTerminals() {
		if nt != start {
			addStartEndPair(nt)
		}
	}

	for _, nt := range grammar.NonTerminals() {
		startNode := g.Nodes[g.ProdToStart[nt]]
		endNode := g.Nodes[g.StartToEnd[startNode.ID]]
		for _, alt := range grammar.Alternatives(nt) {
			if err := g.wireAlternative(nt, alt, startNode, endNode); err != nil {
				return nil, err
			}
		}
	}

	computeTailNullable(g)
	tracer().Debugf("built GFG for %q: %d nodes", start, len(g.Nodes))
	return g, nil
}

// wireAlternative creates the k+1 item nodes for one alternative and
// wires the ε/scan edges between them, plus the Start→entry and
// Exit→End edges.
func (g *GFG) wireAlternative(prod string, alt Alternative, startNode, endNode *Node) error {
	label := func(prefix string, dotAt int) string {
		s := prod + "→"
		for i, sym := range alt {
			if i == dotAt {
				s += "•"
			}
			s += sym.Name
			if i != len(alt)-1 {
				s += " "
			}
		}
		if dotAt == len(alt) {
			s += "•"
		}
		if len(alt) == 0 {
			s = prod + "→•"
		}
		_ = prefix
		return "[" + s + "]"
	}

	alloc := func(kind Kind, name string) *Node {
		n := newNode(len(g.Nodes), kind, prod, name)
		g.Nodes = append(g.Nodes, n)
		return n
	}

	if alt.IsEpsilon() {
		// A single node is simultaneously entry and exit.
		n := alloc(Item, label("", 0))
		n.IsEntry = true
		n.IsExit = true
		connect(startNode, n, nil)
		connect(n, endNode, nil)
		return nil
	}

	items := make([]*Node, len(alt)+1)
	for i := range items {
		items[i] = alloc(Item, label("", i))
	}
	items[0].IsEntry = true
	items[len(items)-1].IsExit = true
	connect(startNode, items[0], nil)

	for i, sym := range alt {
		cur, next := items[i], items[i+1]
		switch {
		case sym.IsTerminal():
			cur.IsScan = true
			cur.ScanLabel = sym
			connect(cur, next, sym)
		case sym.IsNonterminal():
			cur.IsCall = true
			calleeStartID, ok := g.ProdToStart[sym.Name]
			if !ok {
				return &gfg.GrammarError{Kind: gfg.UnknownSymbol, Symbol: sym.Name}
			}
			calleeStart := g.Nodes[calleeStartID]
			calleeEnd := g.Nodes[g.StartToEnd[calleeStartID]]
			connect(cur, calleeStart, nil) // call edge: A→α•Bβ -> •B
			next.IsReturn = true
			g.CallToReturn[cur.ID] = next.ID
			g.ReturnToCall[next.ID] = cur.ID
			connect(calleeEnd, next, nil) // structural: B• -> return item
		default:
			return fmt.Errorf("flow: symbol %q is neither terminal nor non-terminal", sym.Name)
		}
	}
	connect(items[len(items)-1], endNode, nil)
	return nil
}

// computeTailNullable flags every node whose remaining suffix to its
// production's exit derives only ε via scan-only traversal. This
// "nullable suffix" predicate is surfaced in Dump output and is useful
// diagnostic information when a grammar's emptiness behaves
// unexpectedly.
//
// Definition, as a fixed point over the node graph:
//   - an Exit item is always tail-nullable (zero symbols remain);
//   - a scan item is never tail-nullable (reaching its exit requires
//     consuming a terminal);
//   - a call item A→α•Bβ is tail-nullable iff •B is tail-nullable (B
//     itself can be derived without consuming input) AND its return
//     item A→αB•β is tail-nullable;
//   - any other item or a Start node is tail-nullable iff at least one
//     of its ε-successors is tail-nullable (a Start node's ε-successors
//     are the entry items of its alternatives; an ordinary item has
//     exactly one).
//
// End nodes are never queried directly: "•B tail-nullable" already means
// B derives ε, which is exactly what a call item needs to know about its
// callee.
func computeTailNullable(g *GFG) {
	changed := true
	for changed {
		changed = false
		for _, n := range g.Nodes {
			if n.Kind == End || n.TailNullable {
				continue
			}
			if n.Kind == Item && n.IsExit {
				n.TailNullable = true
				changed = true
				continue
			}
			if n.Kind == Item && n.IsScan {
				continue // can never become tail-nullable
			}
			if n.Kind == Item && n.IsCall {
				calleeStart := g.Nodes[calleeStartOf(g, n)]
				ret := g.Nodes[g.CallToReturn[n.ID]]
				if calleeStart.TailNullable && ret.TailNullable {
					n.TailNullable = true
					changed = true
				}
				continue
			}
			// Start node, or an ordinary (non-call, non-scan) item:
			// nullable iff any ε-successor is.
			for dst, lbl := range n.Out {
				if lbl == nil && g.Nodes[dst].TailNullable {
					n.TailNullable = true
					changed = true
					break
				}
			}
		}
	}
}

// calleeStartOf returns the node id of the Start vertex a call item n
// points to.
func calleeStartOf(g *GFG, n *Node) int {
	for dst, lbl := range n.Out {
		if lbl == nil {
			return dst
		}
	}
	return -1
}
