package sppf

import (
	"github.com/kayvan61/gfg"
	"github.com/kayvan61/gfg/flow"
	"github.com/kayvan61/gfg/flow/iteratable"
	"github.com/kayvan61/gfg/scanner"
	"github.com/kayvan61/gfg/sigma"
)

// bottom (⊥) marks "no SPPF contribution yet" for an item reference, as
// used by makeNode below.
const bottom = -1

// onlineSet is one Σᵢ of the bottom-up builder: items carry a forest
// reference alongside the (node, tag) pair the Sigma-set engine uses,
// plus the same end→callers bookkeeping the recognizer's END rule needs,
// plus H: production start-node ids that completed nullably within this
// exact step, short-circuiting ε-cycles.
type onlineSet struct {
	Index      uint64
	Items      *iteratable.Set // of sigma.Item
	Ref        map[sigma.Item]int
	EndCallers map[int][]sigma.CallerRef
	H          map[int]int // callee start node id -> symbol ref, this step only
}

func newOnlineSet(idx uint64) *onlineSet {
	return &onlineSet{
		Index:      idx,
		Items:      iteratable.NewSet(16),
		Ref:        make(map[sigma.Item]int),
		EndCallers: make(map[int][]sigma.CallerRef),
		H:          make(map[int]int),
	}
}

func (s *onlineSet) refOf(it sigma.Item) int {
	if r, ok := s.Ref[it]; ok {
		return r
	}
	return bottom
}

// BuildForestOnline runs the bottom-up, online forest builder:
// recognition and SPPF construction interleaved, one Σᵢ at a time. It
// returns the forest built so far (useful for diagnostics even on
// rejection, though a caller should not rely on a partial forest
// reflecting any particular derivation after a Reject) plus whether the
// input was accepted.
func BuildForestOnline(gf *flow.GFG, lex scanner.Tokenizer) (*Forest, bool, error) {
	f := NewForest()
	var sets []*onlineSet

	s0 := newOnlineSet(0)
	s0.Items.Add(sigma.Item{Node: gf.StartNode(), Tag: 0})
	sets = append(sets, s0)
	closeOnline(f, gf, sets, 0)

	known := knownScanKinds(gf)
	tok := lex.NextToken()
	n := 0
	for tok.TokType() != scanner.EOF {
		if lex.Strict() && !known[tok.TokType()] {
			return f, false, &gfg.TokenError{Kind: tok.TokType()}
		}
		i := uint64(len(sets) - 1)
		s := scanOnline(f, gf, sets[i], i, tok)
		sets = append(sets, s)
		n++
		closeOnline(f, gf, sets, i+1)
		tok = lex.NextToken()
	}

	last := sets[len(sets)-1]
	accepted := last.Items.Contains(sigma.Item{Node: gf.EndNode(), Tag: 0})
	if accepted {
		f.Root = last.refOf(sigma.Item{Node: gf.EndNode(), Tag: 0})
	}
	tracer().Debugf("online builder consumed %d token(s), accepted=%v", n, accepted)
	return f, accepted, nil
}

func knownScanKinds(gf *flow.GFG) map[gfg.TokType]bool {
	known := make(map[gfg.TokType]bool)
	for _, n := range gf.Nodes {
		if n.IsScan {
			known[n.ScanLabel.TokType] = true
		}
	}
	return known
}

// scanOnline is the scan transition: every scan item whose edge matches
// tok's kind advances into Σᵢ₊₁, carrying a ref that packs its own
// prefix with the freshly allocated terminal leaf.
func scanOnline(f *Forest, gf *flow.GFG, cur *onlineSet, i uint64, tok gfg.Token) *onlineSet {
	next := newOnlineSet(i + 1)
	cur.Items.Each(func(e interface{}) {
		it := e.(sigma.Item)
		n := gf.Node(it.Node)
		if !n.IsScan {
			return
		}
		for dst, lbl := range n.Out {
			if lbl == nil || lbl.TokType != tok.TokType() {
				continue
			}
			term, fresh := f.getOrMake(Terminal, lbl.Name, i, i+1)
			if fresh {
				f.Nodes[term].Token = tok
			}
			nt := sigma.Item{Node: dst, Tag: it.Tag}
			ref := makeNode(f, gf.Node(dst).Name, it.Tag, i+1, cur.refOf(it), term)
			next.Items.Add(nt)
			next.Ref[nt] = ref
		}
	})
	return next
}

// closeOnline runs the ε-closure worklist fixed point for Σᵢ, fusing the
// recognizer's START/EXIT/CALL/END rules with SPPF node construction.
func closeOnline(f *Forest, gf *flow.GFG, sets []*onlineSet, i uint64) {
	cur := sets[i]
	cur.Items.IterateOnce()
	for cur.Items.Next() {
		it := cur.Items.Item().(sigma.Item)
		n := gf.Node(it.Node)
		switch {
		case n.Kind == flow.End:
			closeOnlineEnd(f, gf, sets, cur, n, it, i)
		case n.Kind == flow.Item && n.IsCall:
			closeOnlineCall(f, gf, cur, n, it, i)
		default:
			closeOnlineEpsilon(f, gf, cur, n, it, i)
		}
	}
}

func closeOnlineCall(f *Forest, gf *flow.GFG, cur *onlineSet, n *flow.Node, it sigma.Item, i uint64) {
	calleeStart := calleeOf(n)
	seed := sigma.Item{Node: calleeStart, Tag: i}
	cur.Items.Add(seed)
	if _, ok := cur.Ref[seed]; !ok {
		cur.Ref[seed] = bottom
	}
	endID := gf.StartToEnd[calleeStart]
	cur.EndCallers[endID] = append(cur.EndCallers[endID], sigma.CallerRef{CallID: it.Node, CallTag: it.Tag})

	// H can only ever hold an entry for calleeStart if the callee
	// derives ε (an entry is recorded exactly when some alternative's
	// Exit reaches the callee's End node at tag==i, i.e. with zero
	// width — only possible along an all-ε path). gf.Node(calleeStart)'s
	// TailNullable flag is this same fact precomputed once by C2, so a
	// callee that can never derive ε is skipped here without probing
	// the map at all: the "sentinel position" check spec.md §4.2
	// assigns the flag to, rather than letting the online builder
	// re-derive "did this complete nullably" from H's absence on every
	// call.
	if !gf.Node(calleeStart).TailNullable {
		return
	}

	if symRef, ok := cur.H[calleeStart]; ok {
		// Callee already completed nullably at this exact index: seed
		// the return item directly instead of waiting for the End item
		// to be (re-)visited, short-circuiting the ε-cycle.
		retID := gf.CallToReturn[it.Node]
		retItem := sigma.Item{Node: retID, Tag: it.Tag}
		merged := makeNode(f, gf.Node(retID).Name, it.Tag, i, cur.refOf(it), symRef)
		cur.Items.Add(retItem)
		cur.Ref[retItem] = merged
	}
}

func calleeOf(n *flow.Node) int {
	for dst, lbl := range n.Out {
		if lbl == nil {
			return dst
		}
	}
	panic("sppf: call item has no ε-edge to a callee start — GFG is malformed")
}

func closeOnlineEnd(f *Forest, gf *flow.GFG, sets []*onlineSet, cur *onlineSet, n *flow.Node, it sigma.Item, i uint64) {
	origin := sets[it.Tag]
	for _, c := range origin.EndCallers[n.ID] {
		retID := gf.CallToReturn[c.CallID]
		retItem := sigma.Item{Node: retID, Tag: c.CallTag}
		leftRef := origin.refOf(sigma.Item{Node: c.CallID, Tag: c.CallTag})
		rightRef := cur.refOf(it)
		merged := makeNode(f, gf.Node(retID).Name, c.CallTag, i, leftRef, rightRef)
		cur.Items.Add(retItem)
		cur.Ref[retItem] = merged
	}
}

func closeOnlineEpsilon(f *Forest, gf *flow.GFG, cur *onlineSet, n *flow.Node, it sigma.Item, i uint64) {
	for dst, lbl := range n.Out {
		if lbl != nil {
			continue
		}
		dstNode := gf.Node(dst)
		nt := sigma.Item{Node: dst, Tag: it.Tag}

		if n.Kind == flow.Item && n.IsExit && dstNode.Kind == flow.End {
			ref := cur.refOf(it)
			if ref == bottom {
				// Zero-width alternative: represent it with an
				// (item, tag, tag) intermediate node holding an
				// explicit ε-leaf rather than a bare ⊥, as the
				// top-down builder does.
				var freshItem bool
				ref, freshItem = f.getOrMake(Intermediate, n.Name, it.Tag, it.Tag)
				if freshItem {
					eps, _ := f.getOrMake(Terminal, "ε", it.Tag, it.Tag)
					f.Nodes[ref].Children = []int{eps}
				}
			}
			symID, fresh := f.getOrMake(Symbol, dstNode.Production, it.Tag, i)
			if fresh || !containsChild(f.Nodes[symID], ref) {
				f.Nodes[symID].Children = append(f.Nodes[symID].Children, ref)
			}
			cur.Items.Add(nt)
			cur.Ref[nt] = symID
			if it.Tag == i {
				cur.H[gf.EndToStart[dst]] = symID
			}
			continue
		}

		cur.Items.Add(nt)
		if _, ok := cur.Ref[nt]; !ok {
			cur.Ref[nt] = cur.refOf(it)
		}
	}
}

// containsChild reports whether ref is already among n's children: an
// Exit item and its own End node can be re-enqueued along more than one
// ε-path within the same set.
func containsChild(n *Node, ref int) bool {
	for _, c := range n.Children {
		if c == ref {
			return true
		}
	}
	return false
}

// makeNode is the online builder's node-construction step, the
// bottom-up counterpart of the top-down builder's symbolNode/itemNode
// pair in builder.go: the result is always keyed as an Intermediate node
// (label, tag, end) so that both builders allocate parity-shaped
// forests; left == ⊥ collapses to a single unpacked child instead of a
// Packed wrapper (the degenerate, unambiguous case), otherwise a second
// distinct (left, right) pair extends the node with another Packed
// child, making it ambiguous.
func makeNode(f *Forest, label string, tag, end uint64, left, right int) int {
	id, fresh := f.getOrMake(Intermediate, label, tag, end)
	if left == bottom {
		if fresh {
			f.Nodes[id].Children = []int{right}
		}
		return id
	}
	packed := f.getOrMakePacked(id, left, right)
	if fresh {
		f.Nodes[id].Children = []int{packed}
		return id
	}
	if !containsChild(f.Nodes[id], packed) {
		f.Nodes[id].Children = append(f.Nodes[id].Children, packed)
	}
	return id
}
