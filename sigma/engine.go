package sigma

import (
	"github.com/cnf/structhash"
	"github.com/kayvan61/gfg"
	"github.com/kayvan61/gfg/flow"
	"github.com/kayvan61/gfg/flow/iteratable"
	"github.com/kayvan61/gfg/scanner"
)

// Item is a Sigma-set item: a GFG node id tagged with the Σ-index at
// which the current derivation began.
type Item struct {
	Node int
	Tag  uint64
}

// CallerRef identifies a call item and the tag it carried when it
// invoked a production.
type CallerRef struct {
	CallID  int
	CallTag uint64
}

// EndRef identifies a completed production: its End node id and the
// tag (origin index) it completed under.
type EndRef struct {
	EndID int
	Tag   uint64
}

// ExitRef identifies an Exit item and the tag (origin index) of the
// derivation that reached it.
type ExitRef struct {
	ExitID int
	Tag    uint64
}

// SigmaSet is one Σₖ: its live items plus three auxiliary maps used by
// the closure rules and by the downstream tree/forest reconstruction.
type SigmaSet struct {
	Index uint64
	Items *iteratable.Set // of Item

	// EndCallers is populated when THIS set is a call's origin (i.e. a
	// call item (c, t) in Σₖ seeds (•B, k) here): keyed by B's End node
	// id, it records (call_id, call_tag) pairs. The END inference rule
	// consults Σ_t.EndCallers (t = the completed item's own tag), which
	// is exactly this map of the set where the call originated,
	// regardless of which later Σ the completion is discovered in.
	EndCallers map[int][]CallerRef

	// EndExits records, for an End node reached in THIS set, the
	// (Exit item id, tag) pairs that ε-propagated into it here. Used by
	// the single-tree extractor and the top-down SPPF builder's EXIT⁻¹
	// step to find the derivation(s) that completed a production.
	EndExits map[int][]ExitRef

	// ReturnEnds is the inverse of the END rule's effect within this
	// set: keyed by the exact (return node id, call tag) item produced,
	// it holds the (End id, origin tag) pairs that justified it. Keying
	// by the full item — not just the return node id — keeps two
	// derivations that happen to produce the same return node under
	// different outer call tags from being conflated. Used when walking
	// backwards to reconstruct a tree or a forest.
	ReturnEnds map[Item][]EndRef
}

func newSigmaSet(idx uint64) *SigmaSet {
	return &SigmaSet{
		Index:      idx,
		Items:      iteratable.NewSet(16),
		EndCallers: make(map[int][]CallerRef),
		EndExits:   make(map[int][]ExitRef),
		ReturnEnds: make(map[Item][]EndRef),
	}
}

// Result is the full sequence of Sigma sets produced by Recognize,
// together with the input tokens actually consumed. It is the shared
// input for the tree/forest reconstruction algorithms; the online
// forest builder instead builds its own Sigma sets as it goes (see
// package sppf).
type Result struct {
	GFG    *flow.GFG
	Sets   []*SigmaSet // Σ₀ … Σₙ
	Tokens []gfg.Token // len n; Tokens[k] was consumed between Σₖ and Σₖ₊₁
}

// Accept reports whether (S•, 0) ∈ Σₙ, the GFG acceptance test.
func (r *Result) Accept() bool {
	last := r.Sets[len(r.Sets)-1]
	return last.Items.Contains(Item{Node: r.GFG.EndNode(), Tag: 0})
}

// AcceptedPrefix returns the length of the longest prefix for which the
// corresponding Σ set is non-empty, used to populate gfg.Reject.Prefix
// on rejection.
func (r *Result) AcceptedPrefix() uint64 {
	n := uint64(0)
	for _, s := range r.Sets {
		if !s.Items.Empty() {
			n = s.Index
		}
	}
	return n
}

// Recognize runs the Sigma-set algorithm over gf, consuming tokens from
// lex until EOF. It returns the full Result (needed by the post-pass
// extractors) and whether the input was accepted.
//
// In strict-scanner mode (scanner.Strict() == true), an input kind that
// matches no scan edge anywhere in the grammar yields a *gfg.TokenError
// instead of silently producing an empty scan transition.
func Recognize(gf *flow.GFG, lex scanner.Tokenizer) (*Result, bool, error) {
	res := &Result{GFG: gf}
	s0 := newSigmaSet(0)
	s0.Items.Add(Item{Node: gf.StartNode(), Tag: 0})
	res.Sets = append(res.Sets, s0)
	closeSet(gf, res.Sets, 0)

	known := knownScanKinds(gf)
	tok := lex.NextToken()
	for tok.TokType() != scanner.EOF {
		if lex.Strict() && !known[tok.TokType()] {
			return res, false, &gfg.TokenError{Kind: tok.TokType()}
		}
		next := scan(gf, res.Sets[len(res.Sets)-1], tok)
		idx := uint64(len(res.Sets))
		s := newSigmaSet(idx)
		s.Items = next
		res.Sets = append(res.Sets, s)
		res.Tokens = append(res.Tokens, tok)
		closeSet(gf, res.Sets, idx)
		tok = lex.NextToken()
	}
	tracer().Debugf("recognizer consumed %d token(s)", len(res.Tokens))
	return res, res.Accept(), nil
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

// scan is the scan transition between Σₖ and Σₖ₊₁: for every (n, t) ∈ Σₖ
// with n.IsScan and a scan edge labelled tokens[k].kind, add (target, t)
// to Σₖ₊₁.
func scan(gf *flow.GFG, cur *SigmaSet, tok gfg.Token) *iteratable.Set {
	next := iteratable.NewSet(16)
	cur.Items.Each(func(e interface{}) {
		it := e.(Item)
		n := gf.Node(it.Node)
		if !n.IsScan || n.ScanLabel.TokType != tok.TokType() {
			return
		}
		for dst, lbl := range n.Out {
			if lbl != nil && lbl.TokType == tok.TokType() {
				next.Add(Item{Node: dst, Tag: it.Tag})
			}
		}
	})
	return next
}

// closeSet runs the ε-closure worklist fixed point for Σₖ: the START,
// EXIT, CALL and END inference rules, applied until no more items can
// be added. The iteratable.Set driving the loop picks up
// items added mid-iteration, which is what makes this a proper
// fixed-point computation rather than a single pass.
func closeSet(gf *flow.GFG, sets []*SigmaSet, k uint64) {
	cur := sets[k]
	cur.Items.IterateOnce()
	for cur.Items.Next() {
		it := cur.Items.Item().(Item)
		n := gf.Node(it.Node)
		switch {
		case n.Kind == flow.End:
			closeEnd(gf, sets, cur, n, it)
		case n.Kind == flow.Item && n.IsCall:
			closeCall(gf, cur, n, it, k)
		default: // Start node, or an ordinary/Exit item: plain ε-propagation
			closeEpsilon(gf, cur, n, it)
		}
	}
}

// closeEnd implements the END inference rule: (B•, t) together with a
// caller (c, t') recorded for B's End node in Σ_t yields (returnOf(c), t').
func closeEnd(gf *flow.GFG, sets []*SigmaSet, cur *SigmaSet, n *flow.Node, it Item) {
	origin := sets[it.Tag]
	for _, c := range origin.EndCallers[n.ID] {
		retID := gf.CallToReturn[c.CallID]
		retItem := Item{Node: retID, Tag: c.CallTag}
		cur.Items.Add(retItem)
		cur.ReturnEnds[retItem] = append(cur.ReturnEnds[retItem], EndRef{EndID: n.ID, Tag: it.Tag})
		tracer().Debugf("END %s -> %s", fingerprint(it), fingerprint(retItem))
	}
}

// closeCall implements the CALL inference rule: (A→α•Bβ, t) seeds
// (•B, k) and records end(B) ← (callId, t) for the END rule to find
// later, keyed in Σₖ (this set, the call's origin).
func closeCall(gf *flow.GFG, cur *SigmaSet, n *flow.Node, it Item, k uint64) {
	calleeStart := calleeOf(n)
	callee := Item{Node: calleeStart, Tag: k}
	cur.Items.Add(callee)
	endID := gf.StartToEnd[calleeStart]
	cur.EndCallers[endID] = append(cur.EndCallers[endID], CallerRef{CallID: it.Node, CallTag: it.Tag})
	tracer().Debugf("CALL %s -> %s", fingerprint(it), fingerprint(callee))
}

// closeEpsilon propagates n's ε-out-edges with the same tag, recording
// EndExits when the target is an End node reached from an Exit item.
func closeEpsilon(gf *flow.GFG, cur *SigmaSet, n *flow.Node, it Item) {
	for dst, lbl := range n.Out {
		if lbl != nil {
			continue
		}
		cur.Items.Add(Item{Node: dst, Tag: it.Tag})
		if n.Kind == flow.Item && n.IsExit && gf.Node(dst).Kind == flow.End {
			cur.EndExits[dst] = append(cur.EndExits[dst], ExitRef{ExitID: n.ID, Tag: it.Tag})
		}
	}
}

// fingerprint gives an Item a short, content-addressed debug label by
// hashing the (item, state) pair with structhash, for trace output.
func fingerprint(it Item) string {
	h, err := structhash.Hash(struct {
		Node int
		Tag  uint64
	}{Node: it.Node, Tag: it.Tag}, 1)
	if err != nil { // structhash only fails on unhashable types; Item isn't one
		panic(err)
	}
	return h
}

// calleeOf returns the node id a call item's single ε-out-edge targets.
func calleeOf(n *flow.Node) int {
	for dst, lbl := range n.Out {
		if lbl == nil {
			return dst
		}
	}
	panic("sigma: call item has no ε-edge to a callee start — GFG is malformed")
}
