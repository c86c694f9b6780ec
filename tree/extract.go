package tree

import (
	"fmt"
	"slices"

	"github.com/kayvan61/gfg"
	"github.com/kayvan61/gfg/flow"
	"github.com/kayvan61/gfg/sigma"
	"github.com/npillmayer/schuko/gconf"
)

// Node is one node of an extracted parse tree: either a terminal leaf
// (Terminal true, Token set) or the reduction of one grammar
// alternative (Terminal false, Children holding one entry per RHS
// symbol of the alternative actually chosen).
type Node struct {
	Production string // non-terminal name, or terminal name for a leaf
	Terminal   bool
	Token      gfg.Token // valid iff Terminal
	Span       gfg.Span
	Children   []*Node
}

// ExtractOne reconstructs a single parse tree from an accepted
// Sigma-set result. The caller must have already checked res.Accept();
// calling ExtractOne on a rejected result is undefined (there is no
// accepting item to start the walk from).
func ExtractOne(gf *flow.GFG, res *sigma.Result) *Node {
	n := uint64(len(res.Sets) - 1)
	endS := gf.EndNode()
	for _, ex := range res.Sets[n].EndExits[endS] {
		if ex.Tag == 0 {
			return walkAlt(gf, res, ex.ExitID, 0, n, tried{}, 0)
		}
	}
	return stuck(fmt.Sprintf("no derivation of the start symbol reaches End node %d at Σ%d despite acceptance", endS, n))
}

// walkAlt reconstructs the Node for the alternative exitID belongs to,
// given that this alternative's derivation started at Σtag and ends at
// Σpos. It walks the alternative's item chain backwards from its Exit
// node to its Entry node, consuming one RHS symbol (terminal or
// completed non-terminal) per step.
func walkAlt(gf *flow.GFG, res *sigma.Result, exitID int, tag, pos uint64, trys tried, level int) *Node {
	prod := gf.Node(exitID).Production
	end := pos
	var children []*Node
	cur := exitID
	for {
		n := gf.Node(cur)
		if n.IsEntry {
			break
		}
		if n.IsReturn {
			child, newCur, newPos := walkReturn(gf, res, cur, tag, pos, end, trys, level)
			if child == nil {
				return stuck(fmt.Sprintf("no completed production satisfies return item %d at Σ%d", cur, pos))
			}
			children = append([]*Node{child}, children...)
			cur, pos = newCur, newPos
			continue
		}
		// Otherwise cur was reached via a scan edge: find the one
		// incoming edge carrying a terminal label.
		pred, sym := scanPredecessor(n)
		if sym == nil {
			return stuck(fmt.Sprintf("item %d is neither entry, return, nor scan-reached; GFG is malformed", cur))
		}
		if pos == 0 {
			return stuck(fmt.Sprintf("ran out of input tokens while matching terminal %q", sym.Name))
		}
		tok := res.Tokens[pos-1]
		children = append([]*Node{{
			Production: sym.Name,
			Terminal:   true,
			Token:      tok,
			Span:       gfg.Span{pos - 1, pos},
		}}, children...)
		pos--
		cur = pred
	}
	if pos != tag {
		return stuck(fmt.Sprintf("leftmost symbol of %q's alternative does not reach its origin Σ%d (stopped at Σ%d)", prod, tag, pos))
	}
	tracer().Debugf("reduced %q (%d…%d) with %d child(ren)", prod, tag, end, len(children))
	return &Node{Production: prod, Span: gfg.Span{tag, end}, Children: children}
}

// scanPredecessor returns the node that reached n via a labelled (scan)
// edge, and the label itself, or (0, nil) if n has none.
func scanPredecessor(n *flow.Node) (int, *flow.Symbol) {
	for src, lbl := range n.In {
		if lbl != nil {
			return src, lbl
		}
	}
	return 0, nil
}

// walkReturn resolves the non-terminal completion that reaches return
// item retID at (tag, pos): it picks one justifying (End, origin) pair,
// recurses into the child production, and reports where this walk's own
// chain continues (the matching call item, and the child's origin as
// the new pos). end is the alternative's own right boundary, used to
// decide whether the cycle guard still applies: only while pos hasn't
// yet moved off the rightmost edge.
func walkReturn(gf *flow.GFG, res *sigma.Result, retID int, tag, pos, end uint64, trys tried, level int) (*Node, int, uint64) {
	candidates := res.Sets[pos].ReturnEnds[sigma.Item{Node: retID, Tag: tag}]
	if len(candidates) == 0 {
		return nil, 0, 0
	}
	// Ambiguity resolution: prefer a completion whose End node was not
	// already chosen higher up for this same (pos, end) span (the cycle
	// guard), then the longest (leftmost-origin) completion. Sorted on a
	// copy so the underlying ReturnEnds slice (shared with other walks
	// of the same Sigma set) is never reordered in place.
	ranked := slices.Clone(candidates)
	slices.SortFunc(ranked, func(a, b sigma.EndRef) int {
		aLoops, bLoops := trys.contains(a.EndID), trys.contains(b.EndID)
		if aLoops != bLoops {
			if aLoops {
				return 1
			}
			return -1
		}
		if a.Tag != b.Tag {
			return int(a.Tag) - int(b.Tag)
		}
		return 0
	})
	chosen := ranked[0]
	exits := res.Sets[pos].EndExits[chosen.EndID]
	bestExit := -1
	for _, ex := range exits {
		if ex.Tag != chosen.Tag {
			continue
		}
		if bestExit == -1 || ex.ExitID < bestExit {
			bestExit = ex.ExitID
		}
	}
	if bestExit == -1 {
		return nil, 0, 0
	}
	passTrys := resetIfMoved(pos, end, trys)
	child := walkAlt(gf, res, bestExit, chosen.Tag, pos, passTrys.add(chosen.EndID), level+1)
	return child, gf.ReturnToCall[retID], chosen.Tag
}

func stuck(msg string) *Node {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`tree extractor is stuck.

Configuration flag panic-on-parser-stuck is set to true, aimed at
helping debug why a supposedly accepted input has no reconstructible
derivation. Unset it (the default) to get a nil tree back instead.

` + msg)
	}
	return nil
}
