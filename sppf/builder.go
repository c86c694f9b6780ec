package sppf

import (
	"github.com/kayvan61/gfg/flow"
	"github.com/kayvan61/gfg/sigma"
)

// BuildForest constructs the full forest for an accepted Sigma-set
// result: a backward, memoized reconstruction rooted at the start
// symbol's completion over the whole input. res must be accepted; see
// sigma.Result.Accept.
func BuildForest(gf *flow.GFG, res *sigma.Result) *Forest {
	f := NewForest()
	n := uint64(len(res.Sets) - 1)
	f.Root = symbolNode(f, gf, res, gf.EndNode(), 0, n)
	return f
}

// symbolNode returns the forest node for "(A, t, k)", where A is the
// non-terminal owning End node endID. Each alternative of A that
// completes this exact span contributes one direct child; more than one
// child means A is ambiguous here.
func symbolNode(f *Forest, gf *flow.GFG, res *sigma.Result, endID int, t, k uint64) int {
	label := gf.Node(endID).Production
	id, fresh := f.getOrMake(Symbol, label, t, k)
	if !fresh {
		return id
	}
	node := f.Nodes[id]
	for _, ex := range res.Sets[k].EndExits[endID] {
		if ex.Tag != t {
			continue
		}
		node.Children = append(node.Children, itemNode(f, gf, res, ex.ExitID, t, k))
	}
	return id
}

// itemNode returns the forest node for the dotted item itemID, having
// derived [t, k) so far within its alternative. It case-splits on
// whether the item is a nullable alternative, a return item completing
// a callee, or an ordinary scan-reached item, packing a prefix
// derivation together with the newly added child whenever a real prefix
// precedes it.
func itemNode(f *Forest, gf *flow.GFG, res *sigma.Result, itemID int, t, k uint64) int {
	n := gf.Node(itemID)
	if n.IsEntry && n.IsExit {
		// Nullable alternative: a single ε-leaf child.
		id, fresh := f.getOrMake(Intermediate, n.Name, t, k)
		if fresh {
			eps, _ := f.getOrMake(Terminal, "ε", t, t)
			f.Nodes[id].Children = []int{eps}
		}
		return id
	}

	id, fresh := f.getOrMake(Intermediate, n.Name, t, k)
	if !fresh {
		return id
	}
	node := f.Nodes[id]

	if n.IsReturn {
		callID := gf.ReturnToCall[itemID]
		firstPastStart := gf.Node(callID).IsEntry
		for _, c := range res.Sets[k].ReturnEnds[sigma.Item{Node: itemID, Tag: t}] {
			bNode := symbolNode(f, gf, res, c.EndID, c.Tag, k)
			if firstPastStart {
				// Nothing precedes B: attach it directly.
				node.Children = append(node.Children, bNode)
				continue
			}
			// Otherwise pack the prefix derivation with B's completion.
			prefix := itemNode(f, gf, res, callID, t, c.Tag)
			node.Children = append(node.Children, f.getOrMakePacked(id, prefix, bNode))
		}
		return id
	}

	pred, sym := scanPredecessor(n)
	if sym == nil {
		return stuck(n.ID, "item is neither entry, return, nor scan-reached; GFG is malformed")
	}
	term, freshTerm := f.getOrMake(Terminal, sym.Name, k-1, k)
	if freshTerm {
		f.Nodes[term].Token = res.Tokens[k-1]
	}
	predNode := gf.Node(pred)
	if predNode.IsEntry && !predNode.IsExit {
		// Degenerate case: a is the first symbol, no real prefix.
		node.Children = append(node.Children, term)
	} else {
		prefix := itemNode(f, gf, res, pred, t, k-1)
		node.Children = append(node.Children, f.getOrMakePacked(id, prefix, term))
	}
	return id
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

func stuck(itemID int, msg string) int {
	tracer().Errorf("item %d: %s", itemID, msg)
	panic("sppf: " + msg)
}
