package tree

// tried is a small persistent set of End node ids, used to stop the
// ambiguity resolver from re-selecting an ancestor production for the
// very same span it is already trying to complete: a cycle guard keyed
// by GFG End node id.
type tried map[int]bool

func (t tried) add(end int) tried {
	n := make(tried, len(t)+1)
	for k := range t {
		n[k] = true
	}
	n[end] = true
	return n
}

func (t tried) contains(end int) bool {
	return t[end]
}

// resetIfMoved: the guard only needs to stay active while pos hasn't
// moved past end yet (still the same boundary a repeated derivation
// could loop on); once pos has advanced past it, start a fresh guard
// for the new span.
func resetIfMoved(pos, end uint64, t tried) tried {
	if pos == end {
		return t
	}
	return tried{}
}
