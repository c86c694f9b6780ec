/*
Package tree implements the single-tree extractor: given an accepted
Recognize result, it reconstructs one concrete parse tree by walking
the Sigma sets backwards from the final accepting item.

Unlike a backward walk over dotted LR(0) items carrying an explicit RHS
slice, a node's predecessor within its alternative here is recovered
from the flow graph's own structural edges (a scan edge, or a callee's
End node linked to a return item) rather than indexing into a rule's
RHS.

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gfg.tree'.
func tracer() tracing.Trace {
	return tracing.Select("gfg.tree")
}
