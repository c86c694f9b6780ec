/*
Package sppf implements a Shared Packed Parse Forest and two ways of
building one over a Grammar Flow Graph recognition:

  - a top-down builder, constructing the forest after recognition
    completes by walking the Sigma sets backwards from the accepting
    item, memoizing by (label, start, end) so shared sub-derivations are
    allocated once;
  - a bottom-up, online builder, interleaved with recognition itself,
    carrying a forest-node reference alongside each Sigma-set item and
    short-circuiting ε-cycles via a per-step "seen completed here" map.

This follows Elizabeth Scott's "SPPF-Style Parsing from Earley
Recognisers" (2008) lifted onto the Grammar Flow Graph: built against
GFG item chains and Sigma sets instead of classical dotted LR(0) items
and Earley state sets. The (parent, left, right) shape of a Packed node
is Scott's family/add_family construction, named directly in her paper.

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package sppf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gfg.sppf'.
func tracer() tracing.Trace {
	return tracing.Select("gfg.sppf")
}
