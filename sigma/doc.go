/*
Package sigma implements the Sigma-set recognizer: an Earley-style
worklist algorithm operating over a Grammar Flow Graph instead of
classical dotted items.

Given a GFG and a token stream, Recognize builds Σ₀…Σₙ (n = number of
input tokens), applying the ε-closure inference rules (START, EXIT,
CALL, END) within each Σₖ to a fixed point, interleaved with a scan
transition between Σₖ and Σₖ₊₁. This follows Pingali & Bilardi's
worklist construction over the Grammar Flow Graph, operating on GFG
node ids rather than classical dotted LR(0) items.

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package sigma

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gfg.sigma'.
func tracer() tracing.Trace {
	return tracing.Select("gfg.sigma")
}
