/*
Package flow implements the grammar model and the Grammar Flow Graph
builder.

Building a grammar

Grammars are specified using a fluent grammar builder object. Clients
add alternatives built from non-terminal and terminal symbols:

    b := flow.NewGrammarBuilder("Expr")
    b.LHS("S").N("E").End()
    b.LHS("E").T("number", 1).End()
    b.LHS("E").N("E").T("plus", 2).N("E").End()
    g, err := b.Grammar()

Building the flow graph

Once a grammar is complete, Build compiles it into a Grammar Flow
Graph: a dense node table plus the linkage maps between a
non-terminal's start/end nodes and its call/return items. The
algorithm follows "Parsing as path-finding in graphs" (Pingali &
Bilardi): allocate •S=0 and S•=1 first, then a Start/End pair per
remaining non-terminal, then one item node per dot position in every
alternative, wiring ε-edges for start/call/return/exit transitions and
scan-edges for terminals.

    gfg, err := flow.Build(g, "S")

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package flow

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gfg.flow'.
func tracer() tracing.Trace {
	return tracing.Select("gfg.flow")
}

// T traces to the global syntax tracer, for call sites that don't want
// to re-select the tracer on every call.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}
