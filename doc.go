/*
Package gfg implements a recognizer and parser built on top of a
Grammar Flow Graph (GFG).

Given an arbitrary context-free grammar and a token stream, the parser
decides whether the stream belongs to the grammar's language and, on
acceptance, can produce any of:

  - a single concrete parse tree (package gfg/tree),
  - a Shared Packed Parse Forest covering all derivations, built after
    recognition completes (package gfg/sppf, top-down builder), or
  - an equivalent forest built online, interleaved with recognition
    (package gfg/sppf, bottom-up builder).

The GFG itself — grammar model and flow graph construction — lives in
package gfg/flow. The Earley-style Sigma-set recognizer lives in
package gfg/sigma. This root package only holds the small vocabulary
shared by all of them: tokens, spans and the error/reject types
returned across package boundaries.

Architecturally this follows Elizabeth Scott's "SPPF-Style Parsing from
Earley Recognisers" (2008), lifted onto the Grammar Flow Graph
formulation described by Pingali & Bilardi.

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package gfg
