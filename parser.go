package gfg

import (
	"github.com/kayvan61/gfg/flow"
	"github.com/kayvan61/gfg/scanner"
	"github.com/kayvan61/gfg/sigma"
	"github.com/kayvan61/gfg/sppf"
	"github.com/kayvan61/gfg/tree"
)

// BuildGFG compiles a grammar into a Grammar Flow Graph rooted at start.
// Thin re-export of flow.Build so that a caller touching only this
// package's top-level entry points never has to import gfg/flow
// directly.
func BuildGFG(grammar *flow.Grammar, start string) (*flow.GFG, error) {
	return flow.Build(grammar, start)
}

// Recognize runs the Sigma-set engine over lex and reports whether the
// token stream is a sentence of gf's language. On rejection the
// returned Reject carries the longest matched prefix length.
func Recognize(gf *flow.GFG, lex scanner.Tokenizer) (bool, Reject, error) {
	res, ok, err := sigma.Recognize(gf, lex)
	if err != nil || ok {
		return ok, Reject{}, err
	}
	return false, Reject{Prefix: res.AcceptedPrefix()}, nil
}

// ParseOne recognizes lex against gf and, on acceptance, extracts a
// single concrete parse tree with tree.ExtractOne. Where a completed
// sub-production is ambiguous, the extractor prefers a completion not
// already being expanded for the same span, then the one with the
// leftmost origin, then the lowest-numbered Exit item.
func ParseOne(gf *flow.GFG, lex scanner.Tokenizer) (*tree.Node, Reject, error) {
	res, ok, err := sigma.Recognize(gf, lex)
	if err != nil {
		return nil, Reject{}, err
	}
	if !ok {
		return nil, Reject{Prefix: res.AcceptedPrefix()}, nil
	}
	return tree.ExtractOne(gf, res), Reject{}, nil
}

// ParseForest recognizes lex against gf and, on acceptance, builds the
// full Shared Packed Parse Forest top-down, as a separate pass once
// recognition has completed.
func ParseForest(gf *flow.GFG, lex scanner.Tokenizer) (*sppf.Forest, Reject, error) {
	res, ok, err := sigma.Recognize(gf, lex)
	if err != nil {
		return nil, Reject{}, err
	}
	if !ok {
		return nil, Reject{Prefix: res.AcceptedPrefix()}, nil
	}
	return sppf.BuildForest(gf, res), Reject{}, nil
}

// ParseForestOnline recognizes lex against gf and builds the forest
// bottom-up, interleaved with recognition, rather than as a separate
// backward pass. The two construction strategies produce isomorphic
// forests for the same input, so a caller may pick either of
// ParseForest/ParseForestOnline freely. On rejection the returned Reject
// is the zero value: unlike ParseOne and ParseForest, its Prefix is not
// filled in.
func ParseForestOnline(gf *flow.GFG, lex scanner.Tokenizer) (*sppf.Forest, Reject, error) {
	f, ok, err := sppf.BuildForestOnline(gf, lex)
	if err != nil {
		return nil, Reject{}, err
	}
	if !ok {
		return nil, Reject{}, nil
	}
	return f, Reject{}, nil
}
