package gfg_test

import (
	"strings"
	"testing"
	txtscanner "text/scanner"

	"github.com/kayvan61/gfg"
	"github.com/kayvan61/gfg/flow"
	gfgscanner "github.com/kayvan61/gfg/scanner"
	"github.com/stretchr/testify/require"
)

func exprGrammar(t *testing.T) *flow.GFG {
	t.Helper()
	b := flow.NewGrammarBuilder("Expr")
	b.LHS("S").N("E").End()
	b.LHS("E").T("number", gfg.TokType(txtscanner.Int)).End()
	b.LHS("E").N("E").T("+", gfg.TokType('+')).N("E").End()
	b.LHS("E").T("(", gfg.TokType('(')).N("E").T("+", gfg.TokType('+')).N("E").T(")", gfg.TokType(')')).End()
	g, err := b.Grammar()
	require.NoError(t, err)
	gf, err := gfg.BuildGFG(g, "S")
	require.NoError(t, err)
	return gf
}

func TestRecognizeAcceptsExpression(t *testing.T) {
	gf := exprGrammar(t)
	lex := gfgscanner.GoTokenizer("t", strings.NewReader("1 + (2 + 3)"))
	ok, rej, err := gfg.Recognize(gf, lex)
	require.NoError(t, err)
	require.True(t, ok, "expected acceptance, got %v", rej)
}

func TestRecognizeRejectsMalformedExpression(t *testing.T) {
	gf := exprGrammar(t)
	lex := gfgscanner.GoTokenizer("t", strings.NewReader("1 +"))
	ok, rej, err := gfg.Recognize(gf, lex)
	require.NoError(t, err)
	require.False(t, ok, "expected rejection for a dangling '+'")
	require.NotZero(t, rej.Prefix, "expected a non-trivial matched prefix")
}

func TestParseOneProducesTreeSpanningInput(t *testing.T) {
	gf := exprGrammar(t)
	lex := gfgscanner.GoTokenizer("t", strings.NewReader("1 + 2 + 3"))
	tr, rej, err := gfg.ParseOne(gf, lex)
	require.NoError(t, err)
	require.NotNil(t, tr, "expected a tree, got reject: %v", rej)
	require.Equal(t, uint64(5), tr.Span.Len(), "expected the root to span all 5 tokens")
}

func TestParseForestAndParseForestOnlineAgree(t *testing.T) {
	gf := exprGrammar(t)

	f1, rej1, err := gfg.ParseForest(gf, gfgscanner.GoTokenizer("t", strings.NewReader("1 + 2 + 3")))
	require.NoError(t, err)
	require.NotNil(t, f1, "ParseForest rejected: %v", rej1)

	f2, rej2, err := gfg.ParseForestOnline(gf, gfgscanner.GoTokenizer("t", strings.NewReader("1 + 2 + 3")))
	require.NoError(t, err)
	require.NotNil(t, f2, "ParseForestOnline rejected: %v", rej2)

	r1, r2 := f1.Node(f1.Root), f2.Node(f2.Root)
	require.Equal(t, r1.Label, r2.Label)
	require.Equal(t, r1.Start, r2.Start)
	require.Equal(t, r1.End, r2.End)
}
