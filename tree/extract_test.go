package tree

import (
	"testing"

	"github.com/kayvan61/gfg"
	"github.com/kayvan61/gfg/flow"
	"github.com/kayvan61/gfg/sigma"
	"github.com/stretchr/testify/require"
)

const (
	tokNumber = gfg.TokType(iota + 1)
	tokPlus
	tokLparen
	tokRparen
)

func exprGrammar(t *testing.T) *flow.GFG {
	t.Helper()
	b := flow.NewGrammarBuilder("Expr")
	b.LHS("S").N("E").End()
	b.LHS("E").T("number", tokNumber).End()
	b.LHS("E").N("E").T("plus", tokPlus).N("E").End()
	b.LHS("E").T("lparen", tokLparen).N("E").T("plus", tokPlus).N("E").T("rparen", tokRparen).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("unexpected grammar error: %v", err)
	}
	gf, err := flow.Build(g, "S")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return gf
}

type listToken struct {
	kind gfg.TokType
	text string
}

func (l listToken) TokType() gfg.TokType { return l.kind }
func (l listToken) Lexeme() string       { return l.text }
func (l listToken) Span() gfg.Span       { return gfg.Span{} }

type listTokenizer struct {
	toks []listToken
	pos  int
}

const listEOF = gfg.TokType(-1)

func (lt *listTokenizer) NextToken() gfg.Token {
	if lt.pos >= len(lt.toks) {
		return listToken{kind: listEOF}
	}
	tok := lt.toks[lt.pos]
	lt.pos++
	return tok
}
func (lt *listTokenizer) SetErrorHandler(func(error)) {}
func (lt *listTokenizer) Strict() bool                { return false }

func recognize(t *testing.T, gf *flow.GFG, toks []listToken) *sigma.Result {
	t.Helper()
	res, ok, err := sigma.Recognize(gf, &listTokenizer{toks: toks})
	require.NoError(t, err)
	require.True(t, ok, "expected acceptance, rejected after %d token(s)", res.AcceptedPrefix())
	return res
}

func countLeaves(n *Node) int {
	if n == nil {
		return 0
	}
	if n.Terminal {
		return 1
	}
	c := 0
	for _, ch := range n.Children {
		c += countLeaves(ch)
	}
	return c
}

func TestExtractOneSingleNumber(t *testing.T) {
	gf := exprGrammar(t)
	res := recognize(t, gf, []listToken{{kind: tokNumber, text: "42"}})
	tr := ExtractOne(gf, res)
	require.NotNil(t, tr, "expected a tree, got nil (stuck)")
	require.Equal(t, "S", tr.Production)
	require.Equal(t, gfg.Span{0, 1}, tr.Span)
	require.Equal(t, 1, countLeaves(tr))
}

func TestExtractOneNestedSums(t *testing.T) {
	gf := exprGrammar(t)
	toks := []listToken{
		{kind: tokNumber, text: "7"},
		{kind: tokPlus, text: "+"},
		{kind: tokNumber, text: "8"},
		{kind: tokPlus, text: "+"},
		{kind: tokNumber, text: "9"},
	}
	res := recognize(t, gf, toks)
	tr := ExtractOne(gf, res)
	require.NotNil(t, tr, "expected a tree, got nil (stuck)")
	require.Equal(t, gfg.Span{0, 5}, tr.Span)
	require.Equal(t, 5, countLeaves(tr), "expected 5 terminal leaves (three numbers, two pluses)")
}

func TestExtractOneParenthesized(t *testing.T) {
	gf := exprGrammar(t)
	toks := []listToken{
		{kind: tokLparen, text: "("},
		{kind: tokNumber, text: "7"},
		{kind: tokPlus, text: "+"},
		{kind: tokNumber, text: "9"},
		{kind: tokRparen, text: ")"},
	}
	res := recognize(t, gf, toks)
	tr := ExtractOne(gf, res)
	require.NotNil(t, tr, "expected a tree, got nil (stuck)")
	require.Equal(t, 5, countLeaves(tr))
}

// TestExtractOneAmbiguousPicksOneTree checks soundness against a
// genuinely ambiguous grammar (S → L; L → b | L L over "bbb"):
// ExtractOne must still return exactly one complete, internally
// consistent tree rather than getting stuck.
func TestExtractOneAmbiguousPicksOneTree(t *testing.T) {
	b := flow.NewGrammarBuilder("AmbiguousB")
	b.LHS("S").N("L").End()
	b.LHS("L").T("b", tokNumber).End()
	b.LHS("L").N("L").N("L").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	gf, err := flow.Build(g, "S")
	require.NoError(t, err)
	toks := []listToken{
		{kind: tokNumber, text: "b"},
		{kind: tokNumber, text: "b"},
		{kind: tokNumber, text: "b"},
	}
	res := recognize(t, gf, toks)
	tr := ExtractOne(gf, res)
	require.NotNil(t, tr, "expected a tree, got nil (stuck)")
	require.Equal(t, gfg.Span{0, 3}, tr.Span)
	require.Equal(t, 3, countLeaves(tr))
}
