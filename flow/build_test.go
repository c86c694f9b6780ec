package flow

import (
	"bytes"
	"testing"

	"github.com/kayvan61/gfg"
)

// makeExprGrammar builds the grammar used throughout the parser test
// suite: S → E; E → number | E plus E | lparen E plus E rparen.
func makeExprGrammar(t *testing.T) *Grammar {
	t.Helper()
	b := NewGrammarBuilder("Expr")
	b.LHS("S").N("E").End()
	b.LHS("E").T("number", 1).End()
	b.LHS("E").N("E").T("plus", 2).N("E").End()
	b.LHS("E").T("lparen", 3).N("E").T("plus", 2).N("E").T("rparen", 4).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("unexpected grammar error: %v", err)
	}
	return g
}

func TestBuildAssignsStartAndEndFirst(t *testing.T) {
	g := makeExprGrammar(t)
	gf, err := Build(g, "S")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if gf.StartNode() != 0 {
		t.Fatalf("expected •S to be node 0, got %d", gf.StartNode())
	}
	if gf.EndNode() != 1 {
		t.Fatalf("expected S• to be node 1, got %d", gf.EndNode())
	}
}

func TestBuildRejectsUnknownSymbol(t *testing.T) {
	b := NewGrammarBuilder("Bad")
	b.LHS("S").N("Ghost").End()
	_, err := b.Grammar()
	var gerr *gfg.GrammarError
	if err == nil {
		t.Fatal("expected an error for an unknown non-terminal")
	}
	if !errorsAs(err, &gerr) || gerr.Kind != gfg.UnknownSymbol {
		t.Fatalf("expected UnknownSymbol, got %v", err)
	}
}

func TestBuildRejectsMissingStart(t *testing.T) {
	b := NewGrammarBuilder("Bad")
	b.LHS("A").T("a", 1).End()
	_, err := Build(b.g, "S")
	var gerr *gfg.GrammarError
	if err == nil {
		t.Fatal("expected an error for a missing start symbol")
	}
	if !errorsAs(err, &gerr) || gerr.Kind != gfg.MissingStart {
		t.Fatalf("expected MissingStart, got %v", err)
	}
}

func TestEpsilonAlternativeIsEntryAndExit(t *testing.T) {
	b := NewGrammarBuilder("Nullable")
	b.LHS("S").N("A").T("b", 1).End()
	b.LHS("A").T("b", 1).End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("unexpected grammar error: %v", err)
	}
	gf, err := Build(g, "S")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	aStart := gf.Nodes[gf.ProdToStart["A"]]
	var epsNode *Node
	for dst, lbl := range aStart.Out {
		if lbl == nil && gf.Nodes[dst].IsEntry && gf.Nodes[dst].IsExit {
			epsNode = gf.Nodes[dst]
		}
	}
	if epsNode == nil {
		t.Fatal("expected to find a node that is both entry and exit for the epsilon alternative")
	}
	if !aStart.TailNullable {
		t.Fatal("expected •A to be tail-nullable due to its epsilon alternative")
	}
}

func TestDumpDoesNotPanic(t *testing.T) {
	g := makeExprGrammar(t)
	gf, err := Build(g, "S")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	var buf bytes.Buffer
	gf.Dump(&buf)
	if buf.Len() == 0 {
		t.Fatal("expected non-empty dump output")
	}
}

// errorsAs is a tiny local helper so this file doesn't need to import
// "errors" solely for As with a *gfg.GrammarError target used by value
// in table-driven style across these tests.
func errorsAs(err error, target **gfg.GrammarError) bool {
	if ge, ok := err.(*gfg.GrammarError); ok {
		*target = ge
		return true
	}
	return false
}
