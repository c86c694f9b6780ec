package lexmach

import (
	"testing"

	"github.com/kayvan61/gfg"
	"github.com/kayvan61/gfg/scanner"
	"github.com/timtadh/lexmachine"
)

// Token kinds for a tiny arithmetic lexer: numbers, "+", "(", ")".
const (
	tokNumber = gfg.TokType(iota + 1)
	tokPlus
	tokLParen
	tokRParen
)

var exprLiterals = []string{"+", "(", ")"}

var exprTokenTypes = map[string]gfg.TokType{
	"+": tokPlus,
	"(": tokLParen,
	")": tokRParen,
}

func newExprAdapter(t *testing.T) *Adapter {
	t.Helper()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
		lexer.Add([]byte(`[0-9]+`), makeAction("number", tokNumber))
	}
	a, err := NewAdapter(init, exprLiterals, nil, exprTokenTypes)
	if err != nil {
		t.Fatalf("NewAdapter failed: %v", err)
	}
	return a
}

// TestNewAdapterScansExpression checks that an expression string
// "1 + (2 + 3)" tokenizes to the expected kind sequence, with the
// number token carrying the expected gfg.TokType.
func TestNewAdapterScansExpression(t *testing.T) {
	a := newExprAdapter(t)
	sc, err := a.Scanner("1 + (2 + 3)")
	if err != nil {
		t.Fatalf("Scanner failed: %v", err)
	}

	want := []gfg.TokType{tokNumber, tokPlus, tokLParen, tokNumber, tokPlus, tokNumber, tokRParen}
	var got []gfg.TokType
	for {
		tok := sc.NextToken()
		if tok.TokType() == scanner.EOF {
			break
		}
		got = append(got, tok.TokType())
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected kind %d, got %d", i, want[i], got[i])
		}
	}
}

// TestNextTokenReportsLexeme checks that a scanned number token carries
// its source text through Lexeme.
func TestNextTokenReportsLexeme(t *testing.T) {
	a := newExprAdapter(t)
	sc, err := a.Scanner("42")
	if err != nil {
		t.Fatalf("Scanner failed: %v", err)
	}
	tok := sc.NextToken()
	if tok.TokType() != tokNumber {
		t.Fatalf("expected a number token, got kind %d", tok.TokType())
	}
	if tok.Lexeme() != "42" {
		t.Fatalf("expected lexeme %q, got %q", "42", tok.Lexeme())
	}
	if eof := sc.NextToken(); eof.TokType() != scanner.EOF {
		t.Fatalf("expected EOF after the single token, got kind %d", eof.TokType())
	}
}

// TestScannerStrictDefaultsFalse checks the zero-value Strict behavior
// NewAdapter's Scanner produces, matching scanner.Tokenizer's looser
// default for ad hoc adapters.
func TestScannerStrictDefaultsFalse(t *testing.T) {
	a := newExprAdapter(t)
	sc, err := a.Scanner("7")
	if err != nil {
		t.Fatalf("Scanner failed: %v", err)
	}
	if sc.Strict() {
		t.Fatal("expected a freshly built Scanner to be non-strict by default")
	}
}
