/*
Package lexmach adapts github.com/timtadh/lexmachine's DFA-based lexer
to the gfg/scanner.Tokenizer interface.

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package lexmach

import (
	"strings"

	"github.com/kayvan61/gfg"
	"github.com/kayvan61/gfg/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'gfg.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gfg.scanner")
}

// Adapter wraps a compiled lexmachine.Lexer.
type Adapter struct {
	Lexer *lexmachine.Lexer
}

// NewAdapter builds and compiles a lexmachine DFA from a caller-supplied
// init function (adding regex rules), a list of literal tokens
// ('(', ';', …), a list of keywords, and a map from token name to the
// gfg.TokType that should be reported for it.
func NewAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenTypes map[string]gfg.TokType) (*Adapter, error) {
	a := &Adapter{Lexer: lexmachine.NewLexer()}
	init(a.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		a.Lexer.Add([]byte(r), makeAction(lit, tokenTypes[lit]))
	}
	for _, name := range keywords {
		a.Lexer.Add([]byte(strings.ToLower(name)), makeAction(name, tokenTypes[name]))
	}
	if err := a.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return a, nil
}

// Scanner creates a Tokenizer over input.
func (a *Adapter) Scanner(input string) (*Scanner, error) {
	s, err := a.Lexer.Scanner([]byte(input))
	if err != nil {
		return &Scanner{}, err
	}
	return &Scanner{scanner: s, errh: logError}, nil
}

// Scanner is a lexmachine-backed Tokenizer.
type Scanner struct {
	scanner *lexmachine.Scanner
	errh    func(error)
	strict  bool
}

var _ scanner.Tokenizer = (*Scanner)(nil)

// SetErrorHandler installs h, or restores the default log-and-continue
// handler if h is nil.
func (s *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		s.errh = logError
		return
	}
	s.errh = h
}

// Strict reports whether this scanner should raise *gfg.TokenError for
// unrecognised kinds instead of silently rejecting.
func (s *Scanner) Strict() bool { return s.strict }

func logError(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}

type token struct {
	kind gfg.TokType
	text string
	span gfg.Span
}

func (t token) TokType() gfg.TokType { return t.kind }
func (t token) Lexeme() string       { return t.text }
func (t token) Span() gfg.Span       { return t.span }

// NextToken is part of the Tokenizer interface.
func (s *Scanner) NextToken() gfg.Token {
	tok, err, eof := s.scanner.Next()
	for err != nil {
		s.errh(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			s.scanner.TC = ui.FailTC
		}
		tok, err, eof = s.scanner.Next()
	}
	if eof {
		return token{kind: scanner.EOF}
	}
	lmtok := tok.(*lexmachine.Token)
	return token{
		kind: gfg.TokType(lmtok.Type),
		text: string(lmtok.Lexeme),
		span: gfg.Span{uint64(lmtok.StartColumn), uint64(lmtok.EndColumn)},
	}
}

// Skip is a pre-defined lexmachine action that discards the match
// (for whitespace and comments).
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeAction(name string, tt gfg.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(tt), string(m.Bytes), m), nil
	}
}
