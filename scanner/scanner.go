/*
Package scanner defines the lexer contract consumed (not provided) by
the core: a Tokenizer that turns an input stream into (kind, lexeme)
pairs until end-of-input. Lexing itself is explicitly out of scope for
the Grammar Flow Graph core — this package only gives the core
something concrete to depend on, plus two ready-made
implementations: a thin wrapper over text/scanner (this file) and a
lexmachine-backed DFA lexer (subpackage lexmach).

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/kayvan61/gfg"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gfg.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gfg.scanner")
}

// EOF marks end of input. Its value matches text/scanner.EOF so that
// token kinds produced by DefaultTokenizer compare directly against it.
const EOF gfg.TokType = gfg.TokType(scanner.EOF)

// Tokenizer is the interface the Sigma-set engine's scan transition
// consumes. NextToken must return a token with TokType() == EOF exactly
// once, as the last token of a stream.
type Tokenizer interface {
	NextToken() gfg.Token
	SetErrorHandler(func(error))
	// Strict reports whether the tokenizer should raise a
	// *gfg.TokenError for a kind that matches no scan edge in the
	// grammar, rather than silently producing a non-matching token.
	// Off by default.
	Strict() bool
}

type simpleToken struct {
	kind gfg.TokType
	text string
	span gfg.Span
}

func (t simpleToken) TokType() gfg.TokType { return t.kind }
func (t simpleToken) Lexeme() string       { return t.text }
func (t simpleToken) Span() gfg.Span       { return t.span }

// DefaultTokenizer adapts Go's standard text/scanner to the Tokenizer
// interface.
type DefaultTokenizer struct {
	scanner.Scanner
	Error  func(error)
	strict bool
	pos    uint64
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Option configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// Strict enables strict-lexer mode: an input kind matching no scan edge
// raises a *gfg.TokenError instead of being treated as non-matching.
func Strict(b bool) Option {
	return func(t *DefaultTokenizer) { t.strict = b }
}

// GoTokenizer creates a tokenizer producing tokens similar to the Go
// language, using the standard library's text/scanner.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{Error: defaultErrorHandler}
	t.Init(input)
	t.Filename = sourceID
	for _, opt := range opts {
		opt(t)
	}
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(&scannerError{msg: msg})
	}
	return t
}

func defaultErrorHandler(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}

type scannerError struct{ msg string }

func (e *scannerError) Error() string { return e.msg }

// SetErrorHandler installs h as the error callback; a nil h restores
// the default (log-and-continue) handler.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = defaultErrorHandler
		return
	}
	t.Error = h
}

// Strict reports whether this tokenizer was configured with Strict(true).
func (t *DefaultTokenizer) Strict() bool { return t.strict }

// NextToken scans and returns the next token.
func (t *DefaultTokenizer) NextToken() gfg.Token {
	r := t.Scan()
	text := t.TokenText()
	from := t.pos
	t.pos += uint64(len([]rune(text)))
	if r == scanner.EOF {
		return simpleToken{kind: EOF, text: "", span: gfg.Span{from, from}}
	}
	return simpleToken{kind: gfg.TokType(r), text: text, span: gfg.Span{from, t.pos}}
}
