package gfg

import "fmt"

// TokType is a category type for a token. Applications define their own
// constants; the zero value is reserved for epsilon.
type TokType int

// Epsilon denotes the empty symbol. It never appears in a token stream,
// only as a grammar alternative of length zero.
const Epsilon TokType = 0

// Token is produced by an external lexer and consumed by the scan
// transition of the Sigma-set engine. Lexing itself is out of scope for
// this module (see package gfg/scanner for a couple of off-the-shelf
// implementations).
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}

// Span captures a half-open range [From, To) of input positions. Every
// terminal and non-terminal tracked by the parse tree/forest carries a
// Span denoting the slice of the input it covers.
type Span [2]uint64

// From returns the start of the span.
func (s Span) From() uint64 { return s[0] }

// To returns the position just behind the end of the span.
func (s Span) To() uint64 { return s[1] }

// Len returns the length of the span.
func (s Span) Len() uint64 { return s[1] - s[0] }

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Errors and the reject sentinel ----------------------------------------

// GrammarError is raised by the GFG builder when a grammar is
// malformed. It is always surfaced immediately, never swallowed.
type GrammarError struct {
	Kind   GrammarErrorKind
	Symbol string
}

// GrammarErrorKind classifies a GrammarError.
type GrammarErrorKind int

const (
	// UnknownSymbol marks a right-hand-side symbol that is neither a
	// terminal nor the name of a known non-terminal.
	UnknownSymbol GrammarErrorKind = iota
	// MissingStart marks a start symbol that was never defined.
	MissingStart
)

func (e *GrammarError) Error() string {
	switch e.Kind {
	case MissingStart:
		return fmt.Sprintf("gfg: start symbol %q has no productions", e.Symbol)
	default:
		return fmt.Sprintf("gfg: unknown symbol %q on a right-hand side", e.Symbol)
	}
}

// TokenError is raised lazily by the scan transition when strict-lexer
// mode is enabled and an input token's kind matches none of the scan
// edges in the grammar. By default an unrecognised kind is simply
// treated as non-matching, which drives the parse towards rejection
// without raising an error.
type TokenError struct {
	Kind TokType
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("gfg: unrecognised token kind %d", e.Kind)
}

// Reject is the typed negative result returned by Recognize and the
// parse_* family instead of a boolean false or a nil value, so that
// callers cannot mistake "rejected" for "not yet tried" or an error.
// It is not an error in the Go sense — a rejected parse is a normal,
// expected outcome — and is therefore never wrapped in an `error`.
type Reject struct {
	// Prefix is the length of the longest input prefix for which at
	// least one Sigma-set item survived. Useful for diagnostics; it is
	// not a claim about where exactly the grammar expected something
	// else, since the core does no error recovery.
	Prefix uint64
}

func (r Reject) String() string {
	return fmt.Sprintf("rejected after matching %d token(s)", r.Prefix)
}
