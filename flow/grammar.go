package flow

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/kayvan61/gfg"
)

// Symbol is a grammar symbol: either a terminal, identified by a token
// kind shared with the lexer, or a non-terminal, identified by name.
type Symbol struct {
	Name     string
	TokType  gfg.TokType
	terminal bool
}

// IsTerminal reports whether sym is a terminal symbol.
func (sym *Symbol) IsTerminal() bool { return sym != nil && sym.terminal }

// IsNonterminal reports whether sym is a non-terminal symbol.
func (sym *Symbol) IsNonterminal() bool { return sym != nil && !sym.terminal }

func (sym *Symbol) String() string {
	if sym == nil {
		return "ε"
	}
	return sym.Name
}

// Alternative is a single ordered right-hand side of a production.
type Alternative []*Symbol

// IsEpsilon reports whether this alternative is the empty sequence.
func (alt Alternative) IsEpsilon() bool { return len(alt) == 0 }

// Grammar holds productions keyed by non-terminal name: for each key, an
// ordered list of alternatives. Every symbol occurring on a right-hand
// side must either be a terminal or a key of this map — that invariant
// is enforced once, when the builder finalizes the grammar.
type Grammar struct {
	Name  string
	Start string
	prods map[string][]Alternative
	order *arraylist.List // of string; non-terminals in first-added order, for deterministic Dump/Build
}

// Alternatives returns the ordered list of right-hand sides for a
// non-terminal, or nil if it has none.
func (g *Grammar) Alternatives(nonterminal string) []Alternative {
	return g.prods[nonterminal]
}

// NonTerminals returns the grammar's non-terminals in the order they
// were first introduced by the builder.
func (g *Grammar) NonTerminals() []string {
	names := make([]string, g.order.Size())
	for i, v := range g.order.Values() {
		names[i] = v.(string)
	}
	return names
}

// IsTerminal reports whether name denotes a terminal of this grammar,
// i.e. it is not the name of any non-terminal.
func (g *Grammar) IsTerminal(name string) bool {
	_, ok := g.prods[name]
	return !ok
}

// IsNonterminal reports whether name is a key of the grammar.
func (g *Grammar) IsNonterminal(name string) bool {
	_, ok := g.prods[name]
	return ok
}

// add registers a single alternative for nonterminal. Used by the
// builder; Grammar itself is otherwise read-only once built.
func (g *Grammar) add(nonterminal string, alt Alternative) {
	if _, ok := g.prods[nonterminal]; !ok {
		g.order.Add(nonterminal)
	}
	g.prods[nonterminal] = append(g.prods[nonterminal], alt)
}

// --- Builder ----------------------------------------------------------

// GrammarBuilder accumulates alternatives before producing an immutable
// Grammar. A fluent, chained builder API.
type GrammarBuilder struct {
	g        *Grammar
	termVals map[string]gfg.TokType // terminal name -> token kind, for consistency checks
	errs     []error
	cur      string      // current LHS, set by LHS()
	rhs      Alternative // RHS under construction
}

// NewGrammarBuilder creates a builder for a grammar named name (used
// only for diagnostics/Dump headers).
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		g: &Grammar{
			Name:  name,
			prods: make(map[string][]Alternative),
			order: arraylist.New(),
		},
		termVals: make(map[string]gfg.TokType),
	}
}

// LHS begins a new alternative for non-terminal name.
func (b *GrammarBuilder) LHS(name string) *GrammarBuilder {
	if b.rhs != nil {
		b.errs = append(b.errs, fmt.Errorf("flow: LHS(%q) called before End() of previous alternative", name))
	}
	b.cur = name
	b.rhs = Alternative{}
	if b.g.Start == "" {
		b.g.Start = name
	}
	return b
}

// N appends a non-terminal reference to the alternative under construction.
func (b *GrammarBuilder) N(name string) *GrammarBuilder {
	b.rhs = append(b.rhs, &Symbol{Name: name, terminal: false})
	return b
}

// T appends a terminal reference, identified by name and by the token
// kind a lexer will report for it.
func (b *GrammarBuilder) T(name string, tokType gfg.TokType) *GrammarBuilder {
	if prev, ok := b.termVals[name]; ok && prev != tokType {
		b.errs = append(b.errs, fmt.Errorf("flow: terminal %q already bound to token kind %d, got %d", name, prev, tokType))
	}
	b.termVals[name] = tokType
	b.rhs = append(b.rhs, &Symbol{Name: name, TokType: tokType, terminal: true})
	return b
}

// Epsilon declares the current alternative as the empty sequence and
// closes it, equivalent to End() on a bare LHS() with no symbols added.
func (b *GrammarBuilder) Epsilon() *GrammarBuilder {
	return b.End()
}

// End closes the current alternative, adding it to the grammar.
func (b *GrammarBuilder) End() *GrammarBuilder {
	if b.cur == "" {
		b.errs = append(b.errs, fmt.Errorf("flow: End() called without a preceding LHS()"))
		return b
	}
	b.g.add(b.cur, b.rhs)
	b.cur = ""
	b.rhs = nil
	return b
}

// Grammar finalizes the builder: it validates that every right-hand-side
// symbol is either a registered terminal or the name of a non-terminal
// with at least one alternative, and that a start symbol was set.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if b.g.Start == "" {
		return nil, &gfg.GrammarError{Kind: gfg.MissingStart}
	}
	if _, ok := b.g.prods[b.g.Start]; !ok {
		return nil, &gfg.GrammarError{Kind: gfg.MissingStart, Symbol: b.g.Start}
	}
	for _, v := range b.g.order.Values() {
		nt := v.(string)
		for _, alt := range b.g.prods[nt] {
			for _, sym := range alt {
				if sym.IsNonterminal() {
					if _, ok := b.g.prods[sym.Name]; !ok {
						return nil, &gfg.GrammarError{Kind: gfg.UnknownSymbol, Symbol: sym.Name}
					}
				}
			}
		}
	}
	return b.g, nil
}
