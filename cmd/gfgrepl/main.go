/*
Command gfgrepl is a small interactive driver for package gfg: it reads
one line of input at a time, parses it against a built-in expression
grammar, and prints either a concrete parse tree or an SPPF. It exists
to exercise the library end to end during development, a sandbox
rather than a deliverable on its own.

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	txtscanner "text/scanner"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/kayvan61/gfg"
	"github.com/kayvan61/gfg/flow"
	gfgscanner "github.com/kayvan61/gfg/scanner"
	"github.com/kayvan61/gfg/tree"
	"github.com/npillmayer/schuko/tracing"
)

// makeExprGrammar builds a small arithmetic grammar:
//
//	S ➞ E
//	E ➞ number | E + E | ( E + E )
func makeExprGrammar() *flow.GFG {
	b := flow.NewGrammarBuilder("Expr")
	b.LHS("S").N("E").End()
	b.LHS("E").T("number", gfg.TokType(txtscanner.Int)).End()
	b.LHS("E").N("E").T("+", gfg.TokType('+')).N("E").End()
	b.LHS("E").T("(", gfg.TokType('(')).N("E").T("+", gfg.TokType('+')).N("E").T(")", gfg.TokType(')')).End()
	g, err := b.Grammar()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	gf, err := flow.Build(g, "S")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	return gf
}

func main() {
	pterm.EnableDebugMessages()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	mode := flag.String("mode", "tree", "what to build: tree | forest | online")
	flag.Parse()
	tracing.Select("gfg.sigma").SetTraceLevel(traceLevel(*tlevel))
	tracing.Select("gfg.tree").SetTraceLevel(traceLevel(*tlevel))
	tracing.Select("gfg.sppf").SetTraceLevel(traceLevel(*tlevel))

	pterm.Info.Println("Welcome to gfgrepl — enter an expression like \"1 + (2 + 3)\"")
	gf := makeExprGrammar()

	repl, err := readline.New("gfg> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF on <ctrl-D>
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		evalLine(gf, line, *mode)
	}
	pterm.Info.Println("Good bye!")
}

func evalLine(gf *flow.GFG, line, mode string) {
	switch mode {
	case "forest":
		lex := gfgscanner.GoTokenizer("gfgrepl", strings.NewReader(line))
		f, rej, err := gfg.ParseForest(gf, lex)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		if f == nil {
			pterm.Warning.Println(rej.String())
			return
		}
		f.Dump(os.Stdout)
	case "online":
		lex := gfgscanner.GoTokenizer("gfgrepl", strings.NewReader(line))
		f, rej, err := gfg.ParseForestOnline(gf, lex)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		if f == nil {
			pterm.Warning.Println(rej.String())
			return
		}
		f.Dump(os.Stdout)
	default:
		lex := gfgscanner.GoTokenizer("gfgrepl", strings.NewReader(line))
		tr, rej, err := gfg.ParseOne(gf, lex)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		if tr == nil {
			pterm.Warning.Println(rej.String())
			return
		}
		root := pterm.NewTreeFromLeveledList(leveledTree(tr, pterm.LeveledList{}, 0))
		pterm.DefaultTree.WithRoot(root).Render()
	}
}

// leveledTree flattens a tree.Node into pterm's leveled-list shape, the
// way trepl's leveledElem walks a TeREx AST.
func leveledTree(n *tree.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	if n == nil {
		return append(ll, pterm.LeveledListItem{Level: level, Text: "<stuck>"})
	}
	if n.Terminal {
		text := fmt.Sprintf("%s %q", n.Production, n.Token.Lexeme())
		return append(ll, pterm.LeveledListItem{Level: level, Text: text})
	}
	text := fmt.Sprintf("%s %s", n.Production, n.Span.String())
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	for _, c := range n.Children {
		ll = leveledTree(c, ll, level+1)
	}
	return ll
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
