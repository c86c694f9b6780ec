package flow

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/pterm/pterm"
)

// Dump writes a deterministic, greppable textual rendering of the GFG's
// node table and outgoing edges to w, matching the Dump()/CFSMState.Dump()
// conventions elsewhere in this toolbox.
func (g *GFG) Dump(w io.Writer) {
	printer := pterm.DefaultBasicText.WithWriter(w)
	printer.Println(pterm.Bold.Sprintf("GFG for start symbol %q (%d nodes)", g.Start, len(g.Nodes)))
	for _, n := range g.Nodes {
		flags := nodeFlags(n)
		printer.Printfln("  %3d %-8s %-24s %s", n.ID, n.Kind, n.Name, flags)
		// n.Out is a map, so iteration order is random; collect into a
		// treeset for deterministic, sorted output so dumps and traces
		// are reproducible and diffable.
		ids := treeset.NewWith(utils.IntComparator)
		for id := range n.Out {
			ids.Add(id)
		}
		for _, v := range ids.Values() {
			id := v.(int)
			lbl := n.Out[id]
			if lbl == nil {
				printer.Printfln("        --ε--> %d %s", id, g.Nodes[id].Name)
			} else {
				printer.Printfln("        --%s--> %d %s", lbl.Name, id, g.Nodes[id].Name)
			}
		}
	}
}

func nodeFlags(n *Node) string {
	s := ""
	if n.IsEntry {
		s += "entry "
	}
	if n.IsExit {
		s += "exit "
	}
	if n.IsCall {
		s += "call "
	}
	if n.IsReturn {
		s += "return "
	}
	if n.IsScan {
		s += fmt.Sprintf("scan(%s) ", n.ScanLabel)
	}
	if n.TailNullable {
		s += "nullable-tail "
	}
	return s
}
