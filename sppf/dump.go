package sppf

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// Dump writes a deterministic, greppable textual rendering of the
// forest to w, matching flow.GFG.Dump's conventions: node iteration
// order, kind, span and children, one line per node.
func (f *Forest) Dump(w io.Writer) {
	printer := pterm.DefaultBasicText.WithWriter(w)
	printer.Println(pterm.Bold.Sprintf("SPPF, root=%d (%d nodes)", f.Root, len(f.Nodes)))
	for _, n := range f.Nodes {
		switch n.Kind {
		case Packed:
			printer.Printfln("  %3d packed       (%d, %d)  %s", n.ID, n.Left, n.Right, n.DebugID)
		default:
			amb := ""
			if n.Ambiguous() {
				amb = fmt.Sprintf(" AMBIGUOUS(%d)", len(n.Children))
			}
			printer.Printfln("  %3d %-12s %-16q (%d…%d)%s", n.ID, n.Kind, n.Label, n.Start, n.End, amb)
			for _, c := range n.Children {
				printer.Printfln("        -> %d", c)
			}
		}
	}
}
