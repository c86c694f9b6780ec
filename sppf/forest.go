package sppf

import (
	"github.com/google/uuid"
	"github.com/kayvan61/gfg"
)

// Kind classifies a Forest node.
type Kind int

const (
	// Symbol is a "(A, i, j)" node: A derives the input slice [i, j).
	Symbol Kind = iota
	// Intermediate is a "(item_id, i, j)" node: a partial derivation
	// past one dot position of an alternative.
	Intermediate
	// Terminal is a scanned leaf, "(a, i, i+1)".
	Terminal
	// Packed is an anonymous node with exactly two children (Left,
	// Right), grouping one derivation among several for its parent.
	Packed
)

func (k Kind) String() string {
	switch k {
	case Symbol:
		return "symbol"
	case Intermediate:
		return "intermediate"
	case Terminal:
		return "terminal"
	default:
		return "packed"
	}
}

// Node is a single vertex of the forest. A Symbol node lists one child
// per alternative that derives its span. An Intermediate node lists
// either a single unpacked child (no symbol precedes the last one it
// covers) or one Packed child per (prefix, last symbol) split. More than
// one child means the node is ambiguous. Packed nodes carry exactly
// Left and Right.
type Node struct {
	ID    int
	Kind  Kind
	Label string // non-terminal name, item debug name, or terminal name
	Start uint64
	End   uint64
	Token gfg.Token // valid iff Kind == Terminal and this isn't the ε-leaf

	Children []int // Symbol/Intermediate only
	Left     int   // Packed only
	Right    int   // Packed only

	// DebugID gives a Packed node a short, stable-within-this-forest
	// identity for Dump output, since Packed nodes otherwise have no
	// label and two unrelated ambiguous forests would print identical
	// "packed (3, 4)" rows with no way to tell them apart at a glance.
	DebugID uuid.UUID
}

// Ambiguous reports whether this Symbol or Intermediate node has more
// than one derivation recorded.
func (n *Node) Ambiguous() bool {
	return (n.Kind == Symbol || n.Kind == Intermediate) && len(n.Children) > 1
}

// Forest is the arena holding every node allocated during a single
// build. Node identity for Symbol/Intermediate/Terminal nodes is
// (label, start, end); for Packed nodes it is (parent, left, right),
// which is what guarantees shared sub-derivations are allocated once.
type Forest struct {
	Nodes []*Node
	Root  int

	memo       map[memoKey]int
	packedMemo map[packedKey]int
}

type memoKey struct {
	Label string
	Start uint64
	End   uint64
}

type packedKey struct {
	Parent, Left, Right int
}

// NewForest creates an empty forest.
func NewForest() *Forest {
	return &Forest{
		memo:       make(map[memoKey]int),
		packedMemo: make(map[packedKey]int),
	}
}

// Node returns the node with the given id.
func (f *Forest) Node(id int) *Node { return f.Nodes[id] }

func (f *Forest) alloc(kind Kind, label string, start, end uint64) int {
	n := &Node{ID: len(f.Nodes), Kind: kind, Label: label, Start: start, End: end}
	f.Nodes = append(f.Nodes, n)
	return n.ID
}

// getOrMake returns the existing Symbol/Intermediate/Terminal node keyed
// by (label, start, end), or allocates (but does not yet populate the
// children of) a fresh one and reports that it was freshly created —
// the caller must immediately register it before recursing further, so
// that a legitimate ε-cycle in the grammar resolves to a shared node
// instead of infinite recursion.
func (f *Forest) getOrMake(kind Kind, label string, start, end uint64) (id int, fresh bool) {
	k := memoKey{Label: label, Start: start, End: end}
	if id, ok := f.memo[k]; ok {
		return id, false
	}
	id = f.alloc(kind, label, start, end)
	f.memo[k] = id
	return id, true
}

func (f *Forest) getOrMakePacked(parent, left, right int) int {
	k := packedKey{Parent: parent, Left: left, Right: right}
	if id, ok := f.packedMemo[k]; ok {
		return id
	}
	id := f.alloc(Packed, "", 0, 0)
	f.Nodes[id].Left = left
	f.Nodes[id].Right = right
	f.Nodes[id].DebugID = uuid.New()
	f.packedMemo[k] = id
	return id
}
