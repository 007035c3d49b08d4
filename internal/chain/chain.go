// Package chain implements the card-location model: every card and every
// pile head is a node in a fixed arena, and a pile is the singly linked run
// of cards hanging off its head node.
//
// Nodes 1..52 are cards (the node id is the card identity), nodes 53 and up
// are pile heads, and 0 is None. Parent and child links are stored as node
// ids, so moving a run of cards is a constant-time relink of two slots
// regardless of the run length.
//
// Every mutating operation validates before it writes. An error therefore
// always leaves the arena exactly as it was.
package chain

import (
	"errors"
	"fmt"
)

// Node is an index into the arena.
type Node uint8

// None is the absent parent/child marker.
const None Node = 0

const (
	// MaxCards is the number of card nodes.
	MaxCards = 52
	// MaxHeads is the number of pile head nodes.
	MaxHeads = 16

	firstHead = MaxCards + 1
	size      = firstHead + MaxHeads
)

var (
	ErrOccupied   = errors.New("child already set")
	ErrNoChild    = errors.New("no child to detach")
	ErrHasParent  = errors.New("parent already set")
	ErrNoParent   = errors.New("card has no parent")
	ErrNotCard    = errors.New("node is not a card")
	ErrBadNode    = errors.New("node outside arena")
	ErrOutOfRange = errors.New("chain index out of range")
	ErrCycle      = errors.New("relink would create a cycle")
)

// Card returns the node of card identity id (1..52).
func Card(id int) Node {
	return Node(id)
}

// Head returns the node of pile head i (0-based).
func Head(i int) Node {
	return Node(firstHead + i)
}

// IsCard reports whether n is a card node.
func (n Node) IsCard() bool {
	return n >= 1 && n <= MaxCards
}

// IsHead reports whether n is a pile head node.
func (n Node) IsHead() bool {
	return n >= firstHead && n < size
}

// HeadIndex returns i for Head(i). It is only meaningful when IsHead is true.
func (n Node) HeadIndex() int {
	return int(n) - firstHead
}

func (n Node) String() string {
	switch {
	case n == None:
		return "none"
	case n.IsCard():
		return fmt.Sprintf("card#%d", int(n))
	case n.IsHead():
		return fmt.Sprintf("head#%d", n.HeadIndex())
	default:
		return fmt.Sprintf("node#%d", int(n))
	}
}

type link struct {
	parent Node
	child  Node
}

// Arena holds the links of all nodes. The zero value is an empty arena where
// every card is detached and every pile is empty.
type Arena struct {
	links [size]link
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{}
}

func (a *Arena) check(n Node) error {
	if n == None || int(n) >= size {
		return fmt.Errorf("%v: %w", n, ErrBadNode)
	}
	return nil
}

// Parent returns the parent of n, or None.
func (a *Arena) Parent(n Node) Node {
	if int(n) >= size {
		return None
	}
	return a.links[n].parent
}

// Child returns the node stacked directly on n, or None.
func (a *Arena) Child(n Node) Node {
	if int(n) >= size {
		return None
	}
	return a.links[n].child
}

// SetChild links card as the child of n. It fails when n already has a child.
// The card's parent link is not touched; use SetParent or ReplaceParent.
func (a *Arena) SetChild(n, card Node) error {
	if err := a.check(n); err != nil {
		return err
	}
	if !card.IsCard() {
		return fmt.Errorf("set child %v on %v: %w", card, n, ErrNotCard)
	}
	if a.links[n].child != None {
		return fmt.Errorf("set child %v on %v: %w", card, n, ErrOccupied)
	}
	a.links[n].child = card
	return nil
}

// DetachChild clears the child slot of n and returns what was there.
func (a *Arena) DetachChild(n Node) (Node, error) {
	if err := a.check(n); err != nil {
		return None, err
	}
	child := a.links[n].child
	if child == None {
		return None, fmt.Errorf("detach from %v: %w", n, ErrNoChild)
	}
	a.links[n].child = None
	return child, nil
}

// SetParent attaches a detached card under parent.
func (a *Arena) SetParent(card, parent Node) error {
	if !card.IsCard() {
		return fmt.Errorf("set parent of %v: %w", card, ErrNotCard)
	}
	if err := a.check(parent); err != nil {
		return err
	}
	if a.links[card].parent != None {
		return fmt.Errorf("set parent of %v: %w", card, ErrHasParent)
	}
	if a.inRun(card, parent) {
		return fmt.Errorf("set parent of %v to %v: %w", card, parent, ErrCycle)
	}
	if err := a.SetChild(parent, card); err != nil {
		return err
	}
	a.links[card].parent = parent
	return nil
}

// ReplaceParent moves card, together with everything stacked on it, from its
// current parent to newParent and returns the old parent. This is the only
// primitive used to move cards between piles.
func (a *Arena) ReplaceParent(card, newParent Node) (Node, error) {
	if !card.IsCard() {
		return None, fmt.Errorf("relink %v: %w", card, ErrNotCard)
	}
	if err := a.check(newParent); err != nil {
		return None, err
	}
	old := a.links[card].parent
	if old == None {
		return None, fmt.Errorf("relink %v: %w", card, ErrNoParent)
	}
	if a.links[newParent].child != None {
		return None, fmt.Errorf("relink %v onto %v: %w", card, newParent, ErrOccupied)
	}
	if a.inRun(card, newParent) {
		return None, fmt.Errorf("relink %v onto %v: %w", card, newParent, ErrCycle)
	}

	a.links[old].child = None
	a.links[newParent].child = card
	a.links[card].parent = newParent
	return old, nil
}

// inRun reports whether target is start or stacked somewhere above start.
func (a *Arena) inRun(start, target Node) bool {
	for n := start; n != None; n = a.links[n].child {
		if n == target {
			return true
		}
	}
	return false
}

// CountChildren returns the number of cards stacked above n.
func (a *Arena) CountChildren(n Node) int {
	count := 0
	for cur := a.Child(n); cur != None; cur = a.links[cur].child {
		count++
	}
	return count
}

// ChildN returns the descendant of n at zero-based offset k. A negative k
// counts back from the tail, so -1 is the tail itself. Exactly one past the
// tail yields None; anything further is ErrOutOfRange.
func (a *Arena) ChildN(n Node, k int) (Node, error) {
	count := a.CountChildren(n)
	if k < 0 {
		k += count
	}
	if k < 0 || k > count {
		return None, fmt.Errorf("child %d of %v (%d children): %w", k, n, count, ErrOutOfRange)
	}

	cur := a.Child(n)
	for i := 0; i < k; i++ {
		cur = a.links[cur].child
	}
	return cur, nil
}

// DownToNthLastChild returns the first of the last k cards above n, or the
// first card above n when there are no more than k. k must be positive.
func (a *Arena) DownToNthLastChild(n Node, k int) (Node, error) {
	if k <= 0 {
		return None, fmt.Errorf("last %d children of %v: %w", k, n, ErrOutOfRange)
	}
	if a.CountChildren(n) > k {
		return a.ChildN(n, -k)
	}
	return a.Child(n), nil
}

// Tail returns the topmost card above n, or None when nothing is stacked.
func (a *Arena) Tail(n Node) Node {
	tail := None
	for cur := a.Child(n); cur != None; cur = a.links[cur].child {
		tail = cur
	}
	return tail
}

// TailOrSelf returns the node a new card would be stacked on.
func (a *Arena) TailOrSelf(n Node) Node {
	if tail := a.Tail(n); tail != None {
		return tail
	}
	return n
}

// Root follows parent links to the pile head that owns n. A detached card
// is its own root.
func (a *Arena) Root(n Node) Node {
	for int(n) < size && a.links[n].parent != None {
		n = a.links[n].parent
	}
	return n
}

// Walk calls fn for each card stacked above n, bottom first, with its
// zero-based index. Returning false stops the walk.
func (a *Arena) Walk(n Node, fn func(i int, card Node) bool) {
	i := 0
	for cur := a.Child(n); cur != None; cur = a.links[cur].child {
		if !fn(i, cur) {
			return
		}
		i++
	}
}

// IndexOf returns the offset of card above its root, or -1 when detached.
func (a *Arena) IndexOf(card Node) int {
	if !card.IsCard() || a.links[card].parent == None {
		return -1
	}
	i := 0
	for p := a.links[card].parent; p.IsCard(); p = a.links[p].parent {
		i++
	}
	return i
}
