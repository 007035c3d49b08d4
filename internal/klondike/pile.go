package klondike

import (
	"fmt"

	"github.com/lox/klondike/internal/cards"
	"github.com/lox/klondike/internal/chain"
)

// PileID identifies a pile. The order is the draw order and the order of the
// aggregated render lists.
type PileID int

const (
	DeckPile PileID = iota
	WastePile
	Foundation1
	Foundation2
	Foundation3
	Foundation4
	Tableau1
	Tableau2
	Tableau3
	Tableau4
	Tableau5
	Tableau6
	Tableau7
	HandPile

	// NumPiles counts the table piles, excluding the hand.
	NumPiles = int(HandPile)
)

// IsFoundation returns true for the four foundations
func (id PileID) IsFoundation() bool {
	return id >= Foundation1 && id <= Foundation4
}

// IsTableau returns true for the seven tableau columns
func (id PileID) IsTableau() bool {
	return id >= Tableau1 && id <= Tableau7
}

// String returns the display name of the pile
func (id PileID) String() string {
	switch {
	case id == DeckPile:
		return "Deck"
	case id == WastePile:
		return "Waste"
	case id.IsFoundation():
		return fmt.Sprintf("Foundation #%d", int(id-Foundation1)+1)
	case id.IsTableau():
		return fmt.Sprintf("Tableau #%d", int(id-Tableau1)+1)
	case id == HandPile:
		return "Hand"
	default:
		return "Unknown"
	}
}

// Kind selects the per-pile rules.
type Kind int

const (
	KindDeck Kind = iota
	KindWaste
	KindFoundation
	KindTableau
	KindHand
)

func (id PileID) kind() Kind {
	switch {
	case id == DeckPile:
		return KindDeck
	case id == WastePile:
		return KindWaste
	case id.IsFoundation():
		return KindFoundation
	case id.IsTableau():
		return KindTableau
	default:
		return KindHand
	}
}

// Stacking is how a pile lays out its chain.
type Stacking int

const (
	// SingleStack shows only the topmost card.
	SingleStack Stacking = iota
	// TopThreeHorz fans the top three cards to the right.
	TopThreeHorz
	// VertCascade fans every card downward.
	VertCascade
)

// String returns the policy name
func (s Stacking) String() string {
	switch s {
	case SingleStack:
		return "single-stack"
	case TopThreeHorz:
		return "top-three-horz"
	case VertCascade:
		return "vert-cascade"
	default:
		return "unknown"
	}
}

// visibleCount is how many trailing cards are drawn; 0 means all.
func (s Stacking) visibleCount() int {
	switch s {
	case SingleStack:
		return 1
	case TopThreeHorz:
		return 3
	default:
		return 0
	}
}

// offset is the local draw offset of the i-th visible card.
func (s Stacking) offset(g Geometry, i int) Point {
	switch s {
	case TopThreeHorz:
		return Point{X: g.ElemHorz * float64(i)}
	case VertCascade:
		return Point{Y: g.ElemVert * float64(i)}
	default:
		return Point{}
	}
}

func (k Kind) stacking() Stacking {
	switch k {
	case KindWaste:
		return TopThreeHorz
	case KindTableau, KindHand:
		return VertCascade
	default:
		return SingleStack
	}
}

// Entry is one element of a render list.
type Entry struct {
	Card   chain.Node  // None for the empty-slot placeholder
	Value  cards.Value // cards.Null for the placeholder
	Origin PileID
	Index  int // position in the origin chain
	X, Y   float64
	Z      float64
}

// Pos returns the top-left corner of the entry in table units
func (e Entry) Pos() Point {
	return Point{X: e.X, Y: e.Y}
}

// Placeholder reports whether the entry stands for an empty slot
func (e Entry) Placeholder() bool {
	return e.Card == chain.None
}

// Pile is a chain head with a stacking policy, cached render lists and a
// stale flag.
type Pile struct {
	id       PileID
	kind     Kind
	stacking Stacking
	node     chain.Node
	pos      Point
	z        float64
	stale    bool
	count    int

	visible  []Entry
	pickable []Entry
	putable  []Entry
}

func newPile(id PileID, g Geometry) *Pile {
	k := id.kind()
	return &Pile{
		id:       id,
		kind:     k,
		stacking: k.stacking(),
		node:     chain.Head(int(id)),
		pos:      g.origin(id),
		stale:    true,
	}
}

// ID returns the pile id
func (p *Pile) ID() PileID { return p.id }

// Kind returns the pile kind
func (p *Pile) Kind() Kind { return p.kind }

// Stacking returns the stacking policy
func (p *Pile) Stacking() Stacking { return p.stacking }

// Node returns the chain head of the pile
func (p *Pile) Node() chain.Node { return p.node }

// Pos returns the table position of the pile's top-left corner
func (p *Pile) Pos() Point { return p.pos }

// Z returns the pile's base height above the table
func (p *Pile) Z() float64 { return p.z }

// Len returns the number of cards in the pile as of the last refresh
func (p *Pile) Len() int { return p.count }

// Stale reports whether the pile's cached bitmap is out of date
func (p *Pile) Stale() bool { return p.stale }

// MarkStale flags the pile for repaint
func (p *Pile) MarkStale() { p.stale = true }

// ClearStale is called by the renderer after repainting the pile
func (p *Pile) ClearStale() { p.stale = false }

// Visible returns the cards to draw, or a single placeholder when empty.
func (p *Pile) Visible() []Entry { return p.visible }

// Pickable returns the cards that may be lifted from this pile.
func (p *Pile) Pickable() []Entry { return p.pickable }

// Putable returns the drop targets this pile offers to the current hand.
func (p *Pile) Putable() []Entry { return p.putable }

// Size returns the width and height in base units covered by the visible
// cards, never smaller than one card.
func (p *Pile) Size(g Geometry) (w, h float64) {
	n := max(len(p.visible), 1)
	last := p.stacking.offset(g, n-1)
	return last.X + g.CardWidth, last.Y + g.CardHeight
}
