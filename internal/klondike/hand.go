package klondike

import (
	"github.com/lox/klondike/internal/chain"
)

// Hand is the transient pile of cards being dragged. It is Empty or Holding;
// there is no other state.
type Hand struct {
	*Pile

	returnTo chain.Node // parent the run was lifted from
	origin   PileID
	grab     Point // pointer position relative to the run's base card
	pointer  Point
	moved    bool
}

func newHand(g Geometry) *Hand {
	return &Hand{Pile: newPile(HandPile, g), origin: HandPile}
}

// Holding reports whether the hand carries cards
func (h *Hand) Holding() bool {
	return h.count > 0
}

// Origin returns the pile the current run was lifted from
func (h *Hand) Origin() PileID {
	return h.origin
}

// Pointer returns the last pointer position in table units
func (h *Hand) Pointer() Point {
	return h.pointer
}

// Grab returns the pick-up offset of the pointer from the run's corner
func (h *Hand) Grab() Point {
	return h.grab
}

// DrawPos is where the hand's bitmap goes: the pointer minus the grab
// offset, so the run follows the pointer at the point it was picked up.
func (h *Hand) DrawPos() Point {
	return h.pointer.Sub(h.grab)
}

// Moved reports whether the pointer moved since the last frame
func (h *Hand) Moved() bool {
	return h.moved
}

// ClearMoved is called by the renderer after presenting a frame
func (h *Hand) ClearMoved() {
	h.moved = false
}

func (h *Hand) reset() {
	h.returnTo = chain.None
	h.origin = HandPile
	h.grab = Point{}
}
