// Package klondike implements the Klondike table model on top of the card
// chain arena.
//
// The main type is Table, which owns thirteen piles (Deck, Waste, four
// Foundations, seven Tableaus), the transient Hand and the values of all 52
// cards. Cards move only by relinking chains, never by copying.
//
// # Basic Usage
//
//	t, err := klondike.NewTable(randutil.New(42))
//	if err != nil {
//	    return err
//	}
//	// pointer down over a pickable card
//	picked, err := t.Pick(pos, hits)
//	// pointer motion while holding
//	t.MoveHand(pos)
//	// pointer up
//	outcome, err := t.Place(pos, hits)
//
// Hit resolution is delegated to a PickHitter/PutHitter, normally the colour
// keyed overlays in the render package. The index space is the aggregated
// Pickable and Putable lists.
//
// # Render lists
//
// Each pile caches three derived lists (Visible, Pickable, Putable). They are
// recomputed only after structural change: a card attached, detached or
// turned. Pointer motion never touches them.
//
// # Staleness
//
// Every structural change marks the affected piles stale and the table cache
// stale. The compositor clears those flags once it has repainted.
package klondike
