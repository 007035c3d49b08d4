package klondike

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/cards"
	"github.com/lox/klondike/internal/chain"
)

// ErrHitOutOfRange means the hit channel returned an index the render lists
// do not have: the overlays were painted from a different table state.
var ErrHitOutOfRange = errors.New("hit index outside render list")

// ErrStaleEntry means a render-list entry no longer matches the chains.
var ErrStaleEntry = errors.New("render entry does not match the chains")

// PickHitter resolves a table position to an index into Table.Pickable.
type PickHitter interface {
	PickableAt(p Point) (int, bool)
}

// PutHitter resolves a table position to an index into Table.Putable.
type PutHitter interface {
	PutableAt(p Point) (int, bool)
}

// Outcome is the result of Place.
type Outcome int

const (
	// NotHolding: nothing in the hand, nothing happened.
	NotHolding Outcome = iota
	// Placed: the run was relinked onto a drop target.
	Placed
	// Returned: no target under the pointer, the run went back to its origin.
	Returned
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case NotHolding:
		return "not-holding"
	case Placed:
		return "placed"
	case Returned:
		return "returned"
	default:
		return "unknown"
	}
}

// Option configures a Table
type Option func(*Table)

// WithGeometry sets card dimensions and margins
func WithGeometry(g Geometry) Option {
	return func(t *Table) { t.geom = g }
}

// WithRules sets the drop acceptance rules
func WithRules(r Rules) Option {
	return func(t *Table) { t.rules = r }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(t *Table) { t.logger = l.WithPrefix("table") }
}

// WithDeal fixes the card values instead of shuffling: card id i+1 gets
// deal[i]. Values are forced face-down before dealing.
func WithDeal(deal [cards.DeckSize]cards.Value) Option {
	return func(t *Table) {
		d := deal
		t.deal = &d
	}
}

// Table owns the piles, the hand and the values of all 52 cards.
type Table struct {
	logger *log.Logger
	geom   Geometry
	rules  Rules
	deal   *[cards.DeckSize]cards.Value

	arena  *chain.Arena
	values [chain.MaxCards + 1]cards.Value
	piles  [NumPiles]*Pile
	hand   *Hand

	tableStale bool
	generation uint64
}

// NewTable creates a table and deals a fresh game from rng.
func NewTable(rng *rand.Rand, opts ...Option) (*Table, error) {
	t := &Table{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		geom:   DefaultGeometry(),
		rules:  KlondikeRules,
		arena:  chain.New(),
	}
	for _, opt := range opts {
		opt(t)
	}

	for i := range t.piles {
		t.piles[i] = newPile(PileID(i), t.geom)
	}
	t.hand = newHand(t.geom)

	deal := cards.Shuffled(rng)
	if t.deal != nil {
		deal = *t.deal
	}
	for i, v := range deal {
		t.values[chain.Card(i+1)] = v.Turned(false)
	}

	if err := t.dealGame(); err != nil {
		return nil, fmt.Errorf("deal: %w", err)
	}

	t.logger.Debug("Dealt table", "rules", t.rules, "deck", t.piles[DeckPile].count)
	return t, nil
}

// dealGame chains all 52 cards onto the deck, then moves 1..7 cards into
// each tableau column and turns the last card of each column face up.
func (t *Table) dealGame() error {
	deck := t.piles[DeckPile].node

	parent := deck
	for id := 1; id <= chain.MaxCards; id++ {
		card := chain.Card(id)
		if err := t.arena.SetParent(card, parent); err != nil {
			return err
		}
		parent = card
	}

	for i := 0; i < 7; i++ {
		col := t.piles[Tableau1+PileID(i)]

		// Lift the whole deck onto the column, then send everything past
		// the column's i+1 cards back to the deck.
		first := t.arena.Child(deck)
		if _, err := t.arena.ReplaceParent(first, col.node); err != nil {
			return err
		}
		rest, err := t.arena.ChildN(first, i)
		if err != nil {
			return err
		}
		if _, err := t.arena.ReplaceParent(rest, deck); err != nil {
			return err
		}

		top := t.arena.Tail(col.node)
		t.values[top] = t.values[top].Turned(true)
	}

	for _, p := range t.piles {
		t.refresh(p)
	}
	t.refresh(t.hand.Pile)
	t.touch()
	return nil
}

// touch records a structural change visible to the renderer.
func (t *Table) touch() {
	t.tableStale = true
	t.generation++
}

// Geometry returns the table geometry
func (t *Table) Geometry() Geometry { return t.geom }

// Rules returns the active drop rules
func (t *Table) Rules() Rules { return t.rules }

// Pile returns the pile with the given id
func (t *Table) Pile(id PileID) *Pile {
	if id == HandPile {
		return t.hand.Pile
	}
	return t.piles[id]
}

// Piles returns the table piles in draw order, excluding the hand
func (t *Table) Piles() []*Pile { return t.piles[:] }

// Hand returns the hand
func (t *Table) Hand() *Hand { return t.hand }

// TableStale reports whether the composited table no longer matches the
// piles.
func (t *Table) TableStale() bool { return t.tableStale }

// ClearTableStale is called by the renderer after rebuilding its table cache
func (t *Table) ClearTableStale() { t.tableStale = false }

// HandMoved reports whether the hand carries cards and the pointer moved
// since the last presented frame.
func (t *Table) HandMoved() bool { return t.hand.moved && t.hand.Holding() }

// Generation increases with every structural change. Hit overlays compare it
// to decide whether to repaint.
func (t *Table) Generation() uint64 { return t.generation }

// Value returns the value of a card node
func (t *Table) Value(card chain.Node) cards.Value {
	if !card.IsCard() {
		return cards.Null
	}
	return t.values[card]
}

// Cards returns the values of a pile, bottom first.
func (t *Table) Cards(id PileID) []cards.Value {
	var out []cards.Value
	t.arena.Walk(t.Pile(id).node, func(_ int, card chain.Node) bool {
		out = append(out, t.values[card])
		return true
	})
	return out
}

// Parent exposes the chain link of a card for inspection
func (t *Table) Parent(card chain.Node) chain.Node {
	return t.arena.Parent(card)
}

// OverDeck reports whether p is on the deck's slot.
func (t *Table) OverDeck(p Point) bool {
	return t.geom.Contains(t.piles[DeckPile].pos, p)
}

// MoveHand updates the pointer position, clamped to the table margins.
func (t *Table) MoveHand(p Point) {
	t.hand.pointer = t.geom.clamp(p)
	t.hand.moved = true
}

// Pick lifts the run starting at the pickable card under p into the hand.
// It is a no-op while the hand holds cards or when nothing is under p.
// Only the stored pointer is clamped; the hit test uses p as given.
func (t *Table) Pick(p Point, hits PickHitter) (bool, error) {
	t.MoveHand(p)
	if t.hand.Holding() {
		return false, nil
	}

	idx, ok := hits.PickableAt(p)
	if !ok {
		return false, nil
	}
	pickable := t.Pickable()
	if idx < 0 || idx >= len(pickable) {
		return false, fmt.Errorf("pick %d of %d: %w", idx, len(pickable), ErrHitOutOfRange)
	}
	e := pickable[idx]
	if id, depth, ok := t.locate(e.Card); !ok || id != e.Origin || depth != e.Index {
		return false, fmt.Errorf("pick %v from %v: %w", e.Value, e.Origin, ErrStaleEntry)
	}

	prev, err := t.arena.ReplaceParent(e.Card, t.hand.node)
	if err != nil {
		return false, fmt.Errorf("pick %v from %v: %w", e.Value, e.Origin, err)
	}

	t.hand.returnTo = prev
	t.hand.origin = e.Origin
	t.hand.grab = p.Sub(e.Pos())

	origin := t.piles[e.Origin]
	origin.MarkStale()
	t.hand.MarkStale()
	t.refresh(origin)
	t.refresh(t.hand.Pile)
	t.refreshPutable()
	t.touch()

	t.logger.Debug("Picked", "card", e.Value, "from", e.Origin, "cards", t.hand.count)
	return true, nil
}

// Place drops the hand's run onto the putable target under p, or returns it
// to where it was lifted from when there is none.
func (t *Table) Place(p Point, hits PutHitter) (Outcome, error) {
	t.MoveHand(p)
	if !t.hand.Holding() {
		return NotHolding, nil
	}

	base := t.arena.Child(t.hand.node)
	origin := t.piles[t.hand.origin]

	target, parent := origin, t.hand.returnTo
	outcome := Returned

	if idx, ok := hits.PutableAt(p); ok {
		putable := t.Putable()
		if idx < 0 || idx >= len(putable) {
			return NotHolding, fmt.Errorf("place %d of %d: %w", idx, len(putable), ErrHitOutOfRange)
		}
		target = t.piles[putable[idx].Origin]
		parent = t.arena.TailOrSelf(target.node)
		outcome = Placed
	}

	if _, err := t.arena.ReplaceParent(base, parent); err != nil {
		return NotHolding, fmt.Errorf("place %v on %v: %w", t.values[base], target.id, err)
	}

	target.MarkStale()
	if target != origin {
		t.reveal(origin)
		origin.MarkStale()
		t.refresh(origin)
	}
	t.refresh(target)

	t.hand.reset()
	t.hand.MarkStale()
	t.refresh(t.hand.Pile)
	t.refreshPutable()
	t.touch()

	t.logger.Debug("Released hand", "outcome", outcome, "card", t.values[base], "onto", target.id)
	return outcome, nil
}

// locate returns the pile that owns card and the card's depth above the
// pile head.
func (t *Table) locate(card chain.Node) (PileID, int, bool) {
	root := t.arena.Root(card)
	if !root.IsHead() {
		return 0, 0, false
	}
	return PileID(root.HeadIndex()), t.arena.IndexOf(card), true
}

// reveal turns the exposed top card of a tableau face up.
func (t *Table) reveal(p *Pile) {
	if p.kind != KindTableau {
		return
	}
	if top := t.arena.Tail(p.node); top != chain.None && !t.values[top].FaceUp() {
		t.values[top] = t.values[top].Turned(true)
		t.logger.Debug("Revealed", "card", t.values[top], "pile", p.id)
	}
}

// Draw turns the top card of the deck onto the waste. With an empty deck
// the waste is turned back over to form a new deck.
func (t *Table) Draw() error {
	if t.hand.Holding() {
		return nil
	}

	deck, waste := t.piles[DeckPile], t.piles[WastePile]

	if top := t.arena.Tail(deck.node); top != chain.None {
		if _, err := t.arena.ReplaceParent(top, t.arena.TailOrSelf(waste.node)); err != nil {
			return fmt.Errorf("draw: %w", err)
		}
		t.values[top] = t.values[top].Turned(true)
	} else {
		for top := t.arena.Tail(waste.node); top != chain.None; top = t.arena.Tail(waste.node) {
			if _, err := t.arena.ReplaceParent(top, t.arena.TailOrSelf(deck.node)); err != nil {
				return fmt.Errorf("recycle waste: %w", err)
			}
			t.values[top] = t.values[top].Turned(false)
		}
	}

	deck.MarkStale()
	waste.MarkStale()
	t.refresh(deck)
	t.refresh(waste)
	t.touch()
	return nil
}
