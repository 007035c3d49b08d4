package klondike

import (
	"github.com/lox/klondike/internal/cards"
	"github.com/lox/klondike/internal/chain"
)

// refresh recomputes the three render lists of p from its chain. It must be
// called after every structural change to p and never otherwise.
func (t *Table) refresh(p *Pile) {
	p.count = t.arena.CountChildren(p.node)
	p.visible = t.deriveVisible(p, p.visible[:0])
	p.pickable = t.derivePickable(p, p.pickable[:0])
	p.putable = t.derivePutable(p, p.putable[:0])
}

// refreshPutable recomputes only the drop targets. The putable lists depend
// on the hand, so they are rebuilt whenever the hand changes structure.
func (t *Table) refreshPutable() {
	for _, p := range t.piles {
		p.putable = t.derivePutable(p, p.putable[:0])
	}
}

func (t *Table) entry(p *Pile, card chain.Node, index, slot int) Entry {
	off := p.stacking.offset(t.geom, slot)
	return Entry{
		Card:   card,
		Value:  t.values[card],
		Origin: p.id,
		Index:  index,
		X:      p.pos.X + off.X,
		Y:      p.pos.Y + off.Y,
		Z:      p.z + t.geom.CardThickness*float64(index),
	}
}

func (t *Table) placeholder(p *Pile) Entry {
	return Entry{
		Card:   chain.None,
		Value:  cards.Null,
		Origin: p.id,
		X:      p.pos.X,
		Y:      p.pos.Y,
		Z:      p.z,
	}
}

func (t *Table) deriveVisible(p *Pile, out []Entry) []Entry {
	if p.count == 0 {
		return append(out, t.placeholder(p))
	}

	first := p.count - p.stacking.visibleCount()
	if p.stacking.visibleCount() == 0 || first < 0 {
		first = 0
	}

	slot := 0
	t.arena.Walk(p.node, func(i int, card chain.Node) bool {
		if i >= first {
			out = append(out, t.entry(p, card, i, slot))
			slot++
		}
		return true
	})
	return out
}

func (t *Table) derivePickable(p *Pile, out []Entry) []Entry {
	switch p.kind {
	case KindWaste, KindFoundation:
		if n := len(p.visible); p.count > 0 {
			out = append(out, p.visible[n-1])
		}
	case KindTableau:
		for _, e := range p.visible {
			if e.Value.FaceUp() {
				out = append(out, e)
			}
		}
	}
	return out
}

func (t *Table) derivePutable(p *Pile, out []Entry) []Entry {
	if p.kind != KindFoundation && p.kind != KindTableau {
		return out
	}

	top := p.visible[len(p.visible)-1]
	if !t.rules.accepts(p.kind, top.Value, t.holding()) {
		return out
	}
	return append(out, top)
}

// holding summarises the hand for the acceptance rules.
func (t *Table) holding() holding {
	base := t.arena.Child(t.hand.node)
	if base == chain.None {
		return holding{}
	}
	return holding{base: t.values[base], count: t.arena.CountChildren(t.hand.node)}
}

// Visible returns the visible entries of every table pile in pile order.
func (t *Table) Visible() []Entry {
	var out []Entry
	for _, p := range t.piles {
		out = append(out, p.visible...)
	}
	return out
}

// Pickable returns the pickable entries of every table pile in pile order.
// The hit channel paints entry i in the colour for index i.
func (t *Table) Pickable() []Entry {
	var out []Entry
	for _, p := range t.piles {
		out = append(out, p.pickable...)
	}
	return out
}

// Putable returns the drop targets of every table pile in pile order.
func (t *Table) Putable() []Entry {
	var out []Entry
	for _, p := range t.piles {
		out = append(out, p.putable...)
	}
	return out
}

// Lists holds the aggregated render lists of the table piles.
type Lists struct {
	Visible  []Entry
	Pickable []Entry
	Putable  []Entry
}

// Lists returns all three aggregated render lists at once.
func (t *Table) Lists() Lists {
	return Lists{Visible: t.Visible(), Pickable: t.Pickable(), Putable: t.Putable()}
}
