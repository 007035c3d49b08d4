package klondike

import (
	"fmt"

	"github.com/lox/klondike/internal/cards"
)

// Rules decides which piles offer themselves as drop targets.
type Rules int

const (
	// KlondikeRules: foundations build up by suit from the ace, tableaus
	// build down in alternating colours from the king.
	KlondikeRules Rules = iota
	// FreeRules accepts any drop on any foundation or tableau. Foundations
	// still take one card at a time.
	FreeRules
)

// String returns the config name of the rules
func (r Rules) String() string {
	switch r {
	case KlondikeRules:
		return "klondike"
	case FreeRules:
		return "free"
	default:
		return "unknown"
	}
}

// ParseRules parses a config value
func ParseRules(s string) (Rules, error) {
	switch s {
	case "klondike", "":
		return KlondikeRules, nil
	case "free":
		return FreeRules, nil
	default:
		return KlondikeRules, fmt.Errorf("unknown rules %q", s)
	}
}

// holding describes the run in the hand: its base card and length.
type holding struct {
	base  cards.Value
	count int
}

// accepts reports whether a pile of kind k whose topmost card is top (Null
// when empty) takes the held run.
func (r Rules) accepts(k Kind, top cards.Value, h holding) bool {
	if h.count == 0 {
		return false
	}

	switch k {
	case KindFoundation:
		if h.count != 1 {
			return false
		}
		if r == FreeRules {
			return true
		}
		if top == cards.Null {
			return h.base.Rank() == cards.Ace
		}
		return top.FaceUp() && top.Suit() == h.base.Suit() && h.base.Rank() == top.Rank()+1

	case KindTableau:
		if r == FreeRules {
			return true
		}
		if top == cards.Null {
			return h.base.Rank() == cards.King
		}
		return top.FaceUp() && top.IsRed() != h.base.IsRed() && h.base.Rank()+1 == top.Rank()

	default:
		return false
	}
}
