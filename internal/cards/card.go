// Package cards defines the one-byte card value shared by the chain model,
// the renderer and anything that needs to exchange card state.
//
// Bit layout (compatible with the browser client):
//
//	bit 7     face-up flag
//	bits 6-4  suit id
//	bits 3-0  rank
package cards

import (
	"fmt"
	"strings"
)

// Suit identifies a card suit. The numeric values are part of the wire format.
type Suit uint8

const (
	NoSuit Suit = iota
	Hearts
	Spades
	Diamonds
	Clubs
	UnknownSuit
)

// String returns the suit glyph
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case UnknownSuit:
		return "?"
	default:
		return "-"
	}
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is the card rank, ace low.
type Rank uint8

const (
	NoRank Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	UnknownRank
)

// String returns the rank label as printed on the card
func (r Rank) String() string {
	switch r {
	case NoRank:
		return "-"
	case Ace:
		return "A"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case UnknownRank:
		return "?"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

const (
	faceUpBit  = 1 << 7
	suitShift  = 4
	suitMask   = 7 << suitShift
	rankMask   = 15
	NumSuits   = 4
	NumRanks   = 13
	DeckSize   = NumSuits * NumRanks
	unknownVal = Value(uint8(UnknownSuit)<<suitShift | uint8(UnknownRank))
)

// Value is the packed card byte.
type Value uint8

const (
	// Null marks an empty slot.
	Null Value = 0
	// Unknown is how a face-down card is shown to anyone who may not see it.
	Unknown Value = unknownVal
)

// NewValue packs suit, rank and facing into a Value
func NewValue(suit Suit, rank Rank, faceUp bool) Value {
	v := Value(uint8(suit)<<suitShift&suitMask | uint8(rank)&rankMask)
	if faceUp {
		v |= faceUpBit
	}
	return v
}

// FaceUp reports whether the face-up bit is set
func (v Value) FaceUp() bool {
	return v&faceUpBit != 0
}

// Suit extracts bits 6-4
func (v Value) Suit() Suit {
	return Suit((v & suitMask) >> suitShift)
}

// Rank extracts bits 3-0
func (v Value) Rank() Rank {
	return Rank(v & rankMask)
}

// IsRed returns true if the card is red
func (v Value) IsRed() bool {
	return v.Suit().IsRed()
}

// Turned returns the value with the face-up bit set to up.
func (v Value) Turned(up bool) Value {
	if up {
		return v | faceUpBit
	}
	return v &^ faceUpBit
}

// Shown returns what a viewer sees: face-down cards collapse to Unknown.
func (v Value) Shown() Value {
	if v == Null || v.FaceUp() {
		return v
	}
	return Unknown
}

// String returns e.g. "10♥", "??" for an unknown card and "--" for an empty slot.
func (v Value) String() string {
	switch v.Shown() {
	case Null:
		return "--"
	case Unknown:
		return "??"
	}
	return v.Rank().String() + v.Suit().String()
}

// ParseValue parses a face-up card such as "Qs", "10h" or "Ad".
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Null, fmt.Errorf("card %q too short", s)
	}

	rankPart, suitPart := strings.ToUpper(s[:len(s)-1]), strings.ToLower(s[len(s)-1:])

	var rank Rank
	switch rankPart {
	case "A":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "T", "10":
		rank = Ten
	default:
		if len(rankPart) != 1 || rankPart[0] < '2' || rankPart[0] > '9' {
			return Null, fmt.Errorf("invalid rank in %q", s)
		}
		rank = Rank(rankPart[0] - '0')
	}

	var suit Suit
	switch suitPart {
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	case "d":
		suit = Diamonds
	case "c":
		suit = Clubs
	default:
		return Null, fmt.Errorf("invalid suit in %q", s)
	}

	return NewValue(suit, rank, true), nil
}

// MustParseValue is ParseValue for fixtures; it panics on bad input.
func MustParseValue(s string) Value {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}
	return v
}
