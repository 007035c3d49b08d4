package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/randutil"
)

func TestValueEncoding(t *testing.T) {
	tests := []struct {
		name   string
		suit   Suit
		rank   Rank
		faceUp bool
		want   Value
	}{
		{name: "ace of hearts face down", suit: Hearts, rank: Ace, want: 0x11},
		{name: "ace of hearts face up", suit: Hearts, rank: Ace, faceUp: true, want: 0x91},
		{name: "king of clubs face up", suit: Clubs, rank: King, faceUp: true, want: 0xCD},
		{name: "ten of spades", suit: Spades, rank: Ten, want: 0x2A},
		{name: "unknown sentinel", suit: UnknownSuit, rank: UnknownRank, want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValue(tt.suit, tt.rank, tt.faceUp)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.suit, v.Suit())
			assert.Equal(t, tt.rank, v.Rank())
			assert.Equal(t, tt.faceUp, v.FaceUp())
		})
	}
}

func TestSentinels(t *testing.T) {
	assert.Equal(t, Value(0), Null)
	assert.Equal(t, Value(94), Unknown)
	assert.Equal(t, "--", Null.String())
	assert.Equal(t, "??", Unknown.String())
}

func TestShownHidesFaceDown(t *testing.T) {
	down := NewValue(Diamonds, Queen, false)
	assert.Equal(t, Unknown, down.Shown())
	assert.Equal(t, "??", down.String())

	up := down.Turned(true)
	assert.Equal(t, up, up.Shown())
	assert.Equal(t, "Q♦", up.String())
	assert.Equal(t, down, up.Turned(false))
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input   string
		want    Value
		wantErr bool
	}{
		{input: "Ah", want: NewValue(Hearts, Ace, true)},
		{input: "10s", want: NewValue(Spades, Ten, true)},
		{input: "Td", want: NewValue(Diamonds, Ten, true)},
		{input: "kc", want: NewValue(Clubs, King, true)},
		{input: "7H", want: NewValue(Hearts, Seven, true)},
		{input: "1h", wantErr: true},
		{input: "Qx", wantErr: true},
		{input: "Q", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseValue(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColors(t *testing.T) {
	assert.True(t, MustParseValue("2h").IsRed())
	assert.True(t, MustParseValue("2d").IsRed())
	assert.False(t, MustParseValue("2s").IsRed())
	assert.False(t, MustParseValue("2c").IsRed())
}

func TestShuffledIsPermutation(t *testing.T) {
	a := Shuffled(randutil.New(7))
	b := Shuffled(randutil.New(7))
	assert.Equal(t, a, b, "same seed must give the same deal")

	seen := make(map[Value]bool, DeckSize)
	for _, v := range a {
		assert.False(t, v.FaceUp())
		assert.NotEqual(t, NoSuit, v.Suit())
		assert.NotEqual(t, NoRank, v.Rank())
		seen[v] = true
	}
	assert.Len(t, seen, DeckSize)
	assert.NotEqual(t, Ordered(), a)
}
