package cards

import rand "math/rand/v2"

// Ordered returns all 52 face-down values, hearts through clubs, ace to king.
func Ordered() [DeckSize]Value {
	var out [DeckSize]Value
	i := 0
	for suit := Hearts; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			out[i] = NewValue(suit, rank, false)
			i++
		}
	}
	return out
}

// Shuffled returns the 52 face-down values in an order drawn from rng.
func Shuffled(rng *rand.Rand) [DeckSize]Value {
	out := Ordered()
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
