package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stack attaches cards first..last on head in order and returns them.
func stack(t *testing.T, a *Arena, head Node, first, last int) []Node {
	t.Helper()
	var out []Node
	parent := head
	for id := first; id <= last; id++ {
		c := Card(id)
		require.NoError(t, a.SetParent(c, parent))
		out = append(out, c)
		parent = c
	}
	return out
}

func TestSetChildAndDetach(t *testing.T) {
	a := New()
	head := Head(0)

	require.NoError(t, a.SetChild(head, Card(1)))
	err := a.SetChild(head, Card(2))
	assert.ErrorIs(t, err, ErrOccupied)

	got, err := a.DetachChild(head)
	require.NoError(t, err)
	assert.Equal(t, Card(1), got)

	_, err = a.DetachChild(head)
	assert.ErrorIs(t, err, ErrNoChild)

	assert.ErrorIs(t, a.SetChild(head, head), ErrNotCard)
	assert.ErrorIs(t, a.SetChild(None, Card(1)), ErrBadNode)
}

func TestCountChildren(t *testing.T) {
	for _, n := range []int{0, 1, 3, 13, MaxCards} {
		a := New()
		head := Head(2)
		cards := stack(t, a, head, 1, n)
		assert.Equal(t, n, a.CountChildren(head), "after %d attaches", n)

		for i := len(cards) - 1; i >= 0; i-- {
			parent := head
			if i > 0 {
				parent = cards[i-1]
			}
			_, err := a.DetachChild(parent)
			require.NoError(t, err)
		}
		assert.Equal(t, 0, a.CountChildren(head))
	}
}

func TestChildN(t *testing.T) {
	a := New()
	head := Head(0)
	cards := stack(t, a, head, 10, 14)

	t.Run("in range returns attach order", func(t *testing.T) {
		for k, want := range cards {
			got, err := a.ChildN(head, k)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("one past the tail is none", func(t *testing.T) {
		got, err := a.ChildN(head, len(cards))
		require.NoError(t, err)
		assert.Equal(t, None, got)
	})

	t.Run("beyond one past fails", func(t *testing.T) {
		_, err := a.ChildN(head, len(cards)+1)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("negative counts from the tail", func(t *testing.T) {
		got, err := a.ChildN(head, -1)
		require.NoError(t, err)
		assert.Equal(t, cards[4], got)

		got, err = a.ChildN(head, -5)
		require.NoError(t, err)
		assert.Equal(t, cards[0], got)

		_, err = a.ChildN(head, -6)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("relative to a card", func(t *testing.T) {
		got, err := a.ChildN(cards[1], 0)
		require.NoError(t, err)
		assert.Equal(t, cards[2], got)
	})

	t.Run("empty pile", func(t *testing.T) {
		got, err := a.ChildN(Head(1), 0)
		require.NoError(t, err)
		assert.Equal(t, None, got)
	})
}

func TestDownToNthLastChild(t *testing.T) {
	a := New()
	head := Head(0)
	cards := stack(t, a, head, 1, 6)

	got, err := a.DownToNthLastChild(head, 3)
	require.NoError(t, err)
	assert.Equal(t, cards[3], got)

	got, err = a.DownToNthLastChild(head, 1)
	require.NoError(t, err)
	assert.Equal(t, cards[5], got)

	for _, n := range []int{6, 7, 52} {
		got, err = a.DownToNthLastChild(head, n)
		require.NoError(t, err)
		assert.Equal(t, cards[0], got, "n=%d returns the whole chain", n)
	}

	got, err = a.DownToNthLastChild(Head(1), 3)
	require.NoError(t, err)
	assert.Equal(t, None, got)

	_, err = a.DownToNthLastChild(head, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestReplaceParent(t *testing.T) {
	a := New()
	from, to := Head(0), Head(1)
	cards := stack(t, a, from, 1, 4)

	old, err := a.ReplaceParent(cards[2], to)
	require.NoError(t, err)
	assert.Equal(t, cards[1], old)

	assert.Equal(t, 2, a.CountChildren(from))
	assert.Equal(t, 2, a.CountChildren(to))
	assert.Equal(t, to, a.Parent(cards[2]))
	assert.Equal(t, cards[3], a.Child(cards[2]), "the run moves with its base card")
	assert.Equal(t, to, a.Root(cards[3]))
	assert.Equal(t, from, a.Root(cards[1]))

	back, err := a.ReplaceParent(cards[2], old)
	require.NoError(t, err)
	assert.Equal(t, to, back)
	assert.Equal(t, 4, a.CountChildren(from))
	assert.Equal(t, 0, a.CountChildren(to))
}

func TestReplaceParentLeavesArenaUntouchedOnError(t *testing.T) {
	a := New()
	from, to := Head(0), Head(1)
	cards := stack(t, a, from, 1, 3)
	stack(t, a, to, 10, 10)

	before := *a

	_, err := a.ReplaceParent(cards[1], to)
	assert.ErrorIs(t, err, ErrOccupied)

	_, err = a.ReplaceParent(cards[0], cards[2])
	assert.ErrorIs(t, err, ErrCycle)

	_, err = a.ReplaceParent(Card(30), Head(3))
	assert.ErrorIs(t, err, ErrNoParent)

	_, err = a.ReplaceParent(from, Head(3))
	assert.ErrorIs(t, err, ErrNotCard)

	assert.Equal(t, before, *a)
}

func TestSetParent(t *testing.T) {
	a := New()
	require.NoError(t, a.SetParent(Card(5), Head(0)))
	assert.ErrorIs(t, a.SetParent(Card(5), Head(1)), ErrHasParent)
	assert.ErrorIs(t, a.SetParent(Card(6), Head(0)), ErrOccupied)
	assert.Equal(t, None, a.Parent(Card(6)), "failed attach leaves the card detached")
}

func TestWalkTailAndIndex(t *testing.T) {
	a := New()
	head := Head(4)
	cards := stack(t, a, head, 20, 24)

	var seen []Node
	a.Walk(head, func(i int, c Node) bool {
		assert.Equal(t, len(seen), i)
		seen = append(seen, c)
		return true
	})
	assert.Equal(t, cards, seen)

	var firstTwo []Node
	a.Walk(head, func(i int, c Node) bool {
		firstTwo = append(firstTwo, c)
		return i < 1
	})
	assert.Equal(t, cards[:2], firstTwo)

	assert.Equal(t, cards[4], a.Tail(head))
	assert.Equal(t, None, a.Tail(Head(5)))
	assert.Equal(t, Head(5), a.TailOrSelf(Head(5)))

	for i, c := range cards {
		assert.Equal(t, i, a.IndexOf(c))
	}
	assert.Equal(t, -1, a.IndexOf(Card(1)))
}

func TestNodeKinds(t *testing.T) {
	assert.True(t, Card(1).IsCard())
	assert.True(t, Card(52).IsCard())
	assert.False(t, None.IsCard())
	assert.True(t, Head(0).IsHead())
	assert.False(t, Head(0).IsCard())
	assert.Equal(t, 3, Head(3).HeadIndex())
	assert.Equal(t, "card#7", Card(7).String())
	assert.Equal(t, "head#2", Head(2).String())
}
