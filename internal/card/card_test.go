package card

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type holder string

func (h holder) Name() string { return string(h) }

func TestNewDeck(t *testing.T) {
	t.Parallel()

	d := NewDeck("main", "maroon", 2)
	require.Equal(t, 54, d.Count())

	cards := d.Cards()
	require.Equal(t, "Ace of Clubs", cards[0].Name())
	require.Equal(t, "King of Spades", cards[51].Name())
	require.Equal(t, "red joker", cards[52].Name())
	require.Equal(t, "black joker", cards[53].Name())

	seen := map[*Card]bool{}
	for _, c := range cards {
		require.False(t, seen[c])
		seen[c] = true
		require.True(t, c.IsFaceDown())
		require.Equal(t, "maroon", c.BackColor())
		require.Equal(t, Holder(d), c.Holder())
	}
}

func TestDrainReleasesCards(t *testing.T) {
	t.Parallel()

	d := NewDeck("main", "blue", 0)
	cards := d.Drain()
	require.Len(t, cards, 52)
	require.Equal(t, 0, d.Count())
	for _, c := range cards {
		require.Nil(t, c.Holder())
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	ace := New(Ace, Hearts, "red")
	require.True(t, ace.IsPipCard())
	require.Equal(t, 1, ace.Pips())
	require.False(t, ace.IsJoker())

	king := New(King, Spades, "red")
	require.False(t, king.IsPipCard())
	require.Equal(t, 0, king.Pips())

	joker := NewJoker(BlackJoker, "red")
	require.True(t, joker.IsJoker())
	require.False(t, joker.IsPipCard())
	require.True(t, joker.Face().IsJoker())
}

func TestTurn(t *testing.T) {
	t.Parallel()

	c := New(Ten, Diamonds, "blue")
	require.True(t, c.IsFaceDown())
	c.Turn()
	require.True(t, c.IsFaceUp())
	require.True(t, c.Face().FaceUp)
	c.Turn()
	require.True(t, c.IsFaceDown())
	c.TurnUp()
	c.TurnUp()
	require.Equal(t, FaceUp, c.Facing())
}

func TestBindIsAllOrNothing(t *testing.T) {
	t.Parallel()

	a, b := holder("pile A"), holder("pile B")
	one, two := New(Two, Clubs, ""), New(Three, Clubs, "")

	require.NoError(t, Bind(a, one))
	err := Bind(b, two, one)
	require.ErrorIs(t, err, ErrHeld)
	require.Contains(t, err.Error(), "pile A")
	require.Nil(t, two.Holder())

	require.ErrorIs(t, Bind(b, two, two), ErrHeld)

	Release(b, one)
	require.Equal(t, Holder(a), one.Holder(), "release by a non-owner is ignored")
	Release(a, one)
	require.NoError(t, Bind(b, one, two))
}
