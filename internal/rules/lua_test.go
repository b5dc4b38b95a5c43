package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/playingcards/internal/card"
	"github.com/jask/playingcards/internal/model"
)

func compile(t *testing.T, src string) *Script {
	t.Helper()
	s, err := Compile(src)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestExpression(t *testing.T) {
	t.Parallel()

	s := compile(t, "count <= 1")
	require.Equal(t, "count <= 1", s.Source())

	ok, err := s.Eval(nil)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Eval([]*card.Card{card.New(card.Ace, card.Hearts, ""), card.New(card.Two, card.Hearts, "")})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCardFields(t *testing.T) {
	t.Parallel()

	s := compile(t, `count == 0 or (cards[count].face_up and cards[count].suit == "heart" and cards[count].rank == 12)`)
	queen := card.New(card.Queen, card.Hearts, "")
	ok, err := s.Eval([]*card.Card{queen})
	require.NoError(t, err)
	require.False(t, ok)

	queen.TurnUp()
	ok, err = s.Eval([]*card.Card{queen})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestChunk(t *testing.T) {
	t.Parallel()

	s := compile(t, `
		for i = 1, count do
			if cards[i].joker then return false end
		end
		return true`)
	ok, err := s.Eval([]*card.Card{card.NewJoker(card.RedJoker, "")})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCompileError(t *testing.T) {
	t.Parallel()

	_, err := Compile("count <=")
	require.Error(t, err)
	require.Contains(t, err.Error(), "count <=")
}

func TestNonBooleanRejects(t *testing.T) {
	t.Parallel()

	s := compile(t, "count")
	_, err := s.Eval(nil)
	require.ErrorIs(t, err, ErrNotBoolean)
	require.False(t, s.Invariant()(nil))
}

func TestRuntimeErrorRejects(t *testing.T) {
	t.Parallel()

	s := compile(t, "cards[1].face_up")
	_, err := s.Eval(nil)
	require.Error(t, err)
	require.False(t, s.Invariant()(nil))
}

func TestGuardsPile(t *testing.T) {
	t.Parallel()

	s := compile(t, "count <= 2")
	p, err := model.NewPile("tableau", s.Invariant(), nil)
	require.NoError(t, err)

	cards := card.NewDeck("d", "", 0).Drain()
	require.NoError(t, p.Add(cards[0], cards[1]))
	require.ErrorIs(t, p.Add(cards[2]), model.ErrInvariantViolated)
	require.Equal(t, 2, p.Count())
}
