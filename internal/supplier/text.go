package supplier

import (
	"strconv"

	"github.com/jask/playingcards/internal/card"
)

// Text supplies short labels for character-cell backends.
type Text struct{}

func (Text) Supply(f card.Face) Visual {
	v := Visual{Key: Key(f)}
	switch {
	case !f.FaceUp:
		v.Label = "░░"
		v.Fill = f.BackColor
	case f.IsJoker():
		v.Label = "JK"
		v.Fill = f.Joker.String()
	default:
		v.Label = rankLabel(f.Rank) + suitSymbol(f.Suit)
		v.Fill = "black"
		if f.Suit.IsRed() {
			v.Fill = "red"
		}
	}
	return v
}

func rankLabel(r card.Rank) string {
	switch r {
	case card.Ace:
		return "A"
	case card.Jack:
		return "J"
	case card.Queen:
		return "Q"
	case card.King:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

func suitSymbol(s card.Suit) string {
	switch s {
	case card.Clubs:
		return "♣"
	case card.Diamonds:
		return "♦"
	case card.Hearts:
		return "♥"
	case card.Spades:
		return "♠"
	default:
		return "?"
	}
}
