// Package supplier maps a card's public state to the visual that represents
// it. Suppliers are stateless; views only know the CardSupplier interface.
package supplier

import (
	"strconv"

	"github.com/jask/playingcards/internal/card"
)

// Visual references an asset for one card.
type Visual struct {
	// Key identifies the asset: "back", "red_joker", "1_heart", "king_spade".
	Key string
	// Href is Key resolved against the supplier's asset set.
	Href string
	// Fill colors the asset, the back color for face-down cards.
	Fill string
	// Label is a short text rendition, for text backends.
	Label string
}

// CardSupplier turns a card face into a Visual. Implementations must not
// keep or mutate state across calls.
type CardSupplier interface {
	Supply(f card.Face) Visual
}

// Func adapts a function to CardSupplier.
type Func func(card.Face) Visual

func (fn Func) Supply(f card.Face) Visual { return fn(f) }

// BackKey is the key of every face-down card.
const BackKey = "back"

// Key returns the asset key for a face.
func Key(f card.Face) string {
	switch {
	case !f.FaceUp:
		return BackKey
	case f.IsJoker():
		return f.Joker.String() + "_joker"
	case f.IsPipCard():
		return strconv.Itoa(int(f.Rank)) + "_" + f.Suit.Singular()
	default:
		return courtName(f.Rank) + "_" + f.Suit.Singular()
	}
}

func courtName(r card.Rank) string {
	switch r {
	case card.Jack:
		return "jack"
	case card.Queen:
		return "queen"
	case card.King:
		return "king"
	default:
		return strconv.Itoa(int(r))
	}
}
