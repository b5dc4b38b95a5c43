// Package card defines playing cards, decks and card ownership.
package card

import (
	"errors"
	"fmt"
	"strconv"
)

// Suit of a card. Jokers have no suit.
type Suit uint8

const (
	NoSuit Suit = iota
	Clubs
	Diamonds
	Hearts
	Spades
)

// Suits lists the four suits in deck order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	default:
		return "none"
	}
}

// Singular returns the lower-case singular suit name ("heart").
func (s Suit) Singular() string {
	switch s {
	case Clubs:
		return "club"
	case Diamonds:
		return "diamond"
	case Hearts:
		return "heart"
	case Spades:
		return "spade"
	default:
		return ""
	}
}

// IsRed reports whether the suit is diamonds or hearts.
func (s Suit) IsRed() bool { return s == Diamonds || s == Hearts }

// Rank of a card, Ace (1) through King (13). Jokers have NoRank.
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
)

func (r Rank) String() string {
	switch r {
	case Ace:
		return "Ace"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case NoRank:
		return "none"
	default:
		return strconv.Itoa(int(r))
	}
}

// JokerColor distinguishes the two jokers of a deck.
type JokerColor uint8

const (
	NotJoker JokerColor = iota
	RedJoker
	BlackJoker
)

func (c JokerColor) String() string {
	switch c {
	case RedJoker:
		return "red"
	case BlackJoker:
		return "black"
	default:
		return ""
	}
}

// Facing of a card.
type Facing uint8

const (
	FaceDown Facing = iota
	FaceUp
)

func (f Facing) String() string {
	if f == FaceUp {
		return "face-up"
	}
	return "face-down"
}

// Card is a single playing card. Cards are handled by pointer: the pointer is
// the card's identity and is moved between holders, never copied.
type Card struct {
	rank   Rank
	suit   Suit
	joker  JokerColor
	facing Facing
	back   string
	holder Holder
}

// New returns a face-down card.
func New(rank Rank, suit Suit, back string) *Card {
	return &Card{rank: rank, suit: suit, back: back}
}

// NewJoker returns a face-down joker.
func NewJoker(color JokerColor, back string) *Card {
	return &Card{joker: color, back: back}
}

func (c *Card) Rank() Rank             { return c.rank }
func (c *Card) Suit() Suit             { return c.suit }
func (c *Card) JokerColor() JokerColor { return c.joker }
func (c *Card) BackColor() string      { return c.back }
func (c *Card) Facing() Facing         { return c.facing }
func (c *Card) IsJoker() bool          { return c.joker != NotJoker }
func (c *Card) IsFaceUp() bool         { return c.facing == FaceUp }
func (c *Card) IsFaceDown() bool       { return c.facing == FaceDown }

// IsPipCard reports whether the card is an ace through ten.
func (c *Card) IsPipCard() bool {
	return !c.IsJoker() && c.rank >= Ace && c.rank <= Ten
}

// Pips returns the number of pips on a pip card, 0 otherwise.
func (c *Card) Pips() int {
	if !c.IsPipCard() {
		return 0
	}
	return int(c.rank)
}

// Turn flips the card over.
func (c *Card) Turn() {
	if c.facing == FaceUp {
		c.facing = FaceDown
		return
	}
	c.facing = FaceUp
}

func (c *Card) TurnUp()   { c.facing = FaceUp }
func (c *Card) TurnDown() { c.facing = FaceDown }

// Name returns the card's name, e.g. "Ace of Hearts" or "red joker".
func (c *Card) Name() string {
	if c.IsJoker() {
		return c.joker.String() + " joker"
	}
	return c.rank.String() + " of " + c.suit.String()
}

func (c *Card) String() string { return c.Name() }

// Face is a read-only snapshot of a card's public state.
type Face struct {
	Rank      Rank
	Suit      Suit
	Joker     JokerColor
	FaceUp    bool
	BackColor string
}

// Face returns the current public state of the card.
func (c *Card) Face() Face {
	return Face{
		Rank:      c.rank,
		Suit:      c.suit,
		Joker:     c.joker,
		FaceUp:    c.facing == FaceUp,
		BackColor: c.back,
	}
}

// IsJoker reports whether the face belongs to a joker.
func (f Face) IsJoker() bool { return f.Joker != NotJoker }

// IsPipCard reports whether the face belongs to an ace through ten.
func (f Face) IsPipCard() bool {
	return !f.IsJoker() && f.Rank >= Ace && f.Rank <= Ten
}

// ErrHeld is returned when binding a card owned by another holder.
var ErrHeld = errors.New("card already held")

// Holder is anything that can own cards: a deck or a pile.
type Holder interface {
	Name() string
}

// Holder returns the card's current owner, or nil.
func (c *Card) Holder() Holder { return c.holder }

// Bind makes h the owner of every card. Cards must be unowned and distinct;
// otherwise none is bound.
func Bind(h Holder, cards ...*Card) error {
	seen := make(map[*Card]struct{}, len(cards))
	for _, c := range cards {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: %s listed twice for %q", ErrHeld, c, h.Name())
		}
		seen[c] = struct{}{}
		if c.holder == h {
			return fmt.Errorf("%w: %s is already in %q", ErrHeld, c, h.Name())
		}
		if c.holder != nil {
			return fmt.Errorf("%w: %s belongs to %q, not %q", ErrHeld, c, c.holder.Name(), h.Name())
		}
	}
	for _, c := range cards {
		c.holder = h
	}
	return nil
}

// Release clears the owner of every card held by h.
func Release(h Holder, cards ...*Card) {
	for _, c := range cards {
		if c.holder == h {
			c.holder = nil
		}
	}
}
