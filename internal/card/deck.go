package card

// Deck is an ordered set of distinct cards sharing a back color.
type Deck struct {
	name  string
	back  string
	cards []*Card
}

// NewDeck returns a 52-card deck plus the given number of jokers, all face
// down. Cards are ordered by suit (clubs, diamonds, hearts, spades) and rank
// (ace to king); jokers follow, alternating red and black.
func NewDeck(name, back string, jokers int) *Deck {
	d := &Deck{name: name, back: back}
	cards := make([]*Card, 0, 52+max(jokers, 0))
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			cards = append(cards, New(r, s, back))
		}
	}
	for i := 0; i < jokers; i++ {
		color := RedJoker
		if i%2 == 1 {
			color = BlackJoker
		}
		cards = append(cards, NewJoker(color, back))
	}
	// Fresh cards have no holder, binding cannot fail.
	_ = Bind(d, cards...)
	d.cards = cards
	return d
}

func (d *Deck) Name() string      { return d.name }
func (d *Deck) BackColor() string { return d.back }
func (d *Deck) Count() int        { return len(d.cards) }

// Cards returns a copy of the cards still in the deck.
func (d *Deck) Cards() []*Card {
	out := make([]*Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Drain releases and returns every card, leaving the deck empty.
func (d *Deck) Drain() []*Card {
	out := d.cards
	Release(d, out...)
	d.cards = nil
	return out
}
