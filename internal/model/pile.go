package model

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/jask/playingcards/internal/card"
)

var (
	ErrInvariantViolated = errors.New("pile invariant violated")
	ErrUnderflow         = errors.New("pile underflow")
	ErrInvalidCount      = errors.New("invalid card count")
)

// InvariantError reports a mutation rejected by a pile's invariant.
type InvariantError struct {
	Pile string
	Op   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("pile %q: %s rejected: invariant violated", e.Pile, e.Op)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolated }

// UnderflowError reports a take of more cards than a pile holds.
type UnderflowError struct {
	Pile      string
	Requested int
	Available int
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("pile %q: cannot take %d cards, only %d present", e.Pile, e.Requested, e.Available)
}

func (e *UnderflowError) Unwrap() error { return ErrUnderflow }

// Pile is an ordered stack of cards guarded by an invariant. Index 0 is the
// bottom card, the last index the top.
type Pile struct {
	notifier
	name      string
	invariant Invariant
	cards     []*card.Card
	rng       *rand.Rand
}

// PileOption configures a Pile.
type PileOption func(*Pile)

// WithRand sets the random source used by Shuffle.
func WithRand(r *rand.Rand) PileOption {
	return func(p *Pile) { p.rng = r }
}

// NewPile returns a pile holding cards, bottom first. A nil invariant
// accepts every state. The seed must satisfy the invariant and every card
// must be unowned.
func NewPile(name string, inv Invariant, cards []*card.Card, opts ...PileOption) (*Pile, error) {
	if inv == nil {
		inv = Always
	}
	p := &Pile{
		notifier:  newNotifier("pile " + name),
		name:      name,
		invariant: inv,
	}
	for _, opt := range opts {
		opt(p)
	}
	seed := make([]*card.Card, len(cards))
	copy(seed, cards)
	if !inv(seed) {
		return nil, fmt.Errorf("new pile: %w", &InvariantError{Pile: name, Op: "seed"})
	}
	if err := card.Bind(p, seed...); err != nil {
		return nil, fmt.Errorf("new pile %q: %w", name, err)
	}
	p.cards = seed
	return p, nil
}

func (p *Pile) Name() string  { return p.name }
func (p *Pile) Count() int    { return len(p.cards) }
func (p *Pile) IsEmpty() bool { return len(p.cards) == 0 }

// Top returns the top card, or nil for an empty pile.
func (p *Pile) Top() *card.Card {
	if len(p.cards) == 0 {
		return nil
	}
	return p.cards[len(p.cards)-1]
}

// Cards returns a copy of the contents, bottom first.
func (p *Pile) Cards() []*card.Card {
	out := make([]*card.Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// Each returns a sequence over the contents at the time of the call, bottom
// first. Later mutations do not affect it and it can be ranged over again.
func (p *Pile) Each() iter.Seq[*card.Card] {
	snapshot := p.Cards()
	return func(yield func(*card.Card) bool) {
		for _, c := range snapshot {
			if !yield(c) {
				return
			}
		}
	}
}

// Add puts cards on top, in order. When the resulting contents would break
// the invariant the pile is left untouched and nothing is emitted.
func (p *Pile) Add(cards ...*card.Card) error {
	if len(cards) == 0 {
		return nil
	}
	proposed := make([]*card.Card, 0, len(p.cards)+len(cards))
	proposed = append(proposed, p.cards...)
	proposed = append(proposed, cards...)
	if !p.invariant(proposed) {
		return &InvariantError{Pile: p.name, Op: "add"}
	}
	if err := card.Bind(p, cards...); err != nil {
		return fmt.Errorf("pile %q: add: %w", p.name, err)
	}
	p.cards = proposed
	return p.changed(p)
}

// Take removes the top n cards and returns them top-most first.
func (p *Pile) Take(n int) ([]*card.Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("pile %q: take %d: %w", p.name, n, ErrInvalidCount)
	}
	if n > len(p.cards) {
		return nil, &UnderflowError{Pile: p.name, Requested: n, Available: len(p.cards)}
	}
	if n == 0 {
		return []*card.Card{}, nil
	}
	rest := len(p.cards) - n
	proposed := make([]*card.Card, rest)
	copy(proposed, p.cards[:rest])
	if !p.invariant(proposed) {
		return nil, &InvariantError{Pile: p.name, Op: "take"}
	}
	taken := make([]*card.Card, 0, n)
	for i := len(p.cards) - 1; i >= rest; i-- {
		taken = append(taken, p.cards[i])
	}
	card.Release(p, taken...)
	p.cards = proposed
	return taken, p.changed(p)
}

// TakeOne removes and returns the top card.
func (p *Pile) TakeOne() (*card.Card, error) {
	cards, err := p.Take(1)
	if len(cards) == 0 {
		return nil, err
	}
	return cards[0], err
}

// Shuffle puts the cards in a uniformly random order. It notifies even when
// the order cannot change.
func (p *Pile) Shuffle() error {
	proposed := p.Cards()
	shuffle := rand.Shuffle
	if p.rng != nil {
		shuffle = p.rng.Shuffle
	}
	shuffle(len(proposed), func(i, j int) { proposed[i], proposed[j] = proposed[j], proposed[i] })
	if !p.invariant(proposed) {
		return &InvariantError{Pile: p.name, Op: "shuffle"}
	}
	p.cards = proposed
	return p.changed(p)
}

func (p *Pile) String() string {
	return fmt.Sprintf("pile %q (%d cards)", p.name, len(p.cards))
}
