package game

import (
	"fmt"

	"github.com/jask/playingcards/internal/card"
	"github.com/jask/playingcards/internal/event"
	"github.com/jask/playingcards/internal/view"
)

// Shuttle moves cards one at a time between two piles each time the table
// is clicked. Moved cards are turned face up. When the source runs out the
// piles trade roles.
type Shuttle struct {
	game     *Game
	from, to *Pile
	handler  event.HandlerID
}

// NewShuttle wires a shuttle between the piles named from and to.
func NewShuttle(g *Game, from, to string) (*Shuttle, error) {
	a, ok := g.Pile(from)
	if !ok {
		return nil, fmt.Errorf("shuttle: unknown pile %q", from)
	}
	b, ok := g.Pile(to)
	if !ok {
		return nil, fmt.Errorf("shuttle: unknown pile %q", to)
	}
	if a == b {
		return nil, fmt.Errorf("shuttle: pile %q on both ends", from)
	}
	s := &Shuttle{game: g, from: a, to: b}
	id, err := g.view.Subscribe(view.Click, func(view.Gesture) error {
		return s.Step()
	})
	if err != nil {
		return nil, err
	}
	s.handler = id
	return s, nil
}

// From returns the pile cards currently leave.
func (s *Shuttle) From() *Pile { return s.from }

// To returns the pile cards currently arrive at.
func (s *Shuttle) To() *Pile { return s.to }

// Step moves one card. Two empty piles are a no-op.
func (s *Shuttle) Step() error {
	if s.from.model.IsEmpty() {
		s.from, s.to = s.to, s.from
	}
	if s.from.model.IsEmpty() {
		return nil
	}
	c, err := s.from.model.TakeOne()
	if err != nil {
		return err
	}
	facing := c.Facing()
	c.TurnUp()
	if err := s.to.model.Add(c); err != nil {
		if facing == card.FaceDown {
			c.TurnDown()
		}
		if rerr := s.from.model.Add(c); rerr != nil {
			return fmt.Errorf("shuttle %s: %w (restore: %v)", c, err, rerr)
		}
		return fmt.Errorf("shuttle %s: %w", c, err)
	}
	return nil
}

// Stop detaches the shuttle from the table.
func (s *Shuttle) Stop() error {
	return s.game.view.Unsubscribe(view.Click, s.handler)
}
