package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/jask/playingcards/internal/card"
	"github.com/jask/playingcards/internal/config"
	"github.com/jask/playingcards/internal/layout"
	"github.com/jask/playingcards/internal/supplier"
	"github.com/jask/playingcards/internal/view"
)

// FromConfig assembles a game from configuration: decks first, then piles in
// file order. Piles marked face_up have their cards turned up and piles
// marked shuffle are shuffled once after creation.
func FromConfig(cfg config.Config, s supplier.CardSupplier, opts ...Option) (*Game, error) {
	name := cfg.Table.Name
	if name == "" {
		name = "table"
	}
	opts = append([]Option{WithTableOptions(view.Options{"x": cfg.Table.X, "y": cfg.Table.Y})}, opts...)
	g, err := New(name, s, opts...)
	if err != nil {
		return nil, err
	}
	for _, dc := range cfg.Decks {
		if dc.Name == "" {
			g.Close()
			return nil, errors.New("deck without a name")
		}
		if err := g.AddDeck(card.NewDeck(dc.Name, dc.BackColor, dc.Jokers)); err != nil {
			g.Close()
			return nil, err
		}
	}
	for _, pc := range cfg.Piles {
		if err := g.addConfiguredPile(pc); err != nil {
			g.Close()
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) addConfiguredPile(pc config.PileConfig) error {
	inv, err := g.ParseInvariant(pc.Invariant)
	if err != nil {
		return fmt.Errorf("pile %q: %w", pc.Name, err)
	}
	fan, ok := layout.ParseFan(pc.Fanning)
	if !ok {
		if guess, found := layout.Suggest(pc.Fanning); found {
			log.Printf("warn: pile %q: unknown fanning %q, did you mean %q?", pc.Name, pc.Fanning, guess)
		} else {
			log.Printf("warn: pile %q: unknown fanning %q, squaring", pc.Name, pc.Fanning)
		}
	}
	if pc.FaceUp && pc.Deck != "" {
		if d, ok := g.decks[pc.Deck]; ok {
			for _, c := range d.Cards() {
				c.TurnUp()
			}
		}
	}
	p, err := g.NewPile(PileSpec{
		Name:      pc.Name,
		Deck:      pc.Deck,
		Invariant: inv,
		Fanning:   fan,
		Position:  layout.Point{X: pc.X, Y: pc.Y},
		Rotation:  pc.Rotation,
	})
	if err != nil {
		return err
	}
	if pc.Shuffle {
		return p.model.Shuffle()
	}
	return nil
}
