package game

import (
	"errors"
	"fmt"

	"github.com/jask/playingcards/internal/card"
	"github.com/jask/playingcards/internal/layout"
	"github.com/jask/playingcards/internal/model"
	"github.com/jask/playingcards/internal/view"
)

var ErrNoName = errors.New("no name specified in pile")

// PileSpec describes a pile to create.
type PileSpec struct {
	Name string
	// Deck names a registered deck whose cards seed the pile.
	Deck      string
	Invariant model.Invariant
	Fanning   layout.Fan
	Position  layout.Point
	Rotation  float64
	Options   view.Options
}

// Pile is a named pile on the table: one model and the one view bound to it.
type Pile struct {
	name  string
	model *model.Pile
	view  *view.PileView
}

// NewPile creates a pile from spec and places it on the table.
func (g *Game) NewPile(spec PileSpec) (*Pile, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w (deck %q, fanning %s, position %g,%g)",
			ErrNoName, spec.Deck, spec.Fanning, spec.Position.X, spec.Position.Y)
	}
	if _, ok := g.Pile(spec.Name); ok {
		return nil, fmt.Errorf("pile %q already exists", spec.Name)
	}

	inv := spec.Invariant
	if inv == nil {
		inv = model.Always
	}
	var seed []*card.Card
	if spec.Deck != "" {
		d, ok := g.decks[spec.Deck]
		if !ok {
			return nil, fmt.Errorf("pile %q: unknown deck %q", spec.Name, spec.Deck)
		}
		if !inv(d.Cards()) {
			return nil, fmt.Errorf("new pile: %w", &model.InvariantError{Pile: spec.Name, Op: "seed"})
		}
		// Cards move from the deck to the pile.
		seed = d.Drain()
	}

	var opts []model.PileOption
	if g.rng != nil {
		opts = append(opts, model.WithRand(g.rng))
	}
	m, err := model.NewPile(spec.Name, inv, seed, opts...)
	if err != nil {
		return nil, err
	}
	if err := g.table.AddPile(m); err != nil {
		return nil, err
	}
	v, err := view.NewPileView(g.view, m, g.supplier,
		view.WithFan(spec.Fanning),
		view.WithPosition(spec.Position.X, spec.Position.Y),
		view.WithRotation(spec.Rotation),
		view.WithOptions(spec.Options),
	)
	if err != nil {
		_ = g.table.RemovePile(spec.Name)
		return nil, err
	}
	p := &Pile{name: spec.Name, model: m, view: v}
	g.piles = append(g.piles, p)
	return p, nil
}

func (p *Pile) Name() string         { return p.name }
func (p *Pile) Model() *model.Pile   { return p.model }
func (p *Pile) View() *view.PileView { return p.view }
func (p *Pile) Fanning() layout.Fan  { return p.view.Fanning() }
func (p *Pile) IsSquared() bool      { return p.view.Fanning() == layout.None }
func (p *Pile) IsFanned() bool       { return !p.IsSquared() }
func (p *Pile) X() float64           { return p.view.Position().X }
func (p *Pile) Y() float64           { return p.view.Position().Y }
func (p *Pile) Rotation() float64    { return p.view.Rotation() }

// SetX moves the pile horizontally and re-renders.
func (p *Pile) SetX(x float64) error { return p.view.SetX(x) }

// SetY moves the pile vertically and re-renders.
func (p *Pile) SetY(y float64) error { return p.view.SetY(y) }

// SetRotation turns the pile and re-renders.
func (p *Pile) SetRotation(deg float64) error { return p.view.SetRotation(deg) }

// SetFanning changes the fan style and re-renders.
func (p *Pile) SetFanning(f layout.Fan) error { return p.view.SetFanning(f) }

// SetFanningName changes the fan style by name. Unknown names square the
// pile.
func (p *Pile) SetFanningName(name string) error {
	f, _ := layout.ParseFan(name)
	return p.view.SetFanning(f)
}
