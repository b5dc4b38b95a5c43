package view

import (
	"fmt"

	"github.com/jask/playingcards/internal/layout"
	"github.com/jask/playingcards/internal/model"
	"github.com/jask/playingcards/internal/scene"
	"github.com/jask/playingcards/internal/supplier"
)

// PileView draws a pile with its fan layout. Position, rotation and fan are
// presentation state: changing them re-renders directly, without going
// through the model.
type PileView struct {
	Base
	pile       *model.Pile
	supplier   supplier.CardSupplier
	fan        layout.Fan
	transform  layout.Transform
	scene      *scene.Group
	placements []layout.Placement
	renders    int
}

// PileOption configures a PileView.
type PileOption func(*PileView)

func WithFan(f layout.Fan) PileOption {
	return func(v *PileView) { v.fan = f }
}

func WithPosition(x, y float64) PileOption {
	return func(v *PileView) { v.transform.X, v.transform.Y = x, y }
}

func WithRotation(deg float64) PileOption {
	return func(v *PileView) { v.transform.Rotation = deg }
}

func WithOptions(opts Options) PileOption {
	return func(v *PileView) { v.Configure(opts) }
}

// NewPileView binds a view to p and renders it. A non-nil parent adopts the
// view as a child.
func NewPileView(parent *TableView, p *model.Pile, s supplier.CardSupplier, opts ...PileOption) (*PileView, error) {
	if s == nil {
		return nil, fmt.Errorf("pile view %q: no card supplier", p.Name())
	}
	var pv View
	if parent != nil {
		pv = parent
	}
	v := &PileView{
		Base:     newBase(pv, p, nil),
		pile:     p,
		supplier: s,
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.bind(v); err != nil {
		return nil, err
	}
	if parent != nil {
		parent.adopt(v)
	}
	if err := v.Render(); err != nil {
		return nil, err
	}
	return v, nil
}

// Pile returns the bound model.
func (v *PileView) Pile() *model.Pile { return v.pile }

func (v *PileView) Fanning() layout.Fan { return v.fan }

func (v *PileView) Position() layout.Point {
	return layout.Point{X: v.transform.X, Y: v.transform.Y}
}

func (v *PileView) Rotation() float64 { return v.transform.Rotation }

// SetFanning changes the fan and re-renders.
func (v *PileView) SetFanning(f layout.Fan) error {
	v.fan = f
	return v.Render()
}

// SetPosition moves the pile anchor and re-renders.
func (v *PileView) SetPosition(x, y float64) error {
	v.transform.X, v.transform.Y = x, y
	return v.Render()
}

func (v *PileView) SetX(x float64) error { return v.SetPosition(x, v.transform.Y) }
func (v *PileView) SetY(y float64) error { return v.SetPosition(v.transform.X, y) }

// SetRotation turns the whole pile, in degrees, and re-renders.
func (v *PileView) SetRotation(deg float64) error {
	v.transform.Rotation = deg
	return v.Render()
}

func (v *PileView) spacing() layout.Spacing {
	return layout.Spacing{
		HStep: v.config.Float("hstep", 0),
		VStep: v.config.Float("vstep", 0),
	}
}

// Render lays out the current cards and asks the supplier for their
// visuals.
func (v *PileView) Render() error {
	cards := v.pile.Cards()
	placements := layout.Fanned(v.fan, len(cards), v.transform, v.spacing())
	g := &scene.Group{
		ID:      v.id,
		Name:    v.pile.Name(),
		Class:   v.config.Text("class", "pile"),
		Sprites: make([]scene.Sprite, len(cards)),
	}
	for i, c := range cards {
		p := placements[i]
		g.Sprites[i] = scene.Sprite{
			Visual:   v.supplier.Supply(c.Face()),
			X:        p.X,
			Y:        p.Y,
			Rotation: p.Rotation,
		}
	}
	v.scene = g
	v.placements = placements
	v.renders++
	return nil
}

// Scene returns the last rendered group.
func (v *PileView) Scene() *scene.Group { return v.scene }

// Placements returns the layout of the last render, bottom card first.
func (v *PileView) Placements() []layout.Placement {
	out := make([]layout.Placement, len(v.placements))
	copy(out, v.placements)
	return out
}

// Renders counts completed renders.
func (v *PileView) Renders() int { return v.renders }
