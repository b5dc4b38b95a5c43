package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/playingcards/internal/card"
	"github.com/jask/playingcards/internal/event"
	"github.com/jask/playingcards/internal/layout"
	"github.com/jask/playingcards/internal/model"
	"github.com/jask/playingcards/internal/supplier"
)

func newPile(t *testing.T, name string, n int, inv model.Invariant) *model.Pile {
	t.Helper()
	d := card.NewDeck(name, "maroon", 0)
	cards := d.Drain()[:n]
	p, err := model.NewPile(name, inv, cards)
	require.NoError(t, err)
	return p
}

func newTable(t *testing.T, piles ...*model.Pile) (*model.Table, *TableView) {
	t.Helper()
	table := model.NewTable("main")
	for _, p := range piles {
		require.NoError(t, table.AddPile(p))
	}
	tv, err := NewTableView(table, nil)
	require.NoError(t, err)
	return table, tv
}

func TestPileViewRendersOnModelChange(t *testing.T) {
	t.Parallel()

	p := newPile(t, "A", 3, nil)
	v, err := NewPileView(nil, p, supplier.NewSVGCards(""))
	require.NoError(t, err)
	require.Equal(t, 1, v.Renders())
	require.Len(t, v.Scene().Sprites, 3)
	require.Nil(t, v.Parent())
	require.Equal(t, model.Observable(p), v.Model())

	_, err = p.Take(1)
	require.NoError(t, err)
	require.Equal(t, 2, v.Renders())
	require.Len(t, v.Scene().Sprites, 2)

	require.NoError(t, p.Shuffle())
	require.Equal(t, 3, v.Renders())
}

func TestRejectedMutationDoesNotRender(t *testing.T) {
	t.Parallel()

	cell := newPile(t, "cell", 1, model.Cell)
	v, err := NewPileView(nil, cell, supplier.NewSVGCards(""))
	require.NoError(t, err)

	extra := card.New(card.Ace, card.Spades, "maroon")
	require.ErrorIs(t, cell.Add(extra), model.ErrInvariantViolated)
	require.Equal(t, 1, v.Renders())
}

func TestAttributeChangesRenderDirectly(t *testing.T) {
	t.Parallel()

	p := newPile(t, "A", 2, nil)
	changes := 0
	_, err := p.Subscribe(model.Changed, func(model.Change) error { changes++; return nil })
	require.NoError(t, err)

	v, err := NewPileView(nil, p, supplier.NewSVGCards(""), WithFan(layout.Right), WithPosition(10, 20))
	require.NoError(t, err)
	require.Equal(t, layout.Point{X: 10, Y: 20}, v.Position())

	require.NoError(t, v.SetPosition(100, 200))
	require.NoError(t, v.SetX(110))
	require.NoError(t, v.SetY(210))
	require.NoError(t, v.SetRotation(45))
	require.NoError(t, v.SetFanning(layout.Down))
	require.Equal(t, 6, v.Renders())
	require.Equal(t, 0, changes, "view attributes are not model state")
	require.Equal(t, layout.Point{X: 110, Y: 210}, v.Position())
	require.Equal(t, 45.0, v.Rotation())
	require.Equal(t, layout.Down, v.Fanning())

	ps := v.Placements()
	require.InDelta(t, 110, ps[0].X, 1e-9)
	require.InDelta(t, 210, ps[0].Y, 1e-9)
	require.InDelta(t, 45, ps[1].Rotation, 1e-9)
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	p := newPile(t, "A", 5, nil)
	for _, f := range layout.Fans {
		v, err := NewPileView(nil, p, supplier.NewSVGCards(""), WithFan(f), WithPosition(5, 7), WithRotation(30))
		require.NoError(t, err)
		first, firstScene := v.Placements(), v.Scene()
		require.NoError(t, v.Render())
		require.Equal(t, first, v.Placements())
		require.Equal(t, firstScene, v.Scene())
	}
}

func TestPileViewUsesSupplier(t *testing.T) {
	t.Parallel()

	p := newPile(t, "A", 2, nil)
	top := p.Top()
	top.TurnUp()

	var calls []card.Face
	s := supplier.Func(func(f card.Face) supplier.Visual {
		calls = append(calls, f)
		return supplier.Visual{Key: supplier.Key(f)}
	})
	v, err := NewPileView(nil, p, s, WithOptions(Options{"class": "stock"}))
	require.NoError(t, err)
	require.Len(t, calls, 2)
	g := v.Scene()
	require.Equal(t, "stock", g.Class)
	require.Equal(t, "A", g.Name)
	require.Equal(t, v.ID(), g.ID)
	require.Equal(t, "back", g.Sprites[0].Visual.Key)
	require.Equal(t, "2_club", g.Sprites[1].Visual.Key)
}

func TestNoSupplierFails(t *testing.T) {
	t.Parallel()

	_, err := NewPileView(nil, newPile(t, "A", 0, nil), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), `"A"`)
}

func TestSpacingOptions(t *testing.T) {
	t.Parallel()

	p := newPile(t, "A", 3, nil)
	v, err := NewPileView(nil, p, supplier.Text{}, WithFan(layout.Up), WithOptions(Options{"vstep": 10}))
	require.NoError(t, err)
	require.InDelta(t, -20, v.Placements()[2].Y, 1e-9)

	v.Configure(Options{"vstep": "5"})
	require.InDelta(t, -20, v.Placements()[2].Y, 1e-9, "configure does not render")
	require.NoError(t, v.Render())
	require.InDelta(t, -10, v.Placements()[2].Y, 1e-9)
}

func TestConfigureMerges(t *testing.T) {
	t.Parallel()

	_, tv := newTable(t)
	tv.Configure(Options{"x": 1, "class": "felt"})
	tv.Configure(Options{"x": 2.5})
	cfg := tv.Config()
	require.Equal(t, Options{"x": 2.5, "class": "felt"}, cfg)

	cfg["x"] = 99
	require.Equal(t, 2.5, tv.Config()["x"], "config is returned as a copy")
}

func TestInteractionEvents(t *testing.T) {
	t.Parallel()

	p := newPile(t, "A", 1, nil)
	v, err := NewPileView(nil, p, supplier.Text{})
	require.NoError(t, err)

	var got []Gesture
	for _, e := range Events {
		_, err := v.Subscribe(e, func(g Gesture) error { got = append(got, g); return nil })
		require.NoError(t, err)
	}
	require.NoError(t, v.Emit(Click, Gesture{X: 1, Y: 2}))
	require.NoError(t, v.Emit(Drop, Gesture{Card: p.Top()}))
	require.Len(t, got, 2)
	require.Equal(t, View(v), got[0].Source)
	require.Equal(t, 1.0, got[0].X)
	require.Equal(t, p.Top(), got[1].Card)
	require.Equal(t, 1, p.Count(), "gestures never touch the model")

	_, err = v.Subscribe(Event(42), func(Gesture) error { return nil })
	require.ErrorIs(t, err, event.ErrUnknownEvent)
	require.Contains(t, err.Error(), v.ID())
	require.ErrorIs(t, v.Unsubscribe(Event(42)), event.ErrUnknownEvent)
	require.NoError(t, v.Emit(Event(42), Gesture{}))

	require.NoError(t, v.Unsubscribe(Click))
	require.NoError(t, v.Emit(Click, Gesture{}))
	require.Len(t, got, 2)
}

func TestRenderErrorReachesMutator(t *testing.T) {
	t.Parallel()

	p := newPile(t, "A", 2, nil)
	boom := errors.New("boom")
	_, err := NewPileView(nil, p, supplier.Text{})
	require.NoError(t, err)
	_, err = p.Subscribe(model.Changed, func(model.Change) error { return boom })
	require.NoError(t, err)

	_, err = p.Take(1)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, p.Count())
}

func TestTableViewComposesChildren(t *testing.T) {
	t.Parallel()

	a, b := newPile(t, "A", 2, nil), newPile(t, "B", 0, nil)
	table, tv := newTable(t, a, b)
	tv.Configure(Options{"x": 10, "y": 20})

	bv, err := NewPileView(tv, b, supplier.Text{}, WithPosition(300, 100))
	require.NoError(t, err)
	av, err := NewPileView(tv, a, supplier.Text{}, WithPosition(100, 100))
	require.NoError(t, err)
	require.Equal(t, View(tv), av.Parent())
	require.Equal(t, []*PileView{av, bv}, tv.Children(), "children follow table order")

	root := tv.Scene()
	require.Equal(t, 10.0, root.X)
	require.Len(t, root.Children, 2)
	require.Equal(t, "A", root.Children[0].Name)

	found, ok := tv.Lookup(bv.ID())
	require.True(t, ok)
	require.Equal(t, View(bv), found)
	found, ok = tv.Lookup(tv.ID())
	require.True(t, ok)
	require.Equal(t, View(tv), found)
	_, ok = tv.Lookup("missing")
	require.False(t, ok)

	top, err := a.TakeOne()
	require.NoError(t, err)
	require.NoError(t, b.Add(top))
	root = tv.Scene()
	require.Len(t, root.Children[0].Sprites, 1)
	require.Len(t, root.Children[1].Sprites, 1)

	before := av.Renders()
	require.NoError(t, tv.Render())
	require.Equal(t, before+1, av.Renders())

	require.NoError(t, table.RemovePile("A"))
	require.Equal(t, []*PileView{bv}, tv.Children())
	require.Len(t, tv.Scene().Children, 1)
}

func TestDispatchBubblesToTable(t *testing.T) {
	t.Parallel()

	a := newPile(t, "A", 1, nil)
	_, tv := newTable(t, a)
	av, err := NewPileView(tv, a, supplier.Text{})
	require.NoError(t, err)

	var order []string
	_, err = av.Subscribe(Click, func(g Gesture) error {
		order = append(order, "pile")
		require.Equal(t, View(av), g.Source)
		return nil
	})
	require.NoError(t, err)
	_, err = tv.Subscribe(Click, func(g Gesture) error {
		order = append(order, "table")
		require.Equal(t, View(av), g.Source)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, Dispatch(av, Click, Gesture{}))
	require.Equal(t, []string{"pile", "table"}, order)

	boom := errors.New("boom")
	_, err = av.Subscribe(Click, func(Gesture) error { return boom })
	require.NoError(t, err)
	require.ErrorIs(t, Dispatch(av, Click, Gesture{}), boom)
	require.Equal(t, []string{"pile", "table", "pile"}, order)
}
