package view

import (
	"github.com/jask/playingcards/internal/model"
	"github.com/jask/playingcards/internal/scene"
)

// TableView is the root view of a playing surface. It composes the views of
// the piles currently on its table, in table order.
type TableView struct {
	Base
	table    *model.Table
	children []*PileView
	renders  int
}

// NewTableView binds a root view to t.
func NewTableView(t *model.Table, opts Options) (*TableView, error) {
	v := &TableView{
		Base:  newBase(nil, t, opts),
		table: t,
	}
	if err := v.bind(v); err != nil {
		return nil, err
	}
	return v, v.Render()
}

// Table returns the bound model.
func (v *TableView) Table() *model.Table { return v.table }

func (v *TableView) adopt(child *PileView) {
	v.children = append(v.children, child)
}

// Children returns the pile views of piles still on the table, in table
// order.
func (v *TableView) Children() []*PileView {
	var out []*PileView
	for _, p := range v.table.Piles() {
		for _, c := range v.children {
			if c.pile == p {
				out = append(out, c)
			}
		}
	}
	return out
}

// Lookup finds this view or one of its children by id.
func (v *TableView) Lookup(id string) (View, bool) {
	if id == v.id {
		return v, true
	}
	for _, c := range v.Children() {
		if c.id == id {
			return c, true
		}
	}
	return nil, false
}

// Render re-renders every child.
func (v *TableView) Render() error {
	for _, c := range v.Children() {
		if err := c.Render(); err != nil {
			return err
		}
	}
	v.renders++
	return nil
}

// Scene composes the latest child scenes under a group translated by the
// "x" and "y" options.
func (v *TableView) Scene() *scene.Group {
	g := &scene.Group{
		ID:    v.id,
		Name:  v.table.Name(),
		Class: v.config.Text("class", "table"),
		X:     v.config.Float("x", 0),
		Y:     v.config.Float("y", 0),
	}
	for _, c := range v.Children() {
		g.Children = append(g.Children, c.Scene())
	}
	return g
}

// Renders counts completed renders.
func (v *TableView) Renders() int { return v.renders }
