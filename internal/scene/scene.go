// Package scene is the backend-neutral output of rendering: a tree of groups
// holding placed card sprites.
package scene

import "github.com/jask/playingcards/internal/supplier"

// Sprite is one card drawn at an absolute position.
type Sprite struct {
	Visual   supplier.Visual
	X, Y     float64
	Rotation float64
}

// Group is a translated set of sprites and child groups. Sprites are
// listed bottom first.
type Group struct {
	ID       string
	Name     string
	Class    string
	X, Y     float64
	Sprites  []Sprite
	Children []*Group
}

// Walk calls fn for every sprite under g, bottom first, with the
// accumulated translation of its ancestors applied.
func (g *Group) Walk(fn func(s Sprite)) {
	g.walk(0, 0, fn)
}

func (g *Group) walk(dx, dy float64, fn func(s Sprite)) {
	if g == nil {
		return
	}
	dx, dy = dx+g.X, dy+g.Y
	for _, s := range g.Sprites {
		s.X += dx
		s.Y += dy
		fn(s)
	}
	for _, c := range g.Children {
		c.walk(dx, dy, fn)
	}
}

// Find returns the group with the given id under g.
func (g *Group) Find(id string) *Group {
	if g == nil {
		return nil
	}
	if g.ID == id {
		return g
	}
	for _, c := range g.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}
