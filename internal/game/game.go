// Package game is the context a card game is assembled in: its decks, its
// table and the piles on it.
package game

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"github.com/jask/playingcards/internal/card"
	"github.com/jask/playingcards/internal/model"
	"github.com/jask/playingcards/internal/rules"
	"github.com/jask/playingcards/internal/supplier"
	"github.com/jask/playingcards/internal/view"
)

// Game owns the decks, the table and its view.
type Game struct {
	supplier supplier.CardSupplier
	decks    map[string]*card.Deck
	table    *model.Table
	view     *view.TableView
	piles    []*Pile
	scripts  []*rules.Script
	rng      *rand.Rand
}

// Option configures a Game.
type Option func(*Game)

// WithRand makes every pile shuffle with r.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithTableOptions configures the table view.
func WithTableOptions(opts view.Options) Option {
	return func(g *Game) { g.view.Configure(opts) }
}

// New returns a game with an empty table named name.
func New(name string, s supplier.CardSupplier, opts ...Option) (*Game, error) {
	if s == nil {
		return nil, fmt.Errorf("game %q: no card supplier", name)
	}
	table := model.NewTable(name)
	tv, err := view.NewTableView(table, nil)
	if err != nil {
		return nil, fmt.Errorf("game %q: %w", name, err)
	}
	g := &Game{
		supplier: s,
		decks:    map[string]*card.Deck{},
		table:    table,
		view:     tv,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Game) Table() *model.Table             { return g.table }
func (g *Game) View() *view.TableView           { return g.view }
func (g *Game) Supplier() supplier.CardSupplier { return g.supplier }

// AddDeck registers d under its name.
func (g *Game) AddDeck(d *card.Deck) error {
	if _, ok := g.decks[d.Name()]; ok {
		return fmt.Errorf("deck %q already registered", d.Name())
	}
	g.decks[d.Name()] = d
	return nil
}

// Deck looks up a deck by name.
func (g *Game) Deck(name string) (*card.Deck, bool) {
	d, ok := g.decks[name]
	return d, ok
}

// DeckNames returns the registered deck names, sorted.
func (g *Game) DeckNames() []string {
	names := make([]string, 0, len(g.decks))
	for n := range g.decks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Piles returns the piles in creation order.
func (g *Game) Piles() []*Pile {
	out := make([]*Pile, len(g.piles))
	copy(out, g.piles)
	return out
}

// Pile looks up a pile by name.
func (g *Game) Pile(name string) (*Pile, bool) {
	for _, p := range g.piles {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// ParseInvariant parses an invariant description:
//
//	"" or "always"  accept everything
//	"face-down"     every card faces down
//	"face-up"       every card faces up
//	"cell"          at most one card
//	"max:N"         at most N cards
//	"lua:EXPR"      a Lua expression, see package rules
func (g *Game) ParseInvariant(src string) (model.Invariant, error) {
	s := strings.TrimSpace(src)
	switch strings.ToLower(s) {
	case "", "always":
		return model.Always, nil
	case "face-down":
		return model.AllFaceDown, nil
	case "face-up":
		return model.AllFaceUp, nil
	case "cell":
		return model.Cell, nil
	}
	if n, ok := strings.CutPrefix(s, "max:"); ok {
		size, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || size < 0 {
			return nil, fmt.Errorf("invariant %q: invalid size", src)
		}
		return model.MaxSize(size), nil
	}
	if expr, ok := strings.CutPrefix(s, "lua:"); ok {
		script, err := rules.Compile(expr)
		if err != nil {
			return nil, err
		}
		g.scripts = append(g.scripts, script)
		return script.Invariant(), nil
	}
	return nil, fmt.Errorf("unknown invariant %q", src)
}

// Close releases resources held by scripted invariants.
func (g *Game) Close() {
	for _, s := range g.scripts {
		s.Close()
	}
	g.scripts = nil
}
