package model

import "fmt"

// Table aggregates the piles of one playing surface.
type Table struct {
	notifier
	name  string
	piles []*Pile
}

// NewTable returns an empty table.
func NewTable(name string) *Table {
	return &Table{notifier: newNotifier("table " + name), name: name}
}

func (t *Table) Name() string { return t.name }

// AddPile places p on the table. Pile names are unique per table.
func (t *Table) AddPile(p *Pile) error {
	if _, ok := t.Pile(p.Name()); ok {
		return fmt.Errorf("table %q: pile %q already present", t.name, p.Name())
	}
	t.piles = append(t.piles, p)
	return t.changed(t)
}

// RemovePile takes the named pile off the table.
func (t *Table) RemovePile(name string) error {
	for i, p := range t.piles {
		if p.Name() == name {
			t.piles = append(t.piles[:i:i], t.piles[i+1:]...)
			return t.changed(t)
		}
	}
	return fmt.Errorf("table %q: no pile %q", t.name, name)
}

// Pile looks up a pile by name.
func (t *Table) Pile(name string) (*Pile, bool) {
	for _, p := range t.piles {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Piles returns the piles in placement order.
func (t *Table) Piles() []*Pile {
	out := make([]*Pile, len(t.piles))
	copy(out, t.piles)
	return out
}
