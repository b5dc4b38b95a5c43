// Package model holds the observable state of a card game: piles of cards
// and the table that aggregates them.
//
// Every model emits Changed after each successful mutation and never after a
// rejected one. Views subscribe once, at construction.
package model

import (
	"github.com/jask/playingcards/internal/event"
)

// Event is the closed set of notifications a model emits.
type Event uint8

// Changed follows every successful mutation.
const Changed Event = 1

func (e Event) String() string {
	if e == Changed {
		return "model:changed"
	}
	return "model:unknown"
}

// Change is the payload of Changed.
type Change struct {
	Model Observable
}

// Observable is the contract views depend on.
type Observable interface {
	Name() string
	Subscribe(e Event, h event.Handler[Change]) (event.HandlerID, error)
	Unsubscribe(e Event, ids ...event.HandlerID) error
}

type notifier struct {
	bus *event.Bus[Event, Change]
}

func newNotifier(owner string) notifier {
	return notifier{bus: event.New[Event, Change](owner, Changed)}
}

func (n notifier) Subscribe(e Event, h event.Handler[Change]) (event.HandlerID, error) {
	return n.bus.Subscribe(e, h)
}

func (n notifier) Unsubscribe(e Event, ids ...event.HandlerID) error {
	return n.bus.Unsubscribe(e, ids...)
}

func (n notifier) changed(m Observable) error {
	return n.bus.Emit(Changed, Change{Model: m})
}
