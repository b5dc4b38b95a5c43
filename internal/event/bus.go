// Package event provides the typed publish/subscribe primitive every
// stateful entity is built on.
//
// A Bus is created with a closed set of event identifiers. Subscribing to or
// unsubscribing from an identifier outside that set fails; emitting one is a
// silent no-op. Handlers run synchronously, in registration order, on the
// caller's goroutine. A Bus is not safe for concurrent use.
package event

import (
	"errors"
	"fmt"
)

// ErrUnknownEvent is matched by every UnknownEventError.
var ErrUnknownEvent = errors.New("unknown event")

// UnknownEventError reports a (un)subscription to an event the owner does
// not emit.
type UnknownEventError struct {
	Owner string
	Event string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("%s does not emit event %q", e.Owner, e.Event)
}

func (e *UnknownEventError) Unwrap() error { return ErrUnknownEvent }

// Handler receives the payload of an emitted event. A non-nil error stops the
// emission and is returned to the emitter.
type Handler[P any] func(P) error

// HandlerID identifies one subscription.
type HandlerID uint64

type entry[P any] struct {
	id HandlerID
	fn Handler[P]
}

// Bus maps a fixed set of events to ordered handler lists.
type Bus[E comparable, P any] struct {
	owner    string
	handlers map[E][]entry[P]
	nextID   HandlerID
}

// New returns a bus that can emit exactly the given events.
func New[E comparable, P any](owner string, events ...E) *Bus[E, P] {
	handlers := make(map[E][]entry[P], len(events))
	for _, e := range events {
		handlers[e] = []entry[P]{}
	}
	return &Bus[E, P]{owner: owner, handlers: handlers}
}

// Owner returns the name used in error messages.
func (b *Bus[E, P]) Owner() string { return b.owner }

// Declares reports whether e is one of the bus's events.
func (b *Bus[E, P]) Declares(e E) bool {
	_, ok := b.handlers[e]
	return ok
}

// Len returns the number of handlers registered for e.
func (b *Bus[E, P]) Len(e E) int { return len(b.handlers[e]) }

// Subscribe appends h to the handlers of e.
func (b *Bus[E, P]) Subscribe(e E, h Handler[P]) (HandlerID, error) {
	list, ok := b.handlers[e]
	if !ok {
		return 0, b.unknown(e)
	}
	b.nextID++
	b.handlers[e] = append(list, entry[P]{id: b.nextID, fn: h})
	return b.nextID, nil
}

// Unsubscribe removes the first handler registered under each id. Absent ids
// are ignored. Without ids, every handler of e is removed.
func (b *Bus[E, P]) Unsubscribe(e E, ids ...HandlerID) error {
	list, ok := b.handlers[e]
	if !ok {
		return b.unknown(e)
	}
	if len(ids) == 0 {
		b.handlers[e] = []entry[P]{}
		return nil
	}
	for _, id := range ids {
		for i, h := range list {
			if h.id == id {
				list = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
	b.handlers[e] = list
	return nil
}

// Emit calls the handlers of e in registration order with payload. The list
// is fixed when Emit starts; handlers added or removed meanwhile take effect
// on the next emission. The first handler error is returned and the
// remaining handlers are skipped.
func (b *Bus[E, P]) Emit(e E, payload P) error {
	for _, h := range b.handlers[e] {
		if err := h.fn(payload); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus[E, P]) unknown(e E) error {
	return &UnknownEventError{Owner: b.owner, Event: fmt.Sprint(e)}
}
