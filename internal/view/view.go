// Package view keeps visual representations in step with their models.
//
// A view is bound to exactly one model at construction and re-renders
// whenever that model emits model.Changed. Views also emit interaction
// events (click, drag, drop) reported by a drawing backend; those go to
// application code and never back into the model on their own.
package view

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/playingcards/internal/card"
	"github.com/jask/playingcards/internal/event"
	"github.com/jask/playingcards/internal/model"
	"github.com/jask/playingcards/internal/scene"
)

// Event is the closed set of user gestures a view reports.
type Event uint8

const (
	Click Event = iota + 1
	DragStart
	Drag
	DragEnd
	DragOver
	Drop
)

// Events lists every interaction event.
var Events = []Event{Click, DragStart, Drag, DragEnd, DragOver, Drop}

func (e Event) String() string {
	switch e {
	case Click:
		return "view:click"
	case DragStart:
		return "view:drag-start"
	case Drag:
		return "view:drag"
	case DragEnd:
		return "view:drag-end"
	case DragOver:
		return "view:drag-over"
	case Drop:
		return "view:drop"
	default:
		return fmt.Sprintf("view:unknown(%d)", uint8(e))
	}
}

// Gesture is the payload of an interaction event.
type Gesture struct {
	// Source is the view the gesture happened on.
	Source View
	// Target is the view under the pointer for drag-over and drop.
	Target View
	// Card is the card under the pointer, if any.
	Card *card.Card
	X, Y float64
}

// Renderable produces a fresh visual from current state. Rendering is
// idempotent and never mutates the model.
type Renderable interface {
	Render() error
}

// View is a rendered, interactive representation of one model.
type View interface {
	Renderable
	ID() string
	Parent() View
	Model() model.Observable
	Config() Options
	Configure(opts Options)
	Scene() *scene.Group
	Subscribe(e Event, h event.Handler[Gesture]) (event.HandlerID, error)
	Unsubscribe(e Event, ids ...event.HandlerID) error
	Emit(e Event, g Gesture) error
}

// Base carries what every view has: identity, parent, model, configuration
// and interaction events.
type Base struct {
	id     string
	parent View
	model  model.Observable
	config Options
	bus    *event.Bus[Event, Gesture]
	self   View
}

func newBase(parent View, m model.Observable, opts Options) Base {
	id := uuid.NewString()
	b := Base{
		id:     id,
		parent: parent,
		model:  m,
		config: Options{},
		bus:    event.New[Event, Gesture]("view "+id, Events...),
	}
	b.Configure(opts)
	return b
}

// bind subscribes self to the model's change notification. Called once by
// each concrete view's constructor.
func (b *Base) bind(self View) error {
	b.self = self
	_, err := b.model.Subscribe(model.Changed, func(model.Change) error {
		return self.Render()
	})
	if err != nil {
		return fmt.Errorf("bind view to %s: %w", b.model.Name(), err)
	}
	return nil
}

func (b *Base) ID() string              { return b.id }
func (b *Base) Parent() View            { return b.parent }
func (b *Base) Model() model.Observable { return b.model }

// Config returns a copy of the configuration.
func (b *Base) Config() Options {
	out := make(Options, len(b.config))
	for k, v := range b.config {
		out[k] = v
	}
	return out
}

// Configure merges opts into the configuration, later keys winning. It
// does not render.
func (b *Base) Configure(opts Options) {
	for k, v := range opts {
		b.config[k] = v
	}
}

func (b *Base) Subscribe(e Event, h event.Handler[Gesture]) (event.HandlerID, error) {
	return b.bus.Subscribe(e, h)
}

func (b *Base) Unsubscribe(e Event, ids ...event.HandlerID) error {
	return b.bus.Unsubscribe(e, ids...)
}

// Emit reports a gesture on this view. A nil Source is set to the view.
func (b *Base) Emit(e Event, g Gesture) error {
	if g.Source == nil {
		g.Source = b.self
	}
	return b.bus.Emit(e, g)
}

// Dispatch emits e on v and then on each of its ancestors, with v as the
// gesture source. The first handler error stops the walk.
func Dispatch(v View, e Event, g Gesture) error {
	if g.Source == nil {
		g.Source = v
	}
	for cur := v; cur != nil; cur = cur.Parent() {
		if err := cur.Emit(e, g); err != nil {
			return err
		}
	}
	return nil
}
