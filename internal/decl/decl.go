// Package decl is the registration interface components use to declare the
// events they own and the events they listen to. It replaces attribute
// scanning: a component implements Declarer and lists its declarations
// explicitly.
package decl

import "github.com/vk/scenebus/internal/signal"

// Declarer is implemented by components that own or listen to events.
// Declare may be called once per resolution pass and must be side-effect free.
type Declarer interface {
	Declare(d *Declarations)
}

// Event declares a subscribable event owned by a component.
type Event struct {
	ID            string
	Signal        *signal.Signal
	DestroyOnLoad bool
}

// Listener declares a method that subscribes to an event by id.
type Listener struct {
	EventID       string
	Method        string
	Order         int
	DestroyOnLoad bool
	Shape         signal.Shape
	Fn            signal.Func
}

// Declarations collects the declarations of one component, in call order.
type Declarations struct {
	events    []Event
	listeners []Listener
}

type options struct {
	order         int
	destroyOnLoad *bool
}

// Option adjusts a single declaration.
type Option func(*options)

// Order sets the listener sort key. Lower values run first. Ignored for events.
func Order(n int) Option {
	return func(o *options) {
		o.order = n
	}
}

// DestroyOnLoad sets whether the declaration is torn down on a single scene
// load. Events default to false, listeners to true.
func DestroyOnLoad(v bool) Option {
	return func(o *options) {
		o.destroyOnLoad = &v
	}
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Event declares s as the event with the given id.
func (d *Declarations) Event(id string, s *signal.Signal, opts ...Option) {
	o := apply(opts)
	ev := Event{ID: id, Signal: s}
	if o.destroyOnLoad != nil {
		ev.DestroyOnLoad = *o.destroyOnLoad
	}
	d.events = append(d.events, ev)
}

// Listen declares method as a listener of the event with the given id. The
// same method may listen to several events.
func (d *Declarations) Listen(id, method string, shape signal.Shape, fn signal.Func, opts ...Option) {
	o := apply(opts)
	l := Listener{
		EventID:       id,
		Method:        method,
		Order:         o.order,
		DestroyOnLoad: true,
		Shape:         shape,
		Fn:            fn,
	}
	if o.destroyOnLoad != nil {
		l.DestroyOnLoad = *o.destroyOnLoad
	}
	d.listeners = append(d.listeners, l)
}

// Events returns the declared events in declaration order.
func (d *Declarations) Events() []Event {
	return d.events
}

// Listeners returns the declared listeners in declaration order.
func (d *Declarations) Listeners() []Listener {
	return d.listeners
}

// Collect returns the declarations of c. Components that do not implement
// Declarer yield empty declarations.
func Collect(c any) *Declarations {
	d := &Declarations{}
	if declarer, ok := c.(Declarer); ok {
		declarer.Declare(d)
	}
	return d
}
