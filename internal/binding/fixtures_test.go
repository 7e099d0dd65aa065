package binding_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/scenebus/internal/decl"
	"github.com/vk/scenebus/internal/scene"
	"github.com/vk/scenebus/internal/signal"
	"github.com/zclconf/go-cty/cty"
)

// calls records handler invocations in order.
type calls struct {
	mu    sync.Mutex
	names []string
}

func (c *calls) handler(name string) signal.Func {
	return func(context.Context, []cty.Value) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.names = append(c.names, name)
		return nil
	}
}

func (c *calls) take() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.names
	c.names = nil
	return out
}

var numberShape = signal.Shape{cty.Number}

// owner declares a single event.
type owner struct {
	id      string
	sig     *signal.Signal
	destroy bool
}

func newOwner(id string, destroy bool) *owner {
	return &owner{id: id, sig: signal.New(numberShape), destroy: destroy}
}

func (o *owner) Kind() string { return "owner" }

func (o *owner) Declare(d *decl.Declarations) {
	d.Event(o.id, o.sig, decl.DestroyOnLoad(o.destroy))
}

// listener declares a single listener recording its name when invoked.
type listener struct {
	name    string
	event   string
	method  string
	order   int
	destroy bool
	shape   signal.Shape
	rec     *calls
}

func (l *listener) Kind() string { return "listener" }

func (l *listener) Declare(d *decl.Declarations) {
	method := l.method
	if method == "" {
		method = "On" + l.name
	}
	shape := l.shape
	if shape == nil {
		shape = numberShape
	}
	d.Listen(l.event, method, shape, l.rec.handler(l.name), decl.Order(l.order), decl.DestroyOnLoad(l.destroy))
}

// object builds a scene object holding the given components.
func object(name string, persistent bool, components ...scene.Component) *scene.Object {
	o := scene.NewObject(name, persistent)
	for _, c := range components {
		o.Add(c)
	}
	return o
}

// refOf returns the ref of the first component of o.
func refOf(o *scene.Object) scene.Ref {
	return o.Components()[0].Ref()
}

// hostFunc adapts a function to binding.Host.
type hostFunc func() []*scene.Object

func (f hostFunc) Objects() []*scene.Object { return f() }

func one() cty.Value { return cty.NumberIntVal(1) }

// twiceListener declares the same method for one event twice and once for
// another event.
type twiceListener struct {
	rec *calls
}

func (l *twiceListener) Kind() string { return "twice" }

func (l *twiceListener) Declare(d *decl.Declarations) {
	fn := l.rec.handler("twice")
	d.Listen("tick", "OnAny", numberShape, fn)
	d.Listen("tick", "OnAny", numberShape, fn, decl.Order(9))
	d.Listen("tock", "OnAny", numberShape, fn)
}

// handlerFor builds a raw number handler running fn.
func handlerFor(method string, fn func()) signal.Handler {
	return signal.Handler{
		Key:   signal.Key{Target: uuid.New(), Method: method},
		Shape: numberShape,
		Fn: func(context.Context, []cty.Value) error {
			fn()
			return nil
		},
	}
}

// aliasOwner declares one signal under two event ids.
type aliasOwner struct {
	sig *signal.Signal
}

func (o *aliasOwner) Kind() string { return "alias" }

func (o *aliasOwner) Declare(d *decl.Declarations) {
	d.Event("a", o.sig)
	d.Event("b", o.sig)
}

// bothListener listens to a and b with the same method.
type bothListener struct {
	rec *calls
}

func (l *bothListener) Kind() string { return "both" }

func (l *bothListener) Declare(d *decl.Declarations) {
	fn := l.rec.handler("both")
	d.Listen("a", "OnAny", numberShape, fn)
	d.Listen("b", "OnAny", numberShape, fn)
}
