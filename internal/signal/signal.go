package signal

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
)

// Func is the callable part of a Handler. Arguments arrive already converted
// to the handler's Shape.
type Func func(ctx context.Context, args []cty.Value) error

// Key identifies a handler: the component instance it is bound to plus the
// method name. Go funcs are not comparable, so identity lives here.
type Key struct {
	Target uuid.UUID
	Method string
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return k.Target.String() + "." + k.Method
}

// Handler is a bound callable tagged with its identity and argument shape.
type Handler struct {
	Key   Key
	Shape Shape
	Fn    Func
}

// Signal is a multicast event. Handlers run in attachment order.
type Signal struct {
	mu       sync.Mutex
	shape    Shape
	handlers []Handler
}

// New creates a Signal passing arguments of the given shape.
func New(shape Shape) *Signal {
	return &Signal{shape: shape}
}

// Shape returns the argument shape the signal passes to its handlers.
func (s *Signal) Shape() Shape {
	return s.shape
}

// Attach appends h to the invocation list. It does not deduplicate.
func (s *Signal) Attach(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// Detach removes the most recently attached handler with the given key.
// Detaching a key that is not attached is a no-op and returns false.
func (s *Signal) Detach(k Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.handlers) - 1; i >= 0; i-- {
		if s.handlers[i].Key == k {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of attached handlers.
func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

// Keys returns the keys of the attached handlers in invocation order.
func (s *Signal) Keys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]Key, len(s.handlers))
	for i, h := range s.handlers {
		keys[i] = h.Key
	}
	return keys
}

// Fire invokes every attached handler in order. Handler errors and panics do
// not stop the remaining handlers; they are joined into the returned error.
func (s *Signal) Fire(ctx context.Context, args ...cty.Value) error {
	in, err := s.shape.convertArgs(args)
	if err != nil {
		return err
	}

	// Handlers may attach or detach while we iterate.
	s.mu.Lock()
	handlers := make([]Handler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	var errs []error
	for _, h := range handlers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := invoke(ctx, h, in); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func invoke(ctx context.Context, h Handler, args []cty.Value) (err error) {
	if h.Fn == nil {
		return &HandlerError{Key: h.Key, Err: fmt.Errorf("nil handler func")}
	}
	hargs, err := h.Shape.convertArgs(args)
	if err != nil {
		return &HandlerError{Key: h.Key, Err: err}
	}

	defer func() {
		if r := recover(); r != nil {
			err = &HandlerPanic{Key: h.Key, Value: r, Stack: string(debug.Stack())}
		}
	}()

	if err := h.Fn(ctx, hargs); err != nil {
		return &HandlerError{Key: h.Key, Err: err}
	}
	return nil
}
