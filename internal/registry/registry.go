package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/scene"
)

// Module is the interface that all component modules implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredComponent holds the Go side of a component kind.
type RegisteredComponent struct {
	// NewInput returns a pointer to a fresh input struct.
	NewInput func() any
	// InputType is the struct type NewInput allocates.
	InputType reflect.Type
	// Inputs declares the accepted arguments, keyed by argument name.
	Inputs map[string]*config.InputDefinition
	// New builds a component from a decoded input.
	New func(ctx context.Context, input any) (scene.Component, error)
}

// Registry holds the registered component kinds of one application instance.
type Registry struct {
	components map[string]*RegisteredComponent
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{components: make(map[string]*RegisteredComponent)}
}

// RegisterComponent registers a component kind. Registering a kind twice is a
// programmer error and panics.
func (r *Registry) RegisterComponent(kind string, c *RegisteredComponent) {
	if _, exists := r.components[kind]; exists {
		panic(fmt.Sprintf("component kind '%s' already registered", kind))
	}
	if c == nil || c.New == nil {
		panic(fmt.Sprintf("component kind '%s' registered without a constructor", kind))
	}
	slog.Debug("Registering component kind.", "kind", kind)
	r.components[kind] = c
}

// Lookup returns the registration for kind.
func (r *Registry) Lookup(kind string) (*RegisteredComponent, bool) {
	c, ok := r.components[kind]
	return c, ok
}

// Kinds returns the registered kinds in lexical order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.components))
	for k := range r.components {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
