package scene

import (
	"fmt"

	"github.com/google/uuid"
)

// Component is a behavior attached to an Object. Components are opaque to the
// scene; the binding layer inspects them for declarations.
type Component interface {
	// Kind names the component type, e.g. "scoreboard".
	Kind() string
}

// Instance is one component attached to one object.
type Instance struct {
	ID        uuid.UUID
	Object    *Object
	Component Component
}

// Ref returns an observation-only reference to the instance.
func (i *Instance) Ref() Ref {
	return Ref{
		Object:    i.Object.Name,
		ObjectID:  i.Object.ID,
		Kind:      i.Component.Kind(),
		Component: i.ID,
	}
}

// Object is a named node of the scene graph.
type Object struct {
	ID   uuid.UUID
	Name string

	// Persistent objects survive LoadSingle scene loads.
	Persistent bool

	components []*Instance
}

// NewObject creates an object with a fresh id.
func NewObject(name string, persistent bool) *Object {
	return &Object{
		ID:         uuid.New(),
		Name:       name,
		Persistent: persistent,
	}
}

// Add attaches a component and returns its instance handle.
func (o *Object) Add(c Component) *Instance {
	inst := &Instance{ID: uuid.New(), Object: o, Component: c}
	o.components = append(o.components, inst)
	return inst
}

// Components returns the attached instances in attachment order.
func (o *Object) Components() []*Instance {
	out := make([]*Instance, len(o.components))
	copy(out, o.components)
	return out
}

// Ref identifies a component instance without holding on to it.
type Ref struct {
	Object    string    `json:"object"`
	ObjectID  uuid.UUID `json:"object_id"`
	Kind      string    `json:"kind"`
	Component uuid.UUID `json:"component_id"`
}

// String renders the reference as "object/kind".
func (r Ref) String() string {
	return fmt.Sprintf("%s/%s", r.Object, r.Kind)
}
