// Package emitter provides the "emitter" component kind, which owns one event
// with a configurable id, argument shape and lifetime.
package emitter

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/decl"
	"github.com/vk/scenebus/internal/registry"
	"github.com/vk/scenebus/internal/scene"
	"github.com/vk/scenebus/internal/signal"
	"github.com/zclconf/go-cty/cty"
)

// Kind is the component kind used in scene files.
const Kind = "emitter"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of an emitter component.
type Input struct {
	Event         string   `scene:"event"`
	Params        []string `scene:"params"`
	DestroyOnLoad bool     `scene:"destroy_on_load"`
}

// Emitter declares a single event.
type Emitter struct {
	event   string
	destroy bool
	signal  *signal.Signal
}

// New builds an emitter from its input.
func New(_ context.Context, input *Input) (*Emitter, error) {
	if input.Event == "" {
		return nil, fmt.Errorf("emitter: event must not be empty")
	}
	shape, err := signal.ParseShape(input.Params...)
	if err != nil {
		return nil, fmt.Errorf("emitter %q: %w", input.Event, err)
	}
	return &Emitter{
		event:   input.Event,
		destroy: input.DestroyOnLoad,
		signal:  signal.New(shape),
	}, nil
}

// Kind implements scene.Component.
func (e *Emitter) Kind() string { return Kind }

// Declare implements decl.Declarer.
func (e *Emitter) Declare(d *decl.Declarations) {
	d.Event(e.event, e.signal, decl.DestroyOnLoad(e.destroy))
}

// Signal returns the owned signal.
func (e *Emitter) Signal() *signal.Signal { return e.signal }

// Register registers the emitter kind.
func (m *Module) Register(r *registry.Registry) {
	noParams := cty.ListValEmpty(cty.String)
	persist := cty.False
	r.RegisterComponent(Kind, &registry.RegisteredComponent{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Inputs: map[string]*config.InputDefinition{
			"event": {
				Name:        "event",
				Type:        cty.String,
				Description: "Id of the declared event.",
			},
			"params": {
				Name:        "params",
				Type:        cty.List(cty.String),
				Description: "Argument type expressions, e.g. [\"number\", \"list(string)\"].",
				Default:     &noParams,
				Optional:    true,
			},
			"destroy_on_load": {
				Name:        "destroy_on_load",
				Type:        cty.Bool,
				Description: "Remove the event on a single scene load.",
				Default:     &persist,
				Optional:    true,
			},
		},
		New: func(ctx context.Context, input any) (scene.Component, error) {
			return New(ctx, input.(*Input))
		},
	})
}
