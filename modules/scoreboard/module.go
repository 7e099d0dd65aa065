// Package scoreboard provides the "scoreboard" component kind. A scoreboard
// listens for awarded points, keeps a running total and publishes every new
// total on its own event.
package scoreboard

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/vk/scenebus/internal/decl"
	"github.com/vk/scenebus/internal/registry"
	"github.com/vk/scenebus/internal/scene"
	"github.com/vk/scenebus/internal/signal"
	"github.com/zclconf/go-cty/cty"
)

// Kind is the component kind used in scene files.
const Kind = "scoreboard"

const (
	defaultListen  = "points_scored"
	defaultPublish = "score_changed"
)

var numberShape = signal.Shape{cty.Number}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of a scoreboard component.
type Input struct {
	Listen        string `scene:"listen"`
	Publish       string `scene:"publish"`
	Order         int    `scene:"order"`
	DestroyOnLoad bool   `scene:"destroy_on_load"`
}

// Scoreboard accumulates points.
type Scoreboard struct {
	listen  string
	publish string
	order   int
	destroy bool
	changed *signal.Signal

	mu    sync.Mutex
	total cty.Value
}

// New builds a scoreboard from its input.
func New(_ context.Context, input *Input) (*Scoreboard, error) {
	if input.Listen == input.Publish {
		return nil, fmt.Errorf("scoreboard: listen and publish must differ, both are %q", input.Listen)
	}
	return &Scoreboard{
		listen:  input.Listen,
		publish: input.Publish,
		order:   input.Order,
		destroy: input.DestroyOnLoad,
		changed: signal.New(numberShape),
		total:   cty.Zero,
	}, nil
}

// Kind implements scene.Component.
func (s *Scoreboard) Kind() string { return Kind }

// Declare implements decl.Declarer.
func (s *Scoreboard) Declare(d *decl.Declarations) {
	d.Event(s.publish, s.changed, decl.DestroyOnLoad(s.destroy))
	d.Listen(s.listen, "AddPoints", numberShape, s.AddPoints, decl.Order(s.order), decl.DestroyOnLoad(s.destroy))
}

// AddPoints adds args[0] to the total and publishes the new total.
func (s *Scoreboard) AddPoints(ctx context.Context, args []cty.Value) error {
	points := args[0]
	if points.IsNull() || !points.IsKnown() {
		return fmt.Errorf("scoreboard: points must be a known number")
	}

	s.mu.Lock()
	s.total = s.total.Add(points)
	total := s.total
	s.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Score updated.", "event", s.publish, "total", total.AsBigFloat().String())
	return s.changed.Fire(ctx, total)
}

// Total returns the current total.
func (s *Scoreboard) Total() cty.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Register registers the scoreboard kind.
func (m *Module) Register(r *registry.Registry) {
	listen := cty.StringVal(defaultListen)
	publish := cty.StringVal(defaultPublish)
	zero := cty.NumberIntVal(0)
	persist := cty.False

	r.RegisterComponent(Kind, &registry.RegisteredComponent{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Inputs: map[string]*config.InputDefinition{
			"listen":          {Name: "listen", Type: cty.String, Default: &listen, Optional: true},
			"publish":         {Name: "publish", Type: cty.String, Default: &publish, Optional: true},
			"order":           {Name: "order", Type: cty.Number, Default: &zero, Optional: true},
			"destroy_on_load": {Name: "destroy_on_load", Type: cty.Bool, Default: &persist, Optional: true},
		},
		New: func(ctx context.Context, input any) (scene.Component, error) {
			return New(ctx, input.(*Input))
		},
	})
}
