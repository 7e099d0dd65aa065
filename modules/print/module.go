// Package print provides the "print" component kind, a listener that writes
// every invocation of its event to the application output.
package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/vk/scenebus/internal/decl"
	"github.com/vk/scenebus/internal/registry"
	"github.com/vk/scenebus/internal/scene"
	"github.com/vk/scenebus/internal/signal"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Kind is the component kind used in scene files.
const Kind = "print"

// Module implements the registry.Module interface for this package.
type Module struct {
	// Out receives printed lines. Defaults to os.Stdout.
	Out io.Writer

	mu sync.Mutex
}

// Input defines the arguments of a print component.
type Input struct {
	Event         string   `scene:"event"`
	Label         string   `scene:"label"`
	Order         int      `scene:"order"`
	DestroyOnLoad bool     `scene:"destroy_on_load"`
	Accepts       []string `scene:"accepts"`
}

// Printer listens to one event and prints its arguments.
type Printer struct {
	module  *Module
	label   string
	event   string
	order   int
	destroy bool
	shape   signal.Shape
}

// New builds a printer from its input.
func (m *Module) New(_ context.Context, input *Input) (*Printer, error) {
	if input.Event == "" {
		return nil, fmt.Errorf("print: event must not be empty")
	}
	shape, err := signal.ParseShape(input.Accepts...)
	if err != nil {
		return nil, fmt.Errorf("print %q: %w", input.Event, err)
	}
	return &Printer{
		module:  m,
		label:   input.Label,
		event:   input.Event,
		order:   input.Order,
		destroy: input.DestroyOnLoad,
		shape:   shape,
	}, nil
}

// Kind implements scene.Component.
func (p *Printer) Kind() string { return Kind }

// Declare implements decl.Declarer.
func (p *Printer) Declare(d *decl.Declarations) {
	d.Listen(p.event, "Print", p.shape, p.Print, decl.Order(p.order), decl.DestroyOnLoad(p.destroy))
}

// Print writes one line: "[label] event: arg, arg".
func (p *Printer) Print(ctx context.Context, args []cty.Value) error {
	rendered := make([]string, len(args))
	for i, arg := range args {
		s, err := render(arg)
		if err != nil {
			return fmt.Errorf("print %q: argument %d: %w", p.event, i, err)
		}
		rendered[i] = s
	}

	var b strings.Builder
	if p.label != "" {
		fmt.Fprintf(&b, "[%s] ", p.label)
	}
	fmt.Fprintf(&b, "%s: %s\n", p.event, strings.Join(rendered, ", "))

	ctxlog.FromContext(ctx).Debug("Printing event.", "event", p.event, "label", p.label, "args", len(args))
	return p.module.write(b.String())
}

func (m *Module) write(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	_, err := io.WriteString(out, line)
	return err
}

// render formats a value as JSON, which keeps strings quoted.
func render(v cty.Value) (string, error) {
	if v.IsNull() {
		return "null", nil
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Register registers the print kind.
func (m *Module) Register(r *registry.Registry) {
	zero := cty.NumberIntVal(0)
	destroy := cty.True
	anyArg := cty.ListVal([]cty.Value{cty.StringVal("any")})
	noLabel := cty.StringVal("")

	r.RegisterComponent(Kind, &registry.RegisteredComponent{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Inputs: map[string]*config.InputDefinition{
			"event": {Name: "event", Type: cty.String, Description: "Id of the event to listen to."},
			"label": {Name: "label", Type: cty.String, Default: &noLabel, Optional: true},
			"order": {Name: "order", Type: cty.Number, Default: &zero, Optional: true},
			"destroy_on_load": {
				Name:     "destroy_on_load",
				Type:     cty.Bool,
				Default:  &destroy,
				Optional: true,
			},
			"accepts": {
				Name:        "accepts",
				Type:        cty.List(cty.String),
				Description: "Parameter type expressions of the listener.",
				Default:     &anyArg,
				Optional:    true,
			},
		},
		New: func(ctx context.Context, input any) (scene.Component, error) {
			return m.New(ctx, input.(*Input))
		},
	})
}
