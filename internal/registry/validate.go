package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var ctyValueType = reflect.TypeOf(cty.Value{})

// ValidateRegistry performs a strict parity check between the declared inputs
// of every kind and the fields of its Go input struct, both presence and type.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, kind := range r.Kinds() {
		c := r.components[kind]
		if c.InputType == nil {
			if len(c.Inputs) > 0 {
				errs = append(errs, fmt.Sprintf("component '%s': declares inputs, but has no input struct", kind))
			}
			continue
		}

		goInputs := make(map[string]reflect.StructField)
		for i := 0; i < c.InputType.NumField(); i++ {
			field := c.InputType.Field(i)
			if !field.IsExported() {
				continue
			}
			if name := config.FieldName(field); name != "" {
				goInputs[name] = field
			}
		}

		for name := range goInputs {
			if _, ok := c.Inputs[name]; !ok {
				errs = append(errs, fmt.Sprintf("component '%s': Go struct has field for input '%s' which is not declared", kind, name))
			}
		}
		for name := range c.Inputs {
			if _, ok := goInputs[name]; !ok {
				errs = append(errs, fmt.Sprintf("component '%s': declares input '%s' which is not found in Go struct", kind, name))
			}
		}

		for name, def := range c.Inputs {
			field, ok := goInputs[name]
			if !ok {
				continue
			}
			if def.Type.Equals(cty.DynamicPseudoType) {
				if field.Type != ctyValueType {
					logger.Warn("Component input has type 'any', which disables static type checking.", "component", kind, "input", name)
				}
				continue
			}
			goType, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface())
			if err != nil {
				errs = append(errs, fmt.Sprintf("component '%s', input '%s': could not imply cty type from Go field type %s: %v", kind, name, field.Type, err))
				continue
			}
			if !def.Type.Equals(goType) {
				errs = append(errs, fmt.Sprintf("component '%s', input '%s': type mismatch. Declared '%s' but Go struct field '%s' provides '%s'",
					kind, name, def.Type.FriendlyName(), field.Name, goType.FriendlyName()))
			}
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ValidateModel checks that every component of every scene uses a registered
// kind with known arguments, and that every step references a known scene.
func (r *Registry) ValidateModel(model *config.Model) error {
	var errs []string

	for _, name := range model.SceneNames() {
		sc := model.Scenes[name]
		for _, o := range sc.Objects {
			for _, c := range o.Components {
				reg, ok := r.Lookup(c.Kind)
				if !ok {
					errs = append(errs, fmt.Sprintf("scene '%s', object '%s': unknown component kind '%s'", sc.Name, o.Name, c.Kind))
					continue
				}
				for arg := range c.Arguments {
					if _, ok := reg.Inputs[arg]; !ok {
						errs = append(errs, fmt.Sprintf("scene '%s', object '%s', component '%s': unknown argument '%s'", sc.Name, o.Name, c.Kind, arg))
					}
				}
			}
		}
	}

	for i, step := range model.Steps {
		if step.Kind != config.StepLoad {
			continue
		}
		if _, ok := model.Scenes[step.Scene]; !ok {
			errs = append(errs, fmt.Sprintf("step %d: load references unknown scene '%s'", i+1, step.Scene))
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("scene validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
