package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL implementation of config.Converter.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeBody evaluates component arguments, applies defaults and populates
// inputStruct through reflection.
func (c *Converter) DecodeBody(
	ctx context.Context,
	inputStruct any,
	args map[string]hcl.Expression,
	defs map[string]*config.InputDefinition,
) error {
	logger := ctxlog.FromContext(ctx)

	structVal := reflect.ValueOf(inputStruct)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("inputStruct must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}
		name := config.FieldName(field)
		if name == "" {
			continue
		}
		def, ok := defs[name]
		if !ok {
			continue
		}

		target := fieldVal.Addr().Interface()
		if expr, provided := args[name]; provided {
			val, diags := expr.Value(nil)
			if diags.HasErrors() {
				return diags
			}
			if err := c.decode(ctx, val, def.Type, target); err != nil {
				return fmt.Errorf("failed to decode argument '%s': %w", name, err)
			}
			continue
		}

		if def.Default == nil && !def.Optional {
			return fmt.Errorf("missing required argument %q", name)
		}
		if def.Default != nil {
			if err := c.decode(ctx, *def.Default, def.Type, target); err != nil {
				return fmt.Errorf("failed to apply default for '%s': %w", name, err)
			}
		}
	}
	logger.Debug("Decoded component arguments.", "go_type", structType.String(), "arguments", len(args))
	return nil
}

// decode converts val to the declared type, then to the Go field type.
func (c *Converter) decode(ctx context.Context, val cty.Value, declared cty.Type, target any) error {
	logger := ctxlog.FromContext(ctx)

	if declared != cty.NilType && !declared.Equals(cty.DynamicPseudoType) {
		converted, err := convert.Convert(val, declared)
		if err != nil {
			return fmt.Errorf("cannot convert %s to required type %s: %w",
				val.Type().FriendlyName(), declared.FriendlyName(), err)
		}
		if !val.Type().Equals(converted.Type()) {
			logger.Debug("Implicitly converted value type.",
				"from", val.Type().FriendlyName(), "to", converted.Type().FriendlyName())
		}
		val = converted
	}

	if _, ok := target.(*cty.Value); ok {
		*target.(*cty.Value) = val
		return nil
	}

	implied, err := gocty.ImpliedType(reflect.ValueOf(target).Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(val, target)
	}
	converted, err := convert.Convert(val, implied)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), implied.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

// EvalArgs evaluates a list or tuple expression into a slice of values.
func (c *Converter) EvalArgs(ctx context.Context, expr hcl.Expression) ([]cty.Value, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() || !val.Type().IsTupleType() && !val.Type().IsListType() {
		return nil, fmt.Errorf("args must be a list, got %s", val.Type().FriendlyName())
	}

	out := make([]cty.Value, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		out = append(out, v)
	}
	ctxlog.FromContext(ctx).Debug("Evaluated event arguments.", "count", len(out))
	return out, nil
}
