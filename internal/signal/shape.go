package signal

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Shape is the ordered list of argument types an event passes or a handler
// accepts. cty.DynamicPseudoType stands for "any".
type Shape []cty.Type

// String renders the shape as a parenthesised list, e.g. "(number, string)".
func (s Shape) String() string {
	names := make([]string, len(s))
	for i, t := range s {
		names[i] = t.FriendlyNameForConstraint()
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// Equals reports whether both shapes have identical argument types.
func (s Shape) Equals(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equals(other[i]) {
			return false
		}
	}
	return true
}

// Accepts reports whether a handler of shape s can be attached to an event of
// the given shape. Every event argument must be assignable to the parameter at
// the same position.
func (s Shape) Accepts(event Shape) error {
	if len(s) != len(event) {
		return fmt.Errorf("%w: handler takes %d argument(s), event passes %d", ErrArityMismatch, len(s), len(event))
	}
	for i := range s {
		if !assignable(event[i], s[i]) {
			return fmt.Errorf("%w: argument %d: cannot assign %s to %s",
				ErrTypeMismatch, i, event[i].FriendlyNameForConstraint(), s[i].FriendlyNameForConstraint())
		}
	}
	return nil
}

// convertArgs converts args to the types of s.
func (s Shape) convertArgs(args []cty.Value) ([]cty.Value, error) {
	if len(args) != len(s) {
		return nil, fmt.Errorf("%w: expected %d argument(s), got %d", ErrArityMismatch, len(s), len(args))
	}
	out := make([]cty.Value, len(args))
	for i, arg := range args {
		v, err := convert.Convert(arg, s[i])
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", ErrTypeMismatch, i, err)
		}
		out[i] = v
	}
	return out, nil
}

func assignable(from, to cty.Type) bool {
	if to.Equals(cty.DynamicPseudoType) || from.Equals(to) {
		return true
	}
	// Only safe conversions count; string -> number would fail at fire time.
	return convert.GetConversion(from, to) != nil
}

// ParseShape parses a list of type expressions such as "number" or
// "list(string)" into a Shape.
func ParseShape(exprs ...string) (Shape, error) {
	shape := make(Shape, 0, len(exprs))
	for i, src := range exprs {
		t, err := ParseType(src)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		shape = append(shape, t)
	}
	return shape, nil
}

// MustParseShape is like ParseShape but panics on error. It is meant for
// shapes written as literals in component code.
func MustParseShape(exprs ...string) Shape {
	shape, err := ParseShape(exprs...)
	if err != nil {
		panic(err)
	}
	return shape
}

// ParseType parses a single type expression: string, number, bool, any, or
// list(T), map(T), set(T) of a primitive T.
func ParseType(src string) (cty.Type, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "type", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return cty.DynamicPseudoType, fmt.Errorf("invalid type expression %q: %w", src, diags)
	}
	return typeExprToCtyType(expr)
}

// typeExprToCtyType converts an HCL type expression into its cty.Type equivalent.
func typeExprToCtyType(expr hcl.Expression) (cty.Type, error) {
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		if len(v.Args) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("type constructors (list, map, set) require exactly one argument, got %d", len(v.Args))
		}
		elementType, err := typeExprToCtyType(v.Args[0])
		if err != nil {
			return cty.DynamicPseudoType, err
		}
		if elementType.Equals(cty.DynamicPseudoType) {
			return cty.DynamicPseudoType, fmt.Errorf("collection types cannot contain type 'any'")
		}
		switch v.Name {
		case "list":
			return cty.List(elementType), nil
		case "map":
			return cty.Map(elementType), nil
		case "set":
			return cty.Set(elementType), nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		switch name := v.Traversal.RootName(); name {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.DynamicPseudoType, nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", name)
		}

	default:
		return cty.DynamicPseudoType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}
