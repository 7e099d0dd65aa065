package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads every scene file under the given paths, translates them into
	// the format-agnostic model and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter binds raw configuration expressions to Go and cty values.
type Converter interface {
	// DecodeBody decodes component arguments into a Go struct, applying the
	// defaults of defs and rejecting missing required inputs.
	DecodeBody(
		ctx context.Context,
		inputStruct any,
		args map[string]hcl.Expression,
		defs map[string]*InputDefinition,
	) error

	// EvalArgs evaluates a list expression into event arguments. A nil or
	// null expression yields no arguments.
	EvalArgs(ctx context.Context, expr hcl.Expression) ([]cty.Value, error)
}
