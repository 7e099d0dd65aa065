package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParseType(t *testing.T) {
	testCases := []struct {
		src     string
		want    cty.Type
		wantErr string
	}{
		{src: "string", want: cty.String},
		{src: "number", want: cty.Number},
		{src: "bool", want: cty.Bool},
		{src: "any", want: cty.DynamicPseudoType},
		{src: "list(number)", want: cty.List(cty.Number)},
		{src: "map(string)", want: cty.Map(cty.String)},
		{src: "set(bool)", want: cty.Set(cty.Bool)},
		{src: "list(any)", wantErr: "cannot contain type 'any'"},
		{src: "tuple(number)", wantErr: "unknown type constructor"},
		{src: "integer", wantErr: "unknown primitive type"},
		{src: "list(string, number)", wantErr: "exactly one argument"},
		{src: `"number"`, wantErr: "unsupported expression"},
		{src: "list(", wantErr: "invalid type expression"},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			got, err := ParseType(tc.src)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equals(got), "want %s, got %s", tc.want.GoString(), got.GoString())
		})
	}
}

func TestParseShape(t *testing.T) {
	shape, err := ParseShape("number", "string")
	require.NoError(t, err)
	assert.True(t, shape.Equals(Shape{cty.Number, cty.String}))
	assert.Equal(t, "(number, string)", shape.String())

	_, err = ParseShape("number", "nope")
	assert.ErrorContains(t, err, "parameter 1")

	assert.Panics(t, func() { MustParseShape("nope") })
	assert.Empty(t, MustParseShape())
}

func TestShapeAccepts(t *testing.T) {
	testCases := []struct {
		name    string
		handler Shape
		event   Shape
		wantErr error
	}{
		{name: "identical", handler: Shape{cty.Number}, event: Shape{cty.Number}},
		{name: "no arguments", handler: Shape{}, event: nil},
		{name: "any parameter", handler: Shape{cty.DynamicPseudoType}, event: Shape{cty.Bool}},
		{name: "safe conversion number to string", handler: Shape{cty.String}, event: Shape{cty.Number}},
		{name: "safe list conversion", handler: Shape{cty.List(cty.String)}, event: Shape{cty.List(cty.Number)}},
		{name: "unsafe conversion string to number", handler: Shape{cty.Number}, event: Shape{cty.String}, wantErr: ErrTypeMismatch},
		{name: "too few parameters", handler: Shape{}, event: Shape{cty.Number}, wantErr: ErrArityMismatch},
		{name: "too many parameters", handler: Shape{cty.Number, cty.Number}, event: Shape{cty.Number}, wantErr: ErrArityMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.handler.Accepts(tc.event)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
