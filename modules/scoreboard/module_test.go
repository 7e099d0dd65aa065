package scoreboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scenebus/internal/decl"
	"github.com/vk/scenebus/internal/registry"
	"github.com/vk/scenebus/internal/signal"
	"github.com/vk/scenebus/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

func TestScoreboard_AddPoints(t *testing.T) {
	ctx, _ := testutil.Context(t)
	s, err := New(ctx, &Input{Listen: "points_scored", Publish: "score_changed"})
	require.NoError(t, err)

	var published []int64
	s.changed.Attach(signal.Handler{
		Key:   signal.Key{Target: uuid.New(), Method: "Record"},
		Shape: numberShape,
		Fn: func(_ context.Context, args []cty.Value) error {
			n, _ := args[0].AsBigFloat().Int64()
			published = append(published, n)
			return nil
		},
	})

	require.NoError(t, s.AddPoints(ctx, []cty.Value{cty.NumberIntVal(10)}))
	require.NoError(t, s.AddPoints(ctx, []cty.Value{cty.NumberIntVal(5)}))
	assert.Equal(t, []int64{10, 15}, published)
	assert.True(t, s.Total().Equals(cty.NumberIntVal(15)).True())

	assert.Error(t, s.AddPoints(ctx, []cty.Value{cty.NullVal(cty.Number)}))
}

func TestScoreboard_Declare(t *testing.T) {
	s, err := New(context.Background(), &Input{Listen: "in", Publish: "out", Order: -1})
	require.NoError(t, err)

	d := decl.Collect(s)
	require.Len(t, d.Events(), 1)
	require.Len(t, d.Listeners(), 1)
	assert.Equal(t, "out", d.Events()[0].ID)
	assert.False(t, d.Events()[0].DestroyOnLoad)
	assert.Equal(t, "in", d.Listeners()[0].EventID)
	assert.Equal(t, -1, d.Listeners()[0].Order)
	assert.False(t, d.Listeners()[0].DestroyOnLoad)
}

func TestNew_RejectsLoop(t *testing.T) {
	_, err := New(context.Background(), &Input{Listen: "x", Publish: "x"})
	assert.ErrorContains(t, err, "must differ")
}

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	c, ok := r.Lookup(Kind)
	require.True(t, ok)
	assert.Equal(t, defaultListen, c.Inputs["listen"].Default.AsString())
}
