package decl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scenebus/internal/signal"
	"github.com/zclconf/go-cty/cty"
)

type scoreKeeper struct {
	changed *signal.Signal
}

func (s *scoreKeeper) Declare(d *Declarations) {
	d.Event("score_changed", s.changed)
	d.Event("round_over", s.changed, DestroyOnLoad(true))
	d.Listen("points_scored", "OnPoints", signal.Shape{cty.Number}, s.onPoints)
	d.Listen("bonus", "OnPoints", signal.Shape{cty.Number}, s.onPoints, Order(-3), DestroyOnLoad(false))
}

func (s *scoreKeeper) onPoints(context.Context, []cty.Value) error { return nil }

func TestCollect(t *testing.T) {
	keeper := &scoreKeeper{changed: signal.New(signal.Shape{cty.Number})}
	d := Collect(keeper)

	events := d.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "score_changed", events[0].ID)
	assert.False(t, events[0].DestroyOnLoad, "events persist by default")
	assert.Same(t, keeper.changed, events[0].Signal)
	assert.True(t, events[1].DestroyOnLoad)

	listeners := d.Listeners()
	require.Len(t, listeners, 2)
	assert.Equal(t, "points_scored", listeners[0].EventID)
	assert.Equal(t, "OnPoints", listeners[0].Method)
	assert.Equal(t, 0, listeners[0].Order)
	assert.True(t, listeners[0].DestroyOnLoad, "listeners are destroyed on load by default")
	assert.NotNil(t, listeners[0].Fn)

	assert.Equal(t, "bonus", listeners[1].EventID)
	assert.Equal(t, -3, listeners[1].Order)
	assert.False(t, listeners[1].DestroyOnLoad)
}

func TestCollect_NonDeclarer(t *testing.T) {
	d := Collect(struct{}{})
	assert.Empty(t, d.Events())
	assert.Empty(t, d.Listeners())
}
