package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubComponent struct{ kind string }

func (s *stubComponent) Kind() string { return s.kind }

func names(objs []*Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.Name
	}
	return out
}

func TestGraph_Load(t *testing.T) {
	g := NewGraph()
	manager := NewObject("manager", true)
	hud := NewObject("hud", false)

	assert.Equal(t, 0, g.Load([]*Object{manager, hud}, LoadSingle))
	assert.Equal(t, []string{"manager", "hud"}, names(g.Objects()))

	t.Run("additive keeps everything", func(t *testing.T) {
		dropped := g.Load([]*Object{NewObject("overlay", false)}, LoadAdditive)
		assert.Equal(t, 0, dropped)
		assert.Equal(t, []string{"manager", "hud", "overlay"}, names(g.Objects()))
	})

	t.Run("single keeps persistent objects only", func(t *testing.T) {
		dropped := g.Load([]*Object{NewObject("level2", false)}, LoadSingle)
		assert.Equal(t, 2, dropped)
		assert.Equal(t, []string{"manager", "level2"}, names(g.Objects()))
	})

	found, ok := g.Find("manager")
	require.True(t, ok)
	assert.Same(t, manager, found)
	_, ok = g.Find("hud")
	assert.False(t, ok)
}

func TestGraph_ObjectsIsACopy(t *testing.T) {
	g := NewGraph()
	g.Load([]*Object{NewObject("a", false)}, LoadSingle)

	objs := g.Objects()
	objs[0] = NewObject("b", false)
	assert.Equal(t, []string{"a"}, names(g.Objects()))
}

func TestObject_Components(t *testing.T) {
	o := NewObject("player", false)
	first := o.Add(&stubComponent{kind: "emitter"})
	second := o.Add(&stubComponent{kind: "printer"})

	comps := o.Components()
	require.Len(t, comps, 2)
	assert.Same(t, first, comps[0])
	assert.Same(t, second, comps[1])
	assert.NotEqual(t, first.ID, second.ID)

	ref := second.Ref()
	assert.Equal(t, "player", ref.Object)
	assert.Equal(t, o.ID, ref.ObjectID)
	assert.Equal(t, "printer", ref.Kind)
	assert.Equal(t, second.ID, ref.Component)
	assert.Equal(t, "player/printer", ref.String())
}

func TestParseLoadMode(t *testing.T) {
	testCases := map[string]LoadMode{
		"single":   LoadSingle,
		"replace":  LoadSingle,
		"":         LoadSingle,
		"Additive": LoadAdditive,
	}
	for in, want := range testCases {
		got, err := ParseLoadMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLoadMode("merge")
	assert.ErrorContains(t, err, "unknown load mode")
	assert.Equal(t, "additive", LoadAdditive.String())
	assert.Equal(t, "single", LoadSingle.String())
}
