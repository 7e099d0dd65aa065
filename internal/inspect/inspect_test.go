package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scenebus/internal/decl"
	"github.com/vk/scenebus/internal/scene"
	"github.com/vk/scenebus/internal/signal"
	"github.com/zclconf/go-cty/cty"
)

type declarer struct {
	kind string
	fn   func(d *decl.Declarations)
}

func (c declarer) Kind() string                 { return c.kind }
func (c declarer) Declare(d *decl.Declarations) { c.fn(d) }

func noop(context.Context, []cty.Value) error { return nil }

func objectWith(name string, c scene.Component) *scene.Object {
	o := scene.NewObject(name, false)
	o.Add(c)
	return o
}

func fixture() []*scene.Object {
	score := signal.New(signal.Shape{cty.Number})
	shadow := signal.New(signal.Shape{cty.String})
	return []*scene.Object{
		objectWith("manager", declarer{"emitter", func(d *decl.Declarations) {
			d.Event("score_changed", score)
		}}),
		objectWith("b", declarer{"print", func(d *decl.Declarations) {
			d.Listen("score_changed", "Print", signal.Shape{cty.Number}, noop, decl.Order(5))
		}}),
		objectWith("c", declarer{"print", func(d *decl.Declarations) {
			d.Listen("score_changed", "Print", signal.Shape{cty.Bool}, noop, decl.Order(1))
		}}),
		objectWith("copycat", declarer{"emitter", func(d *decl.Declarations) {
			d.Event("score_changed", shadow, decl.DestroyOnLoad(true))
		}}),
		objectWith("e", declarer{"print", func(d *decl.Declarations) {
			d.Listen("ghost_event", "Print", signal.Shape{cty.Number}, noop)
		}}),
	}
}

func TestScan(t *testing.T) {
	v := Scan(fixture())

	require.Len(t, v.Events, 2)
	score := v.Events[0]
	assert.Equal(t, "score_changed", score.ID)
	assert.True(t, score.Known)
	assert.Equal(t, "manager", score.Owner.Object)
	assert.Equal(t, "(number)", score.Shape)
	assert.False(t, score.DestroyOnLoad)
	require.Len(t, score.Shadowed, 1)
	assert.Equal(t, "copycat", score.Shadowed[0].Object)

	type row struct {
		Object  string
		Order   int
		Verdict Verdict
	}
	var rows []row
	for _, l := range score.Listeners {
		rows = append(rows, row{l.Target.Object, l.Order, l.Verdict})
	}
	want := []row{{"c", 1, VerdictMismatch}, {"b", 5, VerdictOK}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("listeners mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, score.Listeners[0].Problem, "cannot assign number to bool")

	unknown, ok := v.Lookup(UnknownEvent)
	require.True(t, ok)
	assert.False(t, unknown.Known)
	assert.Nil(t, unknown.Owner)
	require.Len(t, unknown.Listeners, 1)
	assert.Equal(t, "ghost_event", unknown.Listeners[0].EventID)
	assert.Equal(t, VerdictUnresolved, unknown.Listeners[0].Verdict)

	assert.Equal(t, Verification{Checked: 2, Failed: 1, Ignored: 1}, v.Verification)
}

func TestScan_IsIndependentOfObjectState(t *testing.T) {
	objects := fixture()
	first := Scan(objects)
	second := Scan(objects)
	if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("repeated scans differ (-first +second):\n%s", diff)
	}
}

func TestScan_Empty(t *testing.T) {
	v := Scan(nil)
	assert.Empty(t, v.Events)
	_, ok := v.Lookup(UnknownEvent)
	assert.False(t, ok)
}

func TestView_WriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Scan(fixture()).WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, "manager/emitter.score_changed (number)\n")
	assert.Contains(t, out, "shadowed by")
	assert.Contains(t, out, "c/print.Print")
	assert.Contains(t, out, "mismatch: ")
	assert.Contains(t, out, "[DestroyOnLoad]")
	assert.Contains(t, out, UnknownEvent+"\n")
	assert.Contains(t, out, "Verified 2 listeners, 1 failed, 1 ignored (no event found)")
}

func TestView_JSON(t *testing.T) {
	b, err := json.Marshal(Scan(fixture()))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	events := decoded["events"].([]any)
	require.Len(t, events, 2)
	first := events[0].(map[string]any)
	assert.Equal(t, "score_changed", first["id"])
	assert.Equal(t, "manager", first["owner"].(map[string]any)["object"])
}
