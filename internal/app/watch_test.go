package app

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scenebus/internal/scene"
	"github.com/zclconf/go-cty/cty"
)

const hudScene = `
	scene "main" {` + managerObject + `
		object "hud" {
			component "print" {
				event = "score_changed"
				label = "old"
			}
		}
	}
`

const bonusScene = `
	scene "main" {` + managerObject + `
		object "hud" {
			component "print" {
				event = "score_changed"
				label = "new"
			}
			component "emitter" {
				event = "bonus"
			}
		}
	}
`

func TestReload(t *testing.T) {
	h := newHarness(t, map[string]string{"main.hcl": hudScene})

	_, err := h.app.LoadScene(h.ctx, "main", scene.LoadSingle)
	require.NoError(t, err)
	require.NoError(t, h.app.Fire(h.ctx, "points_scored", cty.NumberIntVal(4)))

	require.NoError(t, os.WriteFile(h.path("main.hcl"), []byte(bonusScene), 0o644))
	r, err := h.app.Reload(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, r.ListenersRemoved)

	_, ok := h.app.Coordinator().Lookup("bonus")
	assert.True(t, ok)
	require.NoError(t, h.app.Fire(h.ctx, "points_scored", cty.NumberIntVal(4)))

	// The persistent scoreboard keeps its total across the reload.
	assert.Equal(t, []string{
		"[old] score_changed: 4",
		"[new] score_changed: 8",
	}, h.lines())
}

func TestReload_InvalidFilesKeepCurrentScene(t *testing.T) {
	h := newHarness(t, map[string]string{"main.hcl": hudScene})

	_, err := h.app.LoadScene(h.ctx, "main", scene.LoadSingle)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(h.path("main.hcl"), []byte(`scene "main" {`), 0o644))
	_, err = h.app.Reload(h.ctx)
	require.ErrorContains(t, err, "reload")

	require.NoError(t, os.WriteFile(h.path("main.hcl"), []byte(`scene "other" {}`), 0o644))
	_, err = h.app.Reload(h.ctx)
	require.ErrorContains(t, err, `scene "main" no longer declared`)

	require.NoError(t, h.app.Fire(h.ctx, "points_scored", cty.NumberIntVal(1)))
	assert.Equal(t, []string{"[old] score_changed: 1"}, h.lines())
}

func TestReload_ConstructorErrorKeepsPreviousModel(t *testing.T) {
	h := newHarness(t, map[string]string{"main.hcl": hudScene})

	_, err := h.app.LoadScene(h.ctx, "main", scene.LoadSingle)
	require.NoError(t, err)

	// Valid for the registry, rejected by the scoreboard constructor.
	broken := `
		scene "main" {
			object "board" {
				component "scoreboard" {
					listen  = "same"
					publish = "same"
				}
			}
		}
	`
	require.NoError(t, os.WriteFile(h.path("main.hcl"), []byte(broken), 0o644))
	_, err = h.app.Reload(h.ctx)
	require.ErrorContains(t, err, `object "board" component "scoreboard"`)

	_, err = h.app.LoadScene(h.ctx, "main", scene.LoadSingle)
	require.NoError(t, err)
	require.NoError(t, h.app.Fire(h.ctx, "points_scored", cty.NumberIntVal(2)))
	assert.Equal(t, []string{"[old] score_changed: 2"}, h.lines())
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	h := newHarness(t, map[string]string{"main.hcl": hudScene})

	_, err := h.app.LoadScene(h.ctx, "main", scene.LoadSingle)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(h.ctx)
	done := make(chan error, 1)
	go func() { done <- h.app.Watch(ctx) }()

	require.Eventually(t, func() bool {
		return h.logsContain("Watching scene files.")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(h.path("main.hcl"), []byte(bonusScene), 0o644))
	require.Eventually(t, func() bool {
		_, ok := h.app.Coordinator().Lookup("bonus")
		return ok
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestRun_WatchStopsOnCancel(t *testing.T) {
	h := newHarness(t, map[string]string{
		"main.hcl": hudScene + `
			step "load" {
				scene = "main"
			}
		`,
	}, func(c *Config) { c.Watch = true })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.app.Run(ctx) }()

	require.Eventually(t, func() bool {
		return h.app.Coordinator().Started()
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
