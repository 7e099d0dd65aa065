package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/vk/scenebus/internal/hcl"
	"github.com/vk/scenebus/internal/testutil"
	"github.com/vk/scenebus/modules/emitter"
	"github.com/vk/scenebus/modules/print"
	"github.com/vk/scenebus/modules/scoreboard"
)

// harness holds an App built from scene files in a temp dir. Printed lines
// and logs go to separate buffers.
type harness struct {
	app     *App
	dir     string
	printed *testutil.SafeBuffer
	logs    *testutil.SafeBuffer
	ctx     context.Context
}

func newHarness(t *testing.T, files map[string]string, configure ...func(*Config)) *harness {
	t.Helper()

	dir := testutil.WriteFiles(t, files)
	cfg := &Config{ScenePath: dir, LogLevel: "debug"}
	for _, fn := range configure {
		fn(cfg)
	}

	printed := &testutil.SafeBuffer{}
	logs := &testutil.SafeBuffer{}
	app := NewApp(logs, cfg, hcl.NewLoader(),
		&emitter.Module{},
		&print.Module{Out: printed},
		&scoreboard.Module{},
	)
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("--- App logs for %s ---\n%s", t.Name(), logs.String())
		}
	})
	ctx := ctxlog.WithLogger(context.Background(), app.logger)
	return &harness{app: app, dir: dir, printed: printed, logs: logs, ctx: ctx}
}

// lines returns the printed lines.
func (h *harness) lines() []string {
	out := strings.TrimSpace(h.printed.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, filepath.FromSlash(name))
}

// managerObject is a persistent object that owns points_scored and keeps
// the score.
const managerObject = `
	object "manager" {
		persistent = true
		component "emitter" {
			event  = "points_scored"
			params = ["number"]
		}
		component "scoreboard" {}
	}
`

func (h *harness) logsContain(s string) bool {
	return strings.Contains(h.logs.String(), s)
}
