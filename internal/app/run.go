package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/vk/scenebus/internal/inspect"
	"github.com/vk/scenebus/internal/scene"
)

// Run plays the declared steps in order. With Inspect set the declaration
// listing of the final graph is written afterwards. With Watch set Run keeps
// reloading the current scene on file changes until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if a.config.HealthcheckPort > 0 {
		g.Go(func() error { return a.serveHealthcheck(gctx) })
	} else {
		a.logger.Debug("Health check server disabled.")
	}

	g.Go(func() error {
		// Stops the health check server once the steps are done.
		defer cancel()
		if err := a.play(gctx); err != nil {
			return err
		}
		if a.config.Inspect {
			if err := inspect.Scan(a.graph.Objects()).WriteText(a.outW); err != nil {
				return fmt.Errorf("write inspection: %w", err)
			}
		}
		if a.config.Watch {
			return a.Watch(gctx)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) play(ctx context.Context) error {
	model, converter := a.snapshotModel()
	if len(model.Steps) == 0 {
		a.logger.Warn("No steps declared, nothing to play.")
		return nil
	}

	a.logger.Info("🚀 Playing steps...", "count", len(model.Steps))
	for i, step := range model.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.playStep(ctx, step, converter); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Kind, err)
		}
	}
	a.logger.Info("🏁 All steps played.", "events", a.coordinator.Len())
	return nil
}

func (a *App) playStep(ctx context.Context, step *config.Step, converter config.Converter) error {
	switch step.Kind {
	case config.StepLoad:
		mode, err := scene.ParseLoadMode(step.Mode)
		if err != nil {
			return err
		}
		_, err = a.LoadScene(ctx, step.Scene, mode)
		return err
	case config.StepFire:
		args, err := converter.EvalArgs(ctx, step.Args)
		if err != nil {
			return fmt.Errorf("event %q: %w", step.Event, err)
		}
		return a.Fire(ctx, step.Event, args...)
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
}
