package app

import (
	"context"
	"fmt"

	"github.com/vk/scenebus/internal/binding"
	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/vk/scenebus/internal/scene"
	"github.com/zclconf/go-cty/cty"
)

// LoadScene instantiates the named scene, makes its objects live and runs the
// matching resolution pass. The first load of a run is the startup pass
// regardless of mode.
func (a *App) LoadScene(ctx context.Context, name string, mode scene.LoadMode) (*binding.Report, error) {
	model, converter := a.snapshotModel()
	return a.loadScene(ctx, model, converter, name, mode)
}

func (a *App) loadScene(
	ctx context.Context,
	model *config.Model,
	converter config.Converter,
	name string,
	mode scene.LoadMode,
) (*binding.Report, error) {
	ctx = ctxlog.With(ctx, "scene", name, "mode", mode.String())
	logger := ctxlog.FromContext(ctx)

	sc, ok := model.Scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}

	// The graph update and its pass happen under one lock, so app loads never
	// overlap and the pass cannot fail with binding.ErrPassInProgress.
	a.loading.Lock()
	defer a.loading.Unlock()

	objects, err := a.instantiate(ctx, sc, converter)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	dropped := a.graph.Load(objects, mode)
	logger.Debug("Scene graph updated.", "added", len(objects), "dropped", dropped)

	var r *binding.Report
	if !a.coordinator.Started() {
		r, err = a.coordinator.Startup(ctx)
	} else {
		r, err = a.coordinator.SceneLoaded(ctx, mode)
	}
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	a.mu.Lock()
	a.current = name
	a.mu.Unlock()

	if issues := r.Err(); issues != nil {
		logger.Warn("Scene loaded with unbound listeners.", "issues", len(r.Issues))
	}
	return r, nil
}

// instantiate builds fresh objects for sc. A persistent object that is
// already live is not created a second time.
func (a *App) instantiate(ctx context.Context, sc *config.Scene, converter config.Converter) ([]*scene.Object, error) {
	logger := ctxlog.FromContext(ctx)
	objects := make([]*scene.Object, 0, len(sc.Objects))
	for _, oc := range sc.Objects {
		if oc.Persistent {
			if _, live := a.graph.Find(oc.Name); live {
				logger.Debug("Persistent object already live, skipping.", "object", oc.Name)
				continue
			}
		}

		obj := scene.NewObject(oc.Name, oc.Persistent)
		for _, cc := range oc.Components {
			reg, ok := a.registry.Lookup(cc.Kind)
			if !ok {
				return nil, fmt.Errorf("object %q: unknown component kind %q", oc.Name, cc.Kind)
			}
			input := reg.NewInput()
			if err := converter.DecodeBody(ctx, input, cc.Arguments, reg.Inputs); err != nil {
				return nil, fmt.Errorf("object %q component %q: %w", oc.Name, cc.Kind, err)
			}
			c, err := reg.New(ctx, input)
			if err != nil {
				return nil, fmt.Errorf("object %q component %q: %w", oc.Name, cc.Kind, err)
			}
			obj.Add(c)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// Fire raises a live event and records the outcome.
func (a *App) Fire(ctx context.Context, id string, args ...cty.Value) error {
	err := a.coordinator.Fire(ctx, id, args...)
	a.metrics.ObserveFire(id, err)
	if err != nil {
		ctxlog.FromContext(ctx).Error("Event fire failed.", "event", id, "error", err)
	}
	return err
}

// Reload re-reads the scene files and loads the current scene again as a
// single load. The new model replaces the old one only once that load
// succeeds.
func (a *App) Reload(ctx context.Context) (*binding.Report, error) {
	logger := ctxlog.FromContext(ctx)
	model, converter, err := a.loader.Load(ctx, a.config.ScenePath)
	if err != nil {
		return nil, fmt.Errorf("reload: %w", err)
	}
	if err := a.registry.ValidateModel(model); err != nil {
		return nil, fmt.Errorf("reload: %w", err)
	}

	current := a.CurrentScene()
	if _, ok := model.Scenes[current]; !ok {
		return nil, fmt.Errorf("reload: scene %q no longer declared", current)
	}

	r, err := a.loadScene(ctx, model, converter, current, scene.LoadSingle)
	if err != nil {
		return nil, fmt.Errorf("reload: %w", err)
	}

	a.mu.Lock()
	a.model, a.converter = model, converter
	a.mu.Unlock()

	logger.Info("Scene files reloaded.", "scene", current)
	return r, nil
}
