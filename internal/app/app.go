package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/vk/scenebus/internal/binding"
	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/vk/scenebus/internal/metrics"
	"github.com/vk/scenebus/internal/registry"
	"github.com/vk/scenebus/internal/scene"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW        io.Writer
	logger      *slog.Logger
	config      *Config
	loader      config.Loader
	registry    *registry.Registry
	graph       *scene.Graph
	coordinator *binding.Coordinator
	metrics     *metrics.Collector

	// loading serializes scene loads.
	loading sync.Mutex

	mu        sync.Mutex
	model     *config.Model
	converter config.Converter
	current   string

	httpServer *http.Server
}

// NewApp is the constructor for the main application. Invalid scene files and
// inconsistent component registrations are startup errors and panic.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules(outW)
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "kinds", reg.Kinds())

	if err := reg.ValidateRegistry(ctx); err != nil {
		// A mismatch between a kind's inputs and its Go struct is a programmer error.
		panic(err)
	}

	model, converter, err := loader.Load(ctx, cfg.ScenePath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	if err := reg.ValidateModel(model); err != nil {
		panic(err)
	}
	logger.Debug("Scene files loaded and validated.", "scenes", len(model.Scenes), "steps", len(model.Steps))

	graph := scene.NewGraph()
	collector := metrics.New()
	return &App{
		outW:        outW,
		logger:      logger,
		config:      cfg,
		loader:      loader,
		registry:    reg,
		graph:       graph,
		coordinator: binding.NewCoordinator(graph, binding.WithObserver(collector)),
		metrics:     collector,
		model:       model,
		converter:   converter,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Coordinator returns the binding coordinator.
func (a *App) Coordinator() *binding.Coordinator {
	return a.coordinator
}

// Graph returns the live scene graph.
func (a *App) Graph() *scene.Graph {
	return a.graph
}

// Metrics returns the metrics collector.
func (a *App) Metrics() *metrics.Collector {
	return a.metrics
}

// CurrentScene returns the name of the most recently loaded scene.
func (a *App) CurrentScene() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *App) snapshotModel() (*config.Model, config.Converter) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.model, a.converter
}
