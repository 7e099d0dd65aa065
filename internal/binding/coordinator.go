// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/vk/scenebus/internal/scene"
	"github.com/zclconf/go-cty/cty"
)

// Host exposes the live objects of the running scene.
type Host interface {
	Objects() []*scene.Object
}

// Observer is notified after every completed pass with the number of live
// events. Observers run inside the pass and must not call back into the
// Coordinator.
type Observer interface {
	ObservePass(r *Report, live int)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithObserver registers an observer for completed passes.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) {
		c.observers = append(c.observers, o)
	}
}

// WithBuilder replaces the default Builder.
func WithBuilder(b *Builder) Option {
	return func(c *Coordinator) {
		c.builder = b
	}
}

// Coordinator owns the event table across scene loads.
type Coordinator struct {
	host      Host
	builder   *Builder
	observers []Observer

	// pass is held for the duration of a pass and acquired with TryLock.
	pass sync.Mutex
	// mu guards table; a pass holds it for writing throughout.
	mu    sync.RWMutex
	table *Table
}

// NewCoordinator creates a Coordinator resolving against host.
func NewCoordinator(host Host, opts ...Option) *Coordinator {
	c := &Coordinator{
		host:    host,
		builder: NewBuilder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Startup creates the table and runs the first pass.
func (c *Coordinator) Startup(ctx context.Context) (*Report, error) {
	if !c.pass.TryLock() {
		return nil, ErrPassInProgress
	}
	defer c.pass.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.table != nil {
		return nil, ErrAlreadyStarted
	}

	start := time.Now()
	c.table = NewTable()
	r := c.builder.Build(ctx, c.host.Objects(), c.table)
	r.Kind = PassStartup
	c.finish(ctx, r, start)
	return r, nil
}

// SceneLoaded re-resolves after the host graph has been updated. A single
// load tears down every destroy-on-load binding first.
func (c *Coordinator) SceneLoaded(ctx context.Context, mode scene.LoadMode) (*Report, error) {
	if !c.pass.TryLock() {
		return nil, ErrPassInProgress
	}
	defer c.pass.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.table == nil {
		return nil, ErrNotStarted
	}

	start := time.Now()
	var r *Report
	switch mode {
	case scene.LoadSingle:
		torn := &Report{}
		teardown(ctx, c.table, torn)
		r = c.builder.Build(ctx, c.host.Objects(), c.table)
		r.Kind = PassSingle
		r.EventsRemoved = torn.EventsRemoved
		r.ListenersRemoved = torn.ListenersRemoved
		r.Detached += torn.Detached
	case scene.LoadAdditive:
		r = c.builder.Build(ctx, c.host.Objects(), c.table)
		r.Kind = PassAdditive
	default:
		return nil, fmt.Errorf("unsupported load mode %d", mode)
	}
	c.finish(ctx, r, start)
	return r, nil
}

func (c *Coordinator) finish(ctx context.Context, r *Report, start time.Time) {
	r.Duration = time.Since(start)
	ctxlog.FromContext(ctx).Info("Resolution pass complete.",
		"kind", r.Kind,
		"events", c.table.Len(),
		"attached", r.Attached,
		"detached", r.Detached,
		"issues", len(r.Issues),
		"duration", r.Duration)
	for _, o := range c.observers {
		o.ObservePass(r, c.table.Len())
	}
}

// Fire invokes the live signal registered under id. Handlers run without any
// Coordinator lock held.
func (c *Coordinator) Fire(ctx context.Context, id string, args ...cty.Value) error {
	c.mu.RLock()
	if c.table == nil {
		c.mu.RUnlock()
		return ErrNotStarted
	}
	ev, ok := c.table.Get(id)
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, id)
	}
	return ev.signal.Fire(ctx, args...)
}

// Snapshot returns copies of every live descriptor in declaration order.
func (c *Coordinator) Snapshot() []EventView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.table == nil {
		return nil
	}
	out := make([]EventView, 0, c.table.Len())
	for _, d := range c.table.Descriptors() {
		out = append(out, d.view())
	}
	return out
}

// Lookup returns a copy of the descriptor for id.
func (c *Coordinator) Lookup(id string) (EventView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.table == nil {
		return EventView{}, false
	}
	d, ok := c.table.Get(id)
	if !ok {
		return EventView{}, false
	}
	return d.view(), true
}

// Len returns the number of live events.
func (c *Coordinator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.table == nil {
		return 0
	}
	return c.table.Len()
}

// Started reports whether Startup has completed.
func (c *Coordinator) Started() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table != nil
}
