// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/vk/scenebus/internal/decl"
	"github.com/vk/scenebus/internal/scene"
	"github.com/vk/scenebus/internal/signal"
)

// Builder runs a single resolution pass against a table.
type Builder struct{}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// scanned pairs a component instance with its declarations.
type scanned struct {
	inst  *scene.Instance
	decls *decl.Declarations
}

// Build scans objects, adds newly declared events to table and attaches every
// listener not already bound. Listener problems are collected in the report
// and never abort the pass.
func (b *Builder) Build(ctx context.Context, objects []*scene.Object, table *Table) *Report {
	logger := ctxlog.FromContext(ctx)
	r := &Report{Objects: len(objects)}

	var found []scanned
	for _, o := range objects {
		for _, inst := range o.Components() {
			found = append(found, scanned{inst: inst, decls: decl.Collect(inst.Component)})
		}
	}
	r.Components = len(found)

	// A signal backs at most one live event id.
	bound := make(map[*signal.Signal]string, table.Len())
	for _, d := range table.Descriptors() {
		bound[d.signal] = d.ID
	}

	// Events first, so listeners may reference events declared later in
	// enumeration order.
	for _, f := range found {
		owner := f.inst.Ref()
		for _, ev := range f.decls.Events() {
			if ev.ID == "" || ev.Signal == nil {
				logger.Warn("Skipping invalid event declaration.", "owner", owner.String(), "event", ev.ID)
				continue
			}
			if existing, ok := table.Get(ev.ID); ok {
				if existing.signal != ev.Signal {
					r.DuplicateEvents++
					logger.Debug("Event already declared, keeping first declaration.",
						"event", ev.ID, "owner", existing.Owner.String(), "duplicate", owner.String())
				}
				continue
			}
			if id, ok := bound[ev.Signal]; ok {
				r.SharedSignals++
				logger.Warn("Skipping event declaration, signal already bound to another event.",
					"event", ev.ID, "bound_to", id, "owner", owner.String())
				continue
			}
			bound[ev.Signal] = ev.ID
			table.add(&EventDescriptor{
				ID:            ev.ID,
				Shape:         ev.Signal.Shape(),
				DestroyOnLoad: ev.DestroyOnLoad,
				Owner:         owner,
				signal:        ev.Signal,
			})
			r.EventsAdded++
		}
	}

	var touched []*EventDescriptor
	for _, f := range found {
		target := f.inst.Ref()
		for _, l := range f.decls.Listeners() {
			ev, ok := table.Get(l.EventID)
			if !ok {
				logger.Warn("Listener references an event no component declares.",
					"event", l.EventID, "target", target.String(), "method", l.Method)
				r.Issues = append(r.Issues, &ListenerError{
					EventID: l.EventID, Target: target, Method: l.Method, Err: ErrUnresolvedListener,
				})
				continue
			}
			if err := l.Shape.Accepts(ev.Shape); err != nil {
				logger.Error("Listener signature does not match event.",
					"event", l.EventID, "event_shape", ev.Shape.String(),
					"target", target.String(), "method", l.Method, "listener_shape", l.Shape.String(),
					"error", err)
				r.Issues = append(r.Issues, &ListenerError{
					EventID: l.EventID, Target: target, Method: l.Method,
					Err: fmt.Errorf("%w: %w", ErrSignatureMismatch, err),
				})
				continue
			}

			key := signal.Key{Target: f.inst.ID, Method: l.Method}
			if ev.has(key) {
				r.DuplicateBindings++
				continue
			}
			if len(ev.pending) == 0 {
				touched = append(touched, ev)
			}
			ev.pending = append(ev.pending, &ListenerDescriptor{
				EventID:       l.EventID,
				Order:         l.Order,
				DestroyOnLoad: l.DestroyOnLoad,
				Target:        target,
				Method:        l.Method,
				handler:       signal.Handler{Key: key, Shape: l.Shape, Fn: l.Fn},
			})
			r.ListenersBound++
		}
	}

	for _, ev := range touched {
		attached, detached := ev.merge()
		r.Attached += attached
		r.Detached += detached
		logger.Debug("Event subscribers updated.",
			"event", ev.ID, "subscribers", len(ev.subscribers), "attached", attached, "detached", detached)
	}
	return r
}

// merge folds pending into subscribers, sorted by order with ties in
// discovery order, and brings the signal in line. Only the suffix of the
// attached list that differs from the merged list is reattached.
func (d *EventDescriptor) merge() (attached, detached int) {
	merged := make([]*ListenerDescriptor, 0, len(d.subscribers)+len(d.pending))
	merged = append(merged, d.subscribers...)
	merged = append(merged, d.pending...)
	slices.SortStableFunc(merged, func(a, b *ListenerDescriptor) int {
		return cmp.Compare(a.Order, b.Order)
	})

	keep := 0
	for keep < len(d.subscribers) && d.subscribers[keep] == merged[keep] {
		keep++
	}
	for i := len(d.subscribers) - 1; i >= keep; i-- {
		if d.signal.Detach(d.subscribers[i].Key()) {
			detached++
		}
	}
	for _, l := range merged[keep:] {
		d.signal.Attach(l.handler)
		attached++
	}

	d.subscribers = merged
	d.pending = nil
	return attached, detached
}

// teardown removes every destroy-on-load event and every destroy-on-load
// listener from table. The plan is collected before anything is detached.
func teardown(ctx context.Context, table *Table, r *Report) {
	logger := ctxlog.FromContext(ctx)

	type cut struct {
		ev    *EventDescriptor
		stale []*ListenerDescriptor
		keep  []*ListenerDescriptor
	}
	var plan []cut
	for _, ev := range table.Descriptors() {
		if ev.DestroyOnLoad {
			plan = append(plan, cut{ev: ev, stale: ev.subscribers})
			continue
		}
		c := cut{ev: ev}
		for _, l := range ev.subscribers {
			if l.DestroyOnLoad {
				c.stale = append(c.stale, l)
			} else {
				c.keep = append(c.keep, l)
			}
		}
		if len(c.stale) > 0 {
			plan = append(plan, c)
		}
	}

	for _, c := range plan {
		for i := len(c.stale) - 1; i >= 0; i-- {
			if c.ev.signal.Detach(c.stale[i].Key()) {
				r.Detached++
			}
		}
		r.ListenersRemoved += len(c.stale)
		c.ev.subscribers = c.keep
		if c.ev.DestroyOnLoad {
			table.remove(c.ev.ID)
			r.EventsRemoved++
			logger.Debug("Event removed on scene load.", "event", c.ev.ID, "owner", c.ev.Owner.String())
		}
	}
}
