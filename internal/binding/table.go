// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"slices"

	"github.com/vk/scenebus/internal/scene"
	"github.com/vk/scenebus/internal/signal"
)

// EventDescriptor is the live record of one declared event.
type EventDescriptor struct {
	ID            string
	Shape         signal.Shape
	DestroyOnLoad bool
	Owner         scene.Ref

	signal *signal.Signal

	// subscribers mirrors the handlers the table attached to signal, in
	// invocation order. pending holds listeners discovered by the current
	// pass that are not yet attached.
	subscribers []*ListenerDescriptor
	pending     []*ListenerDescriptor
}

// ListenerDescriptor is the record of one listener bound to an event.
type ListenerDescriptor struct {
	EventID       string
	Order         int
	DestroyOnLoad bool
	Target        scene.Ref
	Method        string

	handler signal.Handler
}

// Key returns the handler identity used for deduplication.
func (l *ListenerDescriptor) Key() signal.Key {
	return l.handler.Key
}

// has reports whether a listener with key k is subscribed or pending.
func (d *EventDescriptor) has(k signal.Key) bool {
	for _, l := range d.subscribers {
		if l.Key() == k {
			return true
		}
	}
	for _, l := range d.pending {
		if l.Key() == k {
			return true
		}
	}
	return false
}

// Table maps event ids to descriptors and iterates in insertion order.
type Table struct {
	ids    []string
	events map[string]*EventDescriptor
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{events: make(map[string]*EventDescriptor)}
}

// Get returns the descriptor for id.
func (t *Table) Get(id string) (*EventDescriptor, bool) {
	d, ok := t.events[id]
	return d, ok
}

// Len returns the number of descriptors.
func (t *Table) Len() int {
	return len(t.ids)
}

// Descriptors returns the descriptors in insertion order.
func (t *Table) Descriptors() []*EventDescriptor {
	out := make([]*EventDescriptor, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, t.events[id])
	}
	return out
}

// add inserts d. The caller guarantees the id is not present.
func (t *Table) add(d *EventDescriptor) {
	t.ids = append(t.ids, d.ID)
	t.events[d.ID] = d
}

func (t *Table) remove(id string) {
	if _, ok := t.events[id]; !ok {
		return
	}
	delete(t.events, id)
	t.ids = slices.DeleteFunc(t.ids, func(s string) bool { return s == id })
}
