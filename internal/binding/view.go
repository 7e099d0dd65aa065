// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import "github.com/vk/scenebus/internal/scene"

// EventView is a read-only copy of an EventDescriptor.
type EventView struct {
	ID            string         `json:"id"`
	Shape         string         `json:"shape"`
	DestroyOnLoad bool           `json:"destroy_on_load"`
	Owner         scene.Ref      `json:"owner"`
	Listeners     []ListenerView `json:"listeners"`
}

// ListenerView is a read-only copy of a ListenerDescriptor.
type ListenerView struct {
	Order         int       `json:"order"`
	DestroyOnLoad bool      `json:"destroy_on_load"`
	Target        scene.Ref `json:"target"`
	Method        string    `json:"method"`
}

func (d *EventDescriptor) view() EventView {
	v := EventView{
		ID:            d.ID,
		Shape:         d.Shape.String(),
		DestroyOnLoad: d.DestroyOnLoad,
		Owner:         d.Owner,
		Listeners:     make([]ListenerView, 0, len(d.subscribers)),
	}
	for _, l := range d.subscribers {
		v.Listeners = append(v.Listeners, ListenerView{
			Order:         l.Order,
			DestroyOnLoad: l.DestroyOnLoad,
			Target:        l.Target,
			Method:        l.Method,
		})
	}
	return v
}
