// Package inspect builds a read-only view of the event declarations of a set
// of objects. It never touches the live bindings: declarations are collected
// independently and signatures are re-verified on every scan.
package inspect

import (
	"cmp"
	"slices"

	"github.com/vk/scenebus/internal/decl"
	"github.com/vk/scenebus/internal/scene"
)

// UnknownEvent groups listeners whose event id nothing declares.
const UnknownEvent = "<unknown event>"

// Verdict is the outcome of checking one listener against its event.
type Verdict string

const (
	VerdictOK         Verdict = "ok"
	VerdictMismatch   Verdict = "mismatch"
	VerdictUnresolved Verdict = "unresolved"
)

// View is the result of a scan.
type View struct {
	Events       []*Event     `json:"events"`
	Verification Verification `json:"verification"`
}

// Event is one event id with the listeners that target it.
type Event struct {
	ID            string      `json:"id"`
	Known         bool        `json:"known"`
	Owner         *scene.Ref  `json:"owner,omitempty"`
	Shape         string      `json:"shape,omitempty"`
	DestroyOnLoad bool        `json:"destroy_on_load"`
	Shadowed      []scene.Ref `json:"shadowed,omitempty"`
	Listeners     []*Listener `json:"listeners"`
}

// Listener is one declared listener.
type Listener struct {
	EventID       string    `json:"event_id"`
	Target        scene.Ref `json:"target"`
	Method        string    `json:"method"`
	Order         int       `json:"order"`
	DestroyOnLoad bool      `json:"destroy_on_load"`
	Shape         string    `json:"shape"`
	Verdict       Verdict   `json:"verdict"`
	Problem       string    `json:"problem,omitempty"`
}

// Verification counts listener verdicts. Unresolved listeners are ignored.
type Verification struct {
	Checked int `json:"checked"`
	Failed  int `json:"failed"`
	Ignored int `json:"ignored"`
}

// Scan collects the declarations of every component of objects. Events keep
// declaration order, the unknown group comes last, listeners are sorted by
// order with ties in declaration order.
func Scan(objects []*scene.Object) *View {
	type found struct {
		ref   scene.Ref
		decls *decl.Declarations
	}
	var all []found
	for _, o := range objects {
		for _, inst := range o.Components() {
			all = append(all, found{ref: inst.Ref(), decls: decl.Collect(inst.Component)})
		}
	}

	v := &View{}
	byID := make(map[string]*Event)
	owners := make(map[string]decl.Event)
	for _, f := range all {
		for _, ev := range f.decls.Events() {
			if ev.ID == "" || ev.Signal == nil {
				continue
			}
			if existing, ok := byID[ev.ID]; ok {
				if owners[ev.ID].Signal != ev.Signal {
					existing.Shadowed = append(existing.Shadowed, f.ref)
				}
				continue
			}
			owner := f.ref
			e := &Event{
				ID:            ev.ID,
				Known:         true,
				Owner:         &owner,
				Shape:         ev.Signal.Shape().String(),
				DestroyOnLoad: ev.DestroyOnLoad,
			}
			byID[ev.ID] = e
			owners[ev.ID] = ev
			v.Events = append(v.Events, e)
		}
	}

	var unknown *Event
	for _, f := range all {
		for _, l := range f.decls.Listeners() {
			item := &Listener{
				EventID:       l.EventID,
				Target:        f.ref,
				Method:        l.Method,
				Order:         l.Order,
				DestroyOnLoad: l.DestroyOnLoad,
				Shape:         l.Shape.String(),
			}

			e, ok := byID[l.EventID]
			if !ok {
				if unknown == nil {
					unknown = &Event{ID: UnknownEvent}
				}
				item.Verdict = VerdictUnresolved
				unknown.Listeners = append(unknown.Listeners, item)
				v.Verification.Ignored++
				continue
			}

			v.Verification.Checked++
			item.Verdict = VerdictOK
			if err := l.Shape.Accepts(owners[l.EventID].Signal.Shape()); err != nil {
				item.Verdict = VerdictMismatch
				item.Problem = err.Error()
				v.Verification.Failed++
			}
			e.Listeners = append(e.Listeners, item)
		}
	}
	if unknown != nil {
		v.Events = append(v.Events, unknown)
	}

	for _, e := range v.Events {
		slices.SortStableFunc(e.Listeners, func(a, b *Listener) int {
			return cmp.Compare(a.Order, b.Order)
		})
		if e.Listeners == nil {
			e.Listeners = []*Listener{}
		}
	}
	return v
}

// Lookup returns the group for id.
func (v *View) Lookup(id string) (*Event, bool) {
	for _, e := range v.Events {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}
