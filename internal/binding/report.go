// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"errors"
	"time"
)

// PassKind names what triggered a resolution pass.
type PassKind string

const (
	PassStartup  PassKind = "startup"
	PassSingle   PassKind = "single"
	PassAdditive PassKind = "additive"
)

// Report summarizes one resolution pass.
type Report struct {
	Kind PassKind `json:"kind"`

	// Scan.
	Objects    int `json:"objects"`
	Components int `json:"components"`

	// Events.
	EventsAdded     int `json:"events_added"`
	DuplicateEvents int `json:"duplicate_events"`
	EventsRemoved   int `json:"events_removed"`
	// SharedSignals counts declarations skipped because their signal already
	// backs a different live id.
	SharedSignals int `json:"shared_signals"`

	// Listeners.
	ListenersBound    int `json:"listeners_bound"`
	DuplicateBindings int `json:"duplicate_bindings"`
	ListenersRemoved  int `json:"listeners_removed"`

	// Native signal calls.
	Attached int `json:"attached"`
	Detached int `json:"detached"`

	Issues   []*ListenerError `json:"-"`
	Duration time.Duration    `json:"duration"`
}

// Err joins the listener issues of the pass, or returns nil.
func (r *Report) Err() error {
	if len(r.Issues) == 0 {
		return nil
	}
	errs := make([]error, len(r.Issues))
	for i, issue := range r.Issues {
		errs[i] = issue
	}
	return errors.Join(errs...)
}
