// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"errors"
	"fmt"

	"github.com/vk/scenebus/internal/scene"
)

var (
	// ErrUnresolvedListener is reported for a listener whose event id has no
	// descriptor in the table.
	ErrUnresolvedListener = errors.New("listener references unknown event")

	// ErrSignatureMismatch is reported for a listener whose shape cannot accept
	// the arguments of the event it targets.
	ErrSignatureMismatch = errors.New("listener signature does not match event")

	// ErrPassInProgress is returned when a pass is requested while another one
	// is running, such as from a Host.Objects or Declare call made during a
	// pass. Handlers run outside passes and may request one.
	ErrPassInProgress = errors.New("resolution pass already in progress")

	ErrAlreadyStarted = errors.New("coordinator already started")
	ErrNotStarted     = errors.New("coordinator not started")

	// ErrUnknownEvent is returned by Fire for an id with no live descriptor.
	ErrUnknownEvent = errors.New("unknown event")
)

// ListenerError describes a listener dropped during a pass.
type ListenerError struct {
	EventID string
	Target  scene.Ref
	Method  string
	Err     error
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %s.%s for event %q: %v", e.Target, e.Method, e.EventID, e.Err)
}

// Unwrap returns the underlying error.
func (e *ListenerError) Unwrap() error {
	return e.Err
}
