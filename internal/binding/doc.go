// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package binding resolves the event and listener declarations of the live
// scene into native signal subscriptions and keeps them consistent across
// scene loads.
//
// The Builder performs one resolution pass over a set of objects. The
// Coordinator owns the event table across passes: it builds the table at
// startup, tears down destroy-on-load bindings on a replace load, and
// re-resolves after every load so that each listener is attached exactly once,
// in ascending order.
package binding
