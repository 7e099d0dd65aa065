// Package registry maps component kinds used in scene files (e.g.
// "print") to the Go code that implements them.
//
// Modules populate the registry at startup. The registry is then validated
// twice: once against itself, checking that every kind's declared inputs and
// its Go input struct agree, and once against the loaded model, rejecting
// unknown kinds and unknown arguments before any scene is instantiated.
package registry
