// Package app contains the core application logic. It wires the scene graph,
// the binding coordinator and the component registry together, plays the
// steps of the loaded scene files and serves the health, inspection and
// metrics endpoints. It is decoupled from any specific entrypoint.
package app
