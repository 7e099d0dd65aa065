// Package config defines the format-agnostic model of a scene file set,
// along with the interfaces (Loader, Converter) that concrete formats such as
// HCL implement.
//
// The Model is the single source of truth for the app: it names the scenes,
// the objects and components each one instantiates, and the ordered steps to
// play against the running scene.
package config
