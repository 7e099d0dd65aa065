// Package scene is the host side of the binding layer: a minimal scene graph
// of named objects carrying component instances.
//
// Graph supplies the enumeration contract the binding layer depends on:
// Objects returns live objects in a stable order, and each Object returns its
// component instances in attachment order. Loading a scene in LoadSingle mode
// keeps only persistent objects before adding the new ones; LoadAdditive
// merges the new objects into the current set.
package scene
