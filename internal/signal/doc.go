// Package signal provides the native dispatch primitive that the binding layer
// attaches listeners to: a multicast Signal holding an ordered list of
// Handlers, each identified by a Key and tagged with the Shape of arguments it
// accepts.
//
// A Signal behaves like a multicast delegate. Attaching the same Key twice
// attaches it twice, and Detach removes the most recently attached occurrence
// of a Key. Keeping a Key attached at most once is the caller's job.
//
// Argument lists are cty values. A Shape is the list of cty types an event
// passes or a handler accepts; compatibility is checked by comparing shapes,
// allowing only safe cty conversions.
package signal
