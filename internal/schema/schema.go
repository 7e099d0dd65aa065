// Package schema holds the gohcl decoding targets for scene files.
package schema

import "github.com/hashicorp/hcl/v2"

// Component is a `component "kind" { ... }` block. Its attributes are the
// component arguments and are extracted lazily.
type Component struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

// Object is an `object "name" { ... }` block.
type Object struct {
	Name       string       `hcl:"name,label"`
	Persistent bool         `hcl:"persistent,optional"`
	Components []*Component `hcl:"component,block"`
}

// Scene is a `scene "name" { ... }` block.
type Scene struct {
	Name    string    `hcl:"name,label"`
	Objects []*Object `hcl:"object,block"`
}

// Step is a `step "load" { ... }` or `step "fire" { ... }` block.
type Step struct {
	Kind  string         `hcl:"kind,label"`
	Scene string         `hcl:"scene,optional"`
	Mode  string         `hcl:"mode,optional"`
	Event string         `hcl:"event,optional"`
	Args  hcl.Expression `hcl:"args,optional"`
}

// File is the top-level structure of a scene file. Unknown blocks are errors.
type File struct {
	Scenes []*Scene `hcl:"scene,block"`
	Steps  []*Step  `hcl:"step,block"`
}
