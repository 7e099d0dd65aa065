package config

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of all loaded scene files.
type Model struct {
	Scenes map[string]*Scene
	Steps  []*Step
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Scenes: make(map[string]*Scene)}
}

// SceneNames returns the scene names in lexical order.
func (m *Model) SceneNames() []string {
	names := make([]string, 0, len(m.Scenes))
	for name := range m.Scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scene is the format-agnostic representation of a `scene` block.
type Scene struct {
	Name    string
	File    string
	Objects []*Object
}

// Object is one object of a scene.
type Object struct {
	Name       string
	Persistent bool
	Components []*Component
}

// Component is one component attached to an object.
type Component struct {
	Kind      string
	Arguments map[string]hcl.Expression
	Range     hcl.Range
}

// StepKind names what a step does.
type StepKind string

const (
	StepLoad StepKind = "load"
	StepFire StepKind = "fire"
)

// Step is one action played against the running scene, in file order.
type Step struct {
	Kind StepKind

	// Load.
	Scene string
	Mode  string

	// Fire.
	Event string
	Args  hcl.Expression
}

// InputDefinition defines a single argument a component kind accepts.
type InputDefinition struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
	Optional    bool
}
