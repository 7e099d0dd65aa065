package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/schema"
)

func (l *Loader) translateScene(s *schema.Scene, file string) (*config.Scene, error) {
	sc := &config.Scene{Name: s.Name, File: file}
	names := make(map[string]struct{}, len(s.Objects))
	for _, o := range s.Objects {
		if _, dup := names[o.Name]; dup {
			return nil, fmt.Errorf("scene %q: object %q declared twice", s.Name, o.Name)
		}
		names[o.Name] = struct{}{}

		obj := &config.Object{Name: o.Name, Persistent: o.Persistent}
		for _, c := range o.Components {
			args, err := extractBodyAttributes(c.Body)
			if err != nil {
				return nil, fmt.Errorf("scene %q, object %q, component %q: %w", s.Name, o.Name, c.Kind, err)
			}
			obj.Components = append(obj.Components, &config.Component{
				Kind:      c.Kind,
				Arguments: args,
				Range:     c.Body.MissingItemRange(),
			})
		}
		sc.Objects = append(sc.Objects, obj)
	}
	return sc, nil
}

func (l *Loader) translateStep(s *schema.Step) (*config.Step, error) {
	step := &config.Step{
		Kind:  config.StepKind(s.Kind),
		Scene: s.Scene,
		Mode:  s.Mode,
		Event: s.Event,
		Args:  s.Args,
	}
	switch step.Kind {
	case config.StepLoad:
		if step.Scene == "" {
			return nil, fmt.Errorf(`step "load" requires a scene`)
		}
		if step.Event != "" {
			return nil, fmt.Errorf(`step "load" does not take an event`)
		}
	case config.StepFire:
		if step.Event == "" {
			return nil, fmt.Errorf(`step "fire" requires an event`)
		}
		if step.Scene != "" || step.Mode != "" {
			return nil, fmt.Errorf(`step "fire" does not take a scene or mode`)
		}
	default:
		return nil, fmt.Errorf("unknown step kind %q: must be 'load' or 'fire'", s.Kind)
	}
	return step, nil
}

// extractBodyAttributes returns the attributes of body keyed by name.
func extractBodyAttributes(body hcl.Body) (map[string]hcl.Expression, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	exprs := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprs[name] = attr.Expr
	}
	return exprs, nil
}
