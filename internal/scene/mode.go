package scene

import (
	"fmt"
	"strings"
)

// LoadMode selects how a scene load treats the objects already live.
type LoadMode int

const (
	// LoadSingle replaces the current scene; only persistent objects survive.
	LoadSingle LoadMode = iota

	// LoadAdditive merges the new objects into the current scene.
	LoadAdditive
)

// String returns a human-readable mode name.
func (m LoadMode) String() string {
	switch m {
	case LoadSingle:
		return "single"
	case LoadAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// ParseLoadMode parses "single" (alias "replace") or "additive".
func ParseLoadMode(s string) (LoadMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "replace", "":
		return LoadSingle, nil
	case "additive":
		return LoadAdditive, nil
	default:
		return LoadSingle, fmt.Errorf("unknown load mode %q: must be 'single', 'replace' or 'additive'", s)
	}
}
