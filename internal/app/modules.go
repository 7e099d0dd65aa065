package app

import (
	"io"

	"github.com/vk/scenebus/internal/registry"
	"github.com/vk/scenebus/modules/emitter"
	"github.com/vk/scenebus/modules/print"
	"github.com/vk/scenebus/modules/scoreboard"
)

// coreModules is the list of component modules compiled into the binary.
// Printed output goes to out.
func coreModules(out io.Writer) []registry.Module {
	return []registry.Module{
		&emitter.Module{},
		&print.Module{Out: out},
		&scoreboard.Module{},
	}
}
