package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/scenebus/internal/config"
	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/vk/scenebus/internal/fsutil"
	"github.com/vk/scenebus/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL scene loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and merges their scenes and steps
// into one model. Steps keep file order, files are read in lexical order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, s := range root.Scenes {
			if prev, ok := model.Scenes[s.Name]; ok {
				return nil, nil, fmt.Errorf("scene %q declared in both %s and %s", s.Name, prev.File, file)
			}
			sc, err := l.translateScene(s, file)
			if err != nil {
				return nil, nil, err
			}
			model.Scenes[sc.Name] = sc
		}
		for _, s := range root.Steps {
			step, err := l.translateStep(s)
			if err != nil {
				return nil, nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Steps = append(model.Steps, step)
		}
		logger.Debug("Loaded HCL file.", "file", file, "scenes", len(root.Scenes), "steps", len(root.Steps))
	}

	logger.Debug("HCL loading complete.", "scenes", len(model.Scenes), "steps", len(model.Steps))
	return model, NewConverter(), nil
}

// findFiles expands directories and returns every distinct .hcl path.
func (l *Loader) findFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		all = append(all, p)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
		for _, p := range found {
			add(p)
		}
	}
	return all, nil
}
