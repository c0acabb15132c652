// Package manifest loads a crate/workspace manifest describing the shape
// of a crate graph: which crates exist, their root modules, and which
// other crates they depend on. A real IDE backend gets this from an
// external project-model component (cargo metadata, a build system
// integration); this package is a minimal stand-in for that collaborator,
// modeled the same way the teacher parses its own YAML project config
// (internal/ext/config.go's funxy.yaml Config) -- a thin struct tree with
// yaml tags, no business logic beyond loading and basic validation.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Workspace is the top-level manifest shape: a named set of crates.
type Workspace struct {
	Crates []Crate `yaml:"crates"`
}

// Crate describes one crate entry: its name (used only for diagnostics
// and as the key other crates reference in Deps) and its source root
// directory, relative to the manifest file.
type Crate struct {
	Name string   `yaml:"name"`
	Root string   `yaml:"root"`
	Deps []string `yaml:"deps,omitempty"`
}

// Load reads and parses a workspace manifest from path.
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	var ws Workspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	if err := ws.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}
	return &ws, nil
}

// Validate checks that every crate has a name and root, names are
// unique, and every dependency names a crate that actually exists in the
// workspace.
func (ws *Workspace) Validate() error {
	byName := make(map[string]bool, len(ws.Crates))
	for _, c := range ws.Crates {
		if c.Name == "" {
			return fmt.Errorf("crate with empty name")
		}
		if c.Root == "" {
			return fmt.Errorf("crate %q has no root", c.Name)
		}
		if byName[c.Name] {
			return fmt.Errorf("duplicate crate name %q", c.Name)
		}
		byName[c.Name] = true
	}
	for _, c := range ws.Crates {
		for _, dep := range c.Deps {
			if !byName[dep] {
				return fmt.Errorf("crate %q depends on unknown crate %q", c.Name, dep)
			}
		}
	}
	return nil
}

// ByName returns the crate entry named name, if the workspace has one.
func (ws *Workspace) ByName(name string) (Crate, bool) {
	for _, c := range ws.Crates {
		if c.Name == name {
			return c, true
		}
	}
	return Crate{}, false
}
