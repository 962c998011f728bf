// Package scenariofile loads a module's state shape — its handles and
// submodule wiring — from a YAML manifest, the same role
// gopkg.in/yaml.v3-backed config files (model catalogs, task specs) play in
// the teacher's own eval harness. Listener bodies are still supplied in Go
// (internal/examples) since a textual expression grammar is out of scope
// here; a manifest only describes the ABI-relevant shape of a module, which
// is exactly what cmd/skunkc's "describe" subcommand needs to run a Layout
// over without a real listener body to compile.
package scenariofile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sunholo/skunkc/internal/ast"
)

// HandleManifest is one handle entry of a module manifest.
type HandleManifest struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Read  bool   `yaml:"read"`
	Write bool   `yaml:"write"`
}

// SubmoduleManifest wires a nested manifest file into its parent, mirroring
// ast.SubmoduleInfo's HandleMap.
type SubmoduleManifest struct {
	File      string            `yaml:"file"`
	HandleMap map[string]string `yaml:"handle_map"`
}

// ModuleManifest is the YAML-serializable description of a module's state
// shape: its name, handles, and submodule wiring.
type ModuleManifest struct {
	Name       string              `yaml:"name"`
	Handles    []HandleManifest    `yaml:"handles"`
	Submodules []SubmoduleManifest `yaml:"submodules"`
}

// Load reads and parses a module manifest from path.
func Load(path string) (*ModuleManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenariofile: reading %s: %w", path, err)
	}
	var m ModuleManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("scenariofile: parsing %s: %w", path, err)
	}
	return &m, nil
}

// ToModule builds an ast.Module from the manifest's handles and submodule
// wiring. Listeners are left empty — the manifest describes shape, not
// behavior — so the result is only suitable for layout inspection, not IR
// compilation. dir is the base directory submodule file paths are resolved
// relative to.
func (m *ModuleManifest) ToModule(dir string) (*ast.Module, error) {
	mod := &ast.Module{Name: m.Name}

	for _, h := range m.Handles {
		typ, err := parseType(h.Type)
		if err != nil {
			return nil, fmt.Errorf("scenariofile: module %q handle %q: %w", m.Name, h.Name, err)
		}
		var usage ast.Usage
		if h.Read {
			usage |= ast.Read
		}
		if h.Write {
			usage |= ast.Write
		}
		mod.Handles = append(mod.Handles, ast.Handle{Name: h.Name, Type: typ, Usage: usage})
	}

	for _, sub := range m.Submodules {
		childManifest, err := Load(dir + "/" + sub.File)
		if err != nil {
			return nil, err
		}
		child, err := childManifest.ToModule(dir)
		if err != nil {
			return nil, err
		}
		mod.Submodules = append(mod.Submodules, ast.SubmoduleInfo{Module: child, HandleMap: sub.HandleMap})
	}

	return mod, nil
}

// parseType maps a manifest's scalar type token to its ast.Type. Only the
// scalar and MemRegion forms are representable in a manifest; dynamic
// arrays, pointers, and tuples carry element types that would need a small
// grammar of their own and are out of scope for a shape-only manifest.
func parseType(token string) (ast.Type, error) {
	switch token {
	case "Int":
		return ast.TInt{}, nil
	case "Char":
		return ast.TChar{}, nil
	case "Bool":
		return ast.TBool{}, nil
	case "MemRegion":
		return ast.TMemRegion{}, nil
	default:
		return nil, fmt.Errorf("unknown manifest type %q", token)
	}
}
