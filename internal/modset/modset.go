// Package modset walks a resolved module tree in the declaration order
// spec.md §6 requires for driver tooling: parent first, then each
// submodule recursively. It is adapted from the teacher's internal/module,
// whose loader walked an import graph in a similarly order-sensitive way —
// here the graph is a strict tree (submodules, not imports), so no cycle
// detection or topological sort is needed, only a stable walk order.
package modset

import (
	"strconv"

	"github.com/sunholo/skunkc/internal/ast"
)

// Entry pairs a module with a positional tree path ("root", "root_sub0",
// "root_sub0_sub1", ...) for diagnostics — a structural coordinate, not a
// naming scheme codegen uses: generated function names are keyed off each
// module's own name (spec.md §6), not its position in the tree.
type Entry struct {
	Module *ast.Module
	Path   string
}

// Collect flattens root's tree into declaration order: root first, then
// each of its submodules' trees in turn.
func Collect(root *ast.Module) []Entry {
	return collect(root, "root")
}

func collect(m *ast.Module, path string) []Entry {
	out := []Entry{{Module: m, Path: path}}
	for i, sub := range m.Submodules {
		childPath := path + "_sub" + strconv.Itoa(i)
		out = append(out, collect(sub.Module, childPath)...)
	}
	return out
}

// Names returns just the Path component of each Entry, useful for quick
// structural diagnostics without touching the AST.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Path
	}
	return names
}
