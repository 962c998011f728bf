package modset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/skunkc/internal/ast"
)

func TestCollect_FlatModule(t *testing.T) {
	m := &ast.Module{Name: "solo"}
	entries := Collect(m)

	require.Len(t, entries, 1)
	require.Equal(t, "root", entries[0].Path)
	require.Same(t, m, entries[0].Module)
}

func TestCollect_NestedSubmodules(t *testing.T) {
	grandchild := &ast.Module{Name: "gc"}
	child := &ast.Module{Name: "c", Submodules: []ast.SubmoduleInfo{{Module: grandchild}}}
	parent := &ast.Module{Name: "p", Submodules: []ast.SubmoduleInfo{{Module: child}}}

	entries := Collect(parent)
	require.Equal(t, []string{"root", "root_sub0", "root_sub0_sub0"}, Names(entries))
}

func TestCollect_MultipleSubmodulesAtSameLevel(t *testing.T) {
	a := &ast.Module{Name: "a"}
	b := &ast.Module{Name: "b"}
	parent := &ast.Module{Name: "p", Submodules: []ast.SubmoduleInfo{{Module: a}, {Module: b}}}

	entries := Collect(parent)
	require.Equal(t, []string{"root", "root_sub0", "root_sub1"}, Names(entries))
}
