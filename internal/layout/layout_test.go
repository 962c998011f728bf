package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/skunkc/internal/ast"
)

func simpleModule() *ast.Module {
	return &ast.Module{
		Name: "m",
		Handles: []ast.Handle{
			{Name: "a", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
			{Name: "b", Type: ast.TBool{}, Usage: ast.Read},
		},
	}
}

func TestBuild_FieldIndexMath(t *testing.T) {
	l, err := Build(simpleModule())
	require.NoError(t, err)

	require.Equal(t, 0, l.CurrentIndex(0))
	require.Equal(t, 1, l.UpdateIndex(0))
	require.Equal(t, 2, l.CurrentIndex(1))
	require.Equal(t, 3, l.UpdateIndex(1))
	require.Equal(t, 4, l.BitfieldIndex())
	require.Equal(t, 5, l.SubmoduleFieldIndex(0))
	require.Equal(t, 5, l.FieldCount())
}

func TestBuild_DuplicateHandle(t *testing.T) {
	m := &ast.Module{
		Name: "dup",
		Handles: []ast.Handle{
			{Name: "x", Type: ast.TInt{}},
			{Name: "x", Type: ast.TBool{}},
		},
	}
	_, err := Build(m)
	require.Error(t, err)
}

func TestBuild_Submodules(t *testing.T) {
	child := simpleModule()
	parent := &ast.Module{
		Name: "parent",
		Handles: []ast.Handle{
			{Name: "p", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
		},
		Submodules: []ast.SubmoduleInfo{
			{Module: child, HandleMap: map[string]string{"a": "p"}},
		},
	}
	l, err := Build(parent)
	require.NoError(t, err)
	require.Equal(t, 1, l.SubmoduleCount())
	require.Equal(t, "m", l.Submodules[0].ModuleName)
}

func TestIndexForHandle(t *testing.T) {
	l, err := Build(simpleModule())
	require.NoError(t, err)

	idx, ok := l.IndexForHandle("b")
	require.True(t, ok)
	require.Equal(t, 1, idx)

	_, ok = l.IndexForHandle("missing")
	require.False(t, ok)
}

func TestToDescriptor_Usage(t *testing.T) {
	l, err := Build(simpleModule())
	require.NoError(t, err)

	d := l.ToDescriptor()
	require.Len(t, d.Handles, 2)
	require.True(t, d.Handles[0].Read)
	require.True(t, d.Handles[0].Write)
	require.True(t, d.Handles[1].Read)
	require.False(t, d.Handles[1].Write)
}
