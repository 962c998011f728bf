package runtimeext

import (
	"testing"

	"github.com/stretchr/testify/require"
	"tinygo.org/x/go-llvm"
)

func newTestExterns(t *testing.T) *Externs {
	t.Helper()
	ctx := llvm.NewContext()
	mod := ctx.NewModule("test")
	t.Cleanup(ctx.Dispose)
	return New(ctx, mod)
}

func TestMalloc_DeclaresOnce(t *testing.T) {
	e := newTestExterns(t)
	a := e.Malloc()
	b := e.Malloc()
	require.Equal(t, a.Name(), b.Name())
	require.Equal(t, "malloc", a.Name())
}

func TestFree_Declares(t *testing.T) {
	e := newTestExterns(t)
	require.Equal(t, "free", e.Free().Name())
}

func TestMemcmp_Declares(t *testing.T) {
	e := newTestExterns(t)
	require.Equal(t, "memcmp", e.Memcmp().Name())
}

func TestPrintf_Declares(t *testing.T) {
	e := newTestExterns(t)
	require.Equal(t, "printf", e.Printf().Name())
}

func TestDistinctExterns_DistinctNames(t *testing.T) {
	e := newTestExterns(t)
	names := map[string]bool{
		e.Malloc().Name(): true,
		e.Free().Name():   true,
		e.Memcmp().Name(): true,
		e.Printf().Name(): true,
	}
	require.Len(t, names, 4)
}
