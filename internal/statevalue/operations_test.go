package statevalue

import (
	"testing"

	"github.com/stretchr/testify/require"
	"tinygo.org/x/go-llvm"

	"github.com/sunholo/skunkc/internal/types"
)

// testEnv is a minimal Env good enough to drive the StateValue algebra
// inside one throwaway function, for unit-testing operations.go without
// pulling in internal/codegen (which itself depends on this package).
type testEnv struct {
	ctx     llvm.Context
	mod     llvm.Module
	builder llvm.Builder
	fn      llvm.Value
	externs map[string]llvm.Value
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := llvm.NewContext()
	mod := ctx.NewModule("test")
	builder := ctx.NewBuilder()
	fnType := llvm.FunctionType(ctx.VoidType(), nil, false)
	fn := llvm.AddFunction(mod, "test_fn", fnType)
	entry := ctx.AddBasicBlock(fn, "entry")
	builder.SetInsertPointAtEnd(entry)

	env := &testEnv{ctx: ctx, mod: mod, builder: builder, fn: fn, externs: make(map[string]llvm.Value)}
	t.Cleanup(func() {
		builder.Dispose()
		ctx.Dispose()
	})
	return env
}

func (e *testEnv) Context() llvm.Context      { return e.ctx }
func (e *testEnv) Builder() llvm.Builder      { return e.builder }
func (e *testEnv) CurrentFunction() llvm.Value { return e.fn }
func (e *testEnv) ModuleName() string          { return "test" }

func (e *testEnv) AppendBlock(name string) llvm.BasicBlock {
	return e.ctx.AddBasicBlock(e.fn, name)
}

func (e *testEnv) Malloc(size llvm.Value) llvm.Value {
	fn, ok := e.externs["malloc"]
	if !ok {
		i8ptr := llvm.PointerType(e.ctx.Int8Type(), 0)
		fn = llvm.AddFunction(e.mod, "malloc", llvm.FunctionType(i8ptr, []llvm.Type{e.ctx.Int64Type()}, false))
		e.externs["malloc"] = fn
	}
	return e.builder.CreateCall(fn, []llvm.Value{size}, "malloc_call")
}

func (e *testEnv) Memcmp(a, b, n llvm.Value) llvm.Value {
	fn, ok := e.externs["memcmp"]
	if !ok {
		i8ptr := llvm.PointerType(e.ctx.Int8Type(), 0)
		fn = llvm.AddFunction(e.mod, "memcmp", llvm.FunctionType(e.ctx.Int64Type(), []llvm.Type{i8ptr, i8ptr, e.ctx.Int64Type()}, false))
		e.externs["memcmp"] = fn
	}
	return e.builder.CreateCall(fn, []llvm.Value{a, b, n}, "memcmp_call")
}

func TestSize_Int(t *testing.T) {
	env := newTestEnv(t)
	v := NewInt(llvm.ConstInt(env.ctx.Int64Type(), 5, false))
	size, err := Size(env, v)
	require.NoError(t, err)
	require.Equal(t, Int, size.Tag)
}

func TestSize_Pointer_NoDefinedSize(t *testing.T) {
	env := newTestEnv(t)
	v := NewPointer(llvm.ConstNull(llvm.PointerType(env.ctx.Int64Type(), 0)), types.PointerTo(types.IntSeq()))
	_, err := Size(env, v)
	require.Error(t, err)
}

func TestEquals_IntInt(t *testing.T) {
	env := newTestEnv(t)
	a := NewInt(llvm.ConstInt(env.ctx.Int64Type(), 1, false))
	b := NewInt(llvm.ConstInt(env.ctx.Int64Type(), 1, false))
	v, err := Equals(env, a, b)
	require.NoError(t, err)
	require.Equal(t, Bool, v.Tag)
}

func TestEquals_IncomparableKinds(t *testing.T) {
	env := newTestEnv(t)
	a := NewInt(llvm.ConstInt(env.ctx.Int64Type(), 1, false))
	b := NewMemRegion(llvm.ConstNull(llvm.PointerType(env.ctx.Int8Type(), 0)), llvm.ConstInt(env.ctx.Int64Type(), 0, false))
	_, err := Equals(env, a, b)
	require.Error(t, err)
}

func TestLessThan_NonOrderable(t *testing.T) {
	env := newTestEnv(t)
	a := NewMemRegion(llvm.ConstNull(llvm.PointerType(env.ctx.Int8Type(), 0)), llvm.ConstInt(env.ctx.Int64Type(), 0, false))
	b := NewMemRegion(llvm.ConstNull(llvm.PointerType(env.ctx.Int8Type(), 0)), llvm.ConstInt(env.ctx.Int64Type(), 0, false))
	_, err := LessThan(env, a, b)
	require.Error(t, err)
}

func TestStore_TypeMismatch(t *testing.T) {
	env := newTestEnv(t)
	destPtr := env.builder.CreateAlloca(env.ctx.Int64Type(), "dest")
	v := NewBool(llvm.ConstInt(env.ctx.Int1Type(), 1, false))
	err := Store(env, v, destPtr, types.IntSeq())
	require.Error(t, err)
}
