// Package codegen compiles a resolved ast.Module tree to LLVM IR: the
// module state struct, one function per listener, and the bitfield-driven
// update function that dispatches them (spec.md §4). It is grounded on the
// teacher's internal/eval, whose evalCore switch played the analogous
// "walk a closed expression AST, dispatching per node kind" role — here
// the walk emits IR instead of producing a runtime Value.
package codegen

import (
	"github.com/sunholo/skunkc/internal/layout"
	"github.com/sunholo/skunkc/internal/runtimeext"
	"github.com/sunholo/skunkc/internal/statevalue"
	"github.com/sunholo/skunkc/internal/types"
	"tinygo.org/x/go-llvm"
)

// State is the per-module compilation context: one State is created per
// ast.Module and threaded through every expression/listener/update-function
// compile call for that module. It implements statevalue.Env directly so
// the StateValue algebra never needs to know about handles or bitfields.
type State struct {
	ctx     llvm.Context
	mod     llvm.Module
	builder llvm.Builder
	fpm     llvm.PassManager

	Layout    *layout.Layout
	externs   *runtimeext.Externs
	currentFn llvm.Value
	locals    *symtab
	stateType llvm.Type
	returned  bool
}

// NewState creates a fresh State for compiling l's module into its own mod
// (with fpm, that module's own function pass manager), sharing ctx/builder
// with sibling modules in the same tree (spec.md
// §6: one llvm.Module per source module, built with a shared llvm.Context
// so a submodule's state-struct IR type is identical whether computed from
// the parent's or the child's own State). The state-struct IR type is
// computed once here and reused for every function signature this module
// emits, so two listeners on the same module always agree on their
// parameter type.
func NewState(ctx llvm.Context, mod llvm.Module, builder llvm.Builder, fpm llvm.PassManager, l *layout.Layout) *State {
	return &State{
		ctx:       ctx,
		mod:       mod,
		builder:   builder,
		fpm:       fpm,
		Layout:    l,
		externs:   runtimeext.New(ctx, mod),
		locals:    newSymtab(),
		stateType: l.IRStructType(ctx),
	}
}

// statevalue.Env implementation.

func (s *State) Context() llvm.Context      { return s.ctx }
func (s *State) Builder() llvm.Builder      { return s.builder }
func (s *State) CurrentFunction() llvm.Value { return s.currentFn }
func (s *State) ModuleName() string          { return s.Layout.ModuleName }

func (s *State) AppendBlock(name string) llvm.BasicBlock {
	return s.ctx.AddBasicBlock(s.currentFn, name)
}

func (s *State) Malloc(size llvm.Value) llvm.Value {
	return s.builder.CreateCall(s.externs.Malloc(), []llvm.Value{size}, "malloc_call")
}

func (s *State) Memcmp(a, b, n llvm.Value) llvm.Value {
	return s.builder.CreateCall(s.externs.Memcmp(), []llvm.Value{a, b, n}, "memcmp_call")
}

// updateFuncName builds the generated IR function name for this module's
// update function: <ModuleName>_update (spec.md §6 — load-bearing, external
// test harnesses call these functions by name).
func (s *State) updateFuncName() string {
	return s.Layout.ModuleName + "_update"
}

// statePtrType is the pointer-to-state-struct type every listener and the
// update function take as their sole argument.
func (s *State) statePtrType() llvm.Type {
	return llvm.PointerType(s.stateType, 0)
}

var _ statevalue.Env = (*State)(nil)
var _ types.Locals = (*symtab)(nil)
