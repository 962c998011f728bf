package codegen

import (
	"github.com/sunholo/skunkc/internal/ast"
	"tinygo.org/x/go-llvm"
)

// declareListener adds the (empty) IR function for one listener, so other
// modules in the tree can reference it by name before its body is defined
// (spec.md §6: function names are load-bearing — external test harnesses
// call these functions by name).
func (s *State) declareListener(l ast.Listener) llvm.Value {
	name := s.listenerFuncName(l)
	fnType := llvm.FunctionType(s.ctx.VoidType(), []llvm.Type{s.statePtrType()}, false)
	return llvm.AddFunction(s.mod, name, fnType)
}

// listenerFuncName builds the ABI-mandated listener function name
// <ModuleName>__<Kind>__<Trigger> (spec.md §6), folding ast.ListenerKind's
// String() form into the generated name the way the original's Display
// impl does (mod.rs:162).
func (s *State) listenerFuncName(l ast.Listener) string {
	return s.Layout.ModuleName + "__" + l.Kind.String() + "__" + l.Trigger
}

// CompileListener defines fn's body: listener.Body evaluated with a fresh
// local scope (spec.md §4.4's "single flat local scope per listener") and
// an implicit void return appended unless the body already returned.
func (s *State) CompileListener(module *ast.Module, fn llvm.Value, l ast.Listener) error {
	prevFn := s.currentFn
	s.currentFn = fn
	s.locals.reset()
	s.returned = false

	entry := s.ctx.AddBasicBlock(fn, "entry")
	s.builder.SetInsertPointAtEnd(entry)

	statePtr := fn.Param(0)
	if _, err := s.CompileExpr(module, statePtr, l.Body); err != nil {
		s.currentFn = prevFn
		return err
	}
	if !s.returned {
		s.builder.CreateRetVoid()
	}
	s.currentFn = prevFn
	return nil
}
