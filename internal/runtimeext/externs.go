// Package runtimeext declares the handful of libc externs the generated
// code may call, each the first time it is actually referenced (spec.md
// §4.3, §5: "malloc, free, memcmp, printf ... declared on demand"). It is
// adapted from the teacher's internal/runtime, which played the analogous
// role of resolving builtins for the interpreter's embedding host — here
// the "host" is libc, and resolution means emitting an extern decl once
// per llvm.Module.
package runtimeext

import "tinygo.org/x/go-llvm"

// Externs caches the extern FunctionValues declared so far in one
// llvm.Module, so a repeated reference reuses the existing declaration
// instead of re-declaring it (spec.md §4.3).
type Externs struct {
	mod      llvm.Module
	ctx      llvm.Context
	declared map[string]llvm.Value
}

func New(ctx llvm.Context, mod llvm.Module) *Externs {
	return &Externs{mod: mod, ctx: ctx, declared: make(map[string]llvm.Value)}
}

func (e *Externs) declare(name string, fnType llvm.Type) llvm.Value {
	if fn, ok := e.declared[name]; ok {
		return fn
	}
	fn := llvm.AddFunction(e.mod, name, fnType)
	e.declared[name] = fn
	return fn
}

// Malloc returns the cached `i8* malloc(i64)` extern, declaring it on the
// first call.
func (e *Externs) Malloc() llvm.Value {
	i8ptr := llvm.PointerType(e.ctx.Int8Type(), 0)
	fnType := llvm.FunctionType(i8ptr, []llvm.Type{e.ctx.Int64Type()}, false)
	return e.declare("malloc", fnType)
}

// Free returns the cached `void free(i8*)` extern. The core never emits a
// call to it (dynamic regions are leak-tolerant by design, spec.md §3),
// but it is declared here so a future emitter — or hand-written test IR —
// has somewhere to get it from without re-deriving the signature.
func (e *Externs) Free() llvm.Value {
	i8ptr := llvm.PointerType(e.ctx.Int8Type(), 0)
	fnType := llvm.FunctionType(e.ctx.VoidType(), []llvm.Type{i8ptr}, false)
	return e.declare("free", fnType)
}

// Memcmp returns the cached `i64 memcmp(i8*, i8*, i64)` extern.
func (e *Externs) Memcmp() llvm.Value {
	i8ptr := llvm.PointerType(e.ctx.Int8Type(), 0)
	fnType := llvm.FunctionType(e.ctx.Int64Type(), []llvm.Type{i8ptr, i8ptr, e.ctx.Int64Type()}, false)
	return e.declare("memcmp", fnType)
}

// Printf returns the cached variadic `i32 printf(i8*, ...)` extern, used
// by example/test harnesses built on top of the core, not by the core
// itself.
func (e *Externs) Printf() llvm.Value {
	i8ptr := llvm.PointerType(e.ctx.Int8Type(), 0)
	fnType := llvm.FunctionType(e.ctx.Int32Type(), []llvm.Type{i8ptr}, true)
	return e.declare("printf", fnType)
}
