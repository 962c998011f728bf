package statevalue

import "tinygo.org/x/go-llvm"

// Env is everything the StateValue algebra needs from the surrounding
// codegen state (spec.md §4.3): an IR builder and context, the current
// function (for short-circuit block insertion during equality), a way to
// allocate new basic blocks, and the on-demand malloc extern.
//
// internal/codegen.State implements this directly so the operations in
// this package never need to know about listeners, handles, or bitfields.
type Env interface {
	Context() llvm.Context
	Builder() llvm.Builder
	CurrentFunction() llvm.Value
	AppendBlock(name string) llvm.BasicBlock
	Malloc(size llvm.Value) llvm.Value
	Memcmp(a, b, n llvm.Value) llvm.Value
	ModuleName() string
}
