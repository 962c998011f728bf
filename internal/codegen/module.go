package codegen

import (
	"github.com/sunholo/skunkc/internal/ast"
	"github.com/sunholo/skunkc/internal/layout"
	"tinygo.org/x/go-llvm"
)

// node is one module in the tree being compiled: its own State plus the IR
// function values declared for it in the first pass.
type node struct {
	module      *ast.Module
	state       *State
	updateFn    llvm.Value
	listenerFns []llvm.Value
}

// treeNode pairs a module with its Layout, the shape collectTree walks
// before any LLVM object exists.
type treeNode struct {
	module *ast.Module
	layout *layout.Layout
}

// collectTree walks module/layout in lockstep (layout.Build mirrors
// m.Submodules order exactly) and returns every node in pre-order.
func collectTree(m *ast.Module, l *layout.Layout) []treeNode {
	out := []treeNode{{module: m, layout: l}}
	for i, sub := range m.Submodules {
		out = append(out, collectTree(sub.Module, l.Submodules[i])...)
	}
	return out
}

// CompileModule lowers a fully-resolved module tree to one or more LLVM IR
// modules, one per source module — the parent plus each submodule, in
// pre-order (spec.md §6). Every node shares ctx and a single llvm.Builder,
// which is what lets compileCopyToSubModule declare an extern reference to
// a sibling module's update function with a pointer type that is
// byte-for-byte the same llvm.Type the callee itself uses: Layout's struct
// types are literal (anonymous) struct types, uniqued per llvm.Context
// rather than per llvm.Module.
func CompileModule(ctx llvm.Context, root *ast.Module) ([]llvm.Module, error) {
	rootLayout, err := layout.Build(root)
	if err != nil {
		return nil, err
	}
	tree := collectTree(root, rootLayout)

	builder := ctx.NewBuilder()
	nodes := make([]*node, len(tree))
	for i, t := range tree {
		mod := ctx.NewModule(t.module.Name)
		fpm := llvm.NewFunctionPassManagerForModule(mod)
		fpm.AddInstructionCombiningPass()
		fpm.AddReassociatePass()
		fpm.AddGVNPass()
		fpm.AddCFGSimplificationPass()
		fpm.InitializeFunc()
		nodes[i] = &node{module: t.module, state: NewState(ctx, mod, builder, fpm, t.layout)}
	}

	// Pass 1: declare every function in the tree before defining any body,
	// so CopyToSubModule calls (and forward listener dispatch) always
	// resolve by name regardless of compile order.
	for _, n := range nodes {
		n.updateFn = n.state.declareUpdateFunction()
		n.listenerFns = make([]llvm.Value, len(n.module.Listeners))
		for i, l := range n.module.Listeners {
			n.listenerFns[i] = n.state.declareListener(l)
		}
	}

	// Pass 2: define bodies.
	for _, n := range nodes {
		for i, l := range n.module.Listeners {
			if err := n.state.CompileListener(n.module, n.listenerFns[i], l); err != nil {
				return nil, err
			}
		}
		if err := n.state.CompileUpdateFunction(n.module, n.updateFn, n.listenerFns); err != nil {
			return nil, err
		}
		n.state.fpm.RunFunc(n.updateFn)
		for _, fn := range n.listenerFns {
			n.state.fpm.RunFunc(fn)
		}
	}

	mods := make([]llvm.Module, len(nodes))
	for i, n := range nodes {
		mods[i] = n.state.mod
	}
	return mods, nil
}
