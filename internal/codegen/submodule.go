package codegen

import (
	"github.com/sunholo/skunkc/internal/ast"
	skerrors "github.com/sunholo/skunkc/internal/errors"
	"github.com/sunholo/skunkc/internal/layout"
	"github.com/sunholo/skunkc/internal/statevalue"
	"tinygo.org/x/go-llvm"
)

// compileCopyToSubModule implements the push / fixpoint / drain protocol of
// spec.md §4.5: push the parent handle's current value into the child's
// update slot, invoke the child's update function in a loop until its
// bitfield settles to zero, then drain every Write-usage child handle back
// into its mapped parent handle.
func (s *State) compileCopyToSubModule(module *ast.Module, statePtr llvm.Value, e *ast.CopyToSubModule) error {
	if e.SubmoduleIndex < 0 || e.SubmoduleIndex >= len(module.Submodules) {
		return skerrors.BadSubmoduleIndex(module.Name, e.SubmoduleIndex, len(module.Submodules))
	}
	info := module.Submodules[e.SubmoduleIndex]
	childLayout := s.Layout.Submodules[e.SubmoduleIndex]
	childPtr := s.submodulePtr(s.Layout, statePtr, e.SubmoduleIndex)

	if err := s.pushIntoChild(module, statePtr, childLayout, childPtr, e); err != nil {
		return err
	}

	childFn := s.declareExternUpdateFunction(childLayout)

	loopStart := s.AppendBlock("copy_invoke_loop_start")
	s.builder.CreateBr(loopStart)
	s.builder.SetInsertPointAtEnd(loopStart)
	s.builder.CreateCall(childFn, []llvm.Value{childPtr}, "")
	bf := s.loadBitfield(childLayout, childPtr)
	stillPending := s.anyBitSetValue(bf)

	copyBack := s.AppendBlock("copy_back")
	complete := s.AppendBlock("updates_complete")
	// spec.md §4.5 step 3: bitfield != 0 branches to copy_back, else to
	// updates_complete.
	s.builder.CreateCondBr(stillPending, copyBack, complete)

	s.builder.SetInsertPointAtEnd(copyBack)
	if err := s.drainChild(module, statePtr, info, childLayout, childPtr, bf); err != nil {
		return err
	}
	// spec.md §4.5 step 5: after all outputs are processed, loop back.
	s.builder.CreateBr(loopStart)

	s.builder.SetInsertPointAtEnd(complete)
	return nil
}

// declareExternUpdateFunction resolves (declaring if necessary) a reference
// to childLayout's update function, defined in its own llvm.Module, so this
// module's compileCopyToSubModule can call across module boundaries by name
// (spec.md §6; the declare-or-reuse idiom every cross-module IR emitter in
// the pack uses for forward/extern references).
func (s *State) declareExternUpdateFunction(childLayout *layout.Layout) llvm.Value {
	name := childLayout.ModuleName + "_update"
	if fn := s.mod.NamedFunction(name); !fn.IsNil() {
		return fn
	}
	ptrType := llvm.PointerType(childLayout.IRStructType(s.ctx), 0)
	fnType := llvm.FunctionType(s.ctx.VoidType(), []llvm.Type{ptrType}, false)
	return llvm.AddFunction(s.mod, name, fnType)
}

func (s *State) pushIntoChild(module *ast.Module, statePtr llvm.Value, childLayout *layout.Layout, childPtr llvm.Value, e *ast.CopyToSubModule) error {
	parentIdx, ok := s.Layout.IndexForHandle(e.State)
	if !ok {
		return skerrors.BadReadFieldName(module.Name, e.State)
	}
	parentUp, err := s.fieldPointer(s.Layout, statePtr, e.State, ReadWithoutClearing)
	if err != nil {
		return err
	}
	v := parentUp.Load(s.Layout.HandleTypes[parentIdx], e.State)

	childIdx, ok := childLayout.IndexForHandle(e.SubmoduleState)
	if !ok {
		return skerrors.BadReadFieldName(childLayout.ModuleName, e.SubmoduleState)
	}
	childUp, err := s.fieldPointer(childLayout, childPtr, e.SubmoduleState, WriteAndSet)
	if err != nil {
		return err
	}
	return childUp.Store(v, childLayout.HandleTypes[childIdx])
}

// drainChild copies every Write-usage handle of the child module back into
// the parent handle its SubmoduleInfo.HandleMap names, setting the parent's
// bit so its own update function picks the drained value up. Each handle is
// gated on its own bit in bf (spec.md §4.5 step 4: "test bit i of the
// (previously loaded) child bitfield; if set, copy; if not set, skip") — an
// output handle the child never wrote this pass must not drain a stale
// update-slot value into the parent.
func (s *State) drainChild(module *ast.Module, statePtr llvm.Value, info ast.SubmoduleInfo, childLayout *layout.Layout, childPtr llvm.Value, bf llvm.Value) error {
	for i, h := range info.Module.Handles {
		if !h.Usage.IsOutput() {
			continue
		}
		parentName, ok := info.HandleMap[h.Name]
		if !ok {
			continue
		}

		cond := s.testBitValue(bf, i)
		doCopy := s.AppendBlock("maybe_copy_back_" + h.Name)
		after := s.AppendBlock("after_copy_back_" + h.Name)
		s.builder.CreateCondBr(cond, doCopy, after)

		s.builder.SetInsertPointAtEnd(doCopy)
		// The child's pending output sits in its update slot (its bit is
		// still set); read it there without clearing the bit.
		childOutPtr := s.builder.CreateStructGEP(childPtr, childLayout.UpdateIndex(i), "child_update_ptr")
		v := statevalue.Load(s, childOutPtr, childLayout.HandleTypes[i], h.Name)

		parentIdx, ok := s.Layout.IndexForHandle(parentName)
		if !ok {
			return skerrors.BadReadFieldName(module.Name, parentName)
		}
		parentUp, err := s.fieldPointer(s.Layout, statePtr, parentName, WriteAndSet)
		if err != nil {
			return err
		}
		if err := parentUp.Store(v, s.Layout.HandleTypes[parentIdx]); err != nil {
			return err
		}
		s.builder.CreateBr(after)
		s.builder.SetInsertPointAtEnd(after)
	}
	return nil
}
