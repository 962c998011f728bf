package codegen

import (
	"github.com/sunholo/skunkc/internal/ast"
	skerrors "github.com/sunholo/skunkc/internal/errors"
	"github.com/sunholo/skunkc/internal/statevalue"
	"tinygo.org/x/go-llvm"
)

// declareUpdateFunction adds the (empty) IR function for this module's
// update function.
func (s *State) declareUpdateFunction() llvm.Value {
	fnType := llvm.FunctionType(s.ctx.VoidType(), []llvm.Type{s.statePtrType()}, false)
	return llvm.AddFunction(s.mod, s.updateFuncName(), fnType)
}

// validateListenerTriggers rejects any listener whose trigger is not a
// handle of module, before any IR for the update function is emitted
// (spec.md §4.7, §7: BadListenerTrigger).
func validateListenerTriggers(module *ast.Module) error {
	for _, l := range module.Listeners {
		if _, ok := module.HandleByName(l.Trigger); !ok {
			return skerrors.BadListenerTrigger(module.Name, l.Trigger)
		}
	}
	return nil
}

// CompileUpdateFunction defines fn's body: the bitfield-driven dispatch
// loop of spec.md §4.7 — for each handle in declaration order, test its
// bitfield bit; if set, drain its update value into current, clear the
// bit, and call every listener function registered on that trigger.
func (s *State) CompileUpdateFunction(module *ast.Module, fn llvm.Value, listenerFns []llvm.Value) error {
	if err := validateListenerTriggers(module); err != nil {
		return err
	}

	byTrigger := make(map[string][]llvm.Value)
	for i, l := range module.Listeners {
		byTrigger[l.Trigger] = append(byTrigger[l.Trigger], listenerFns[i])
	}

	prevFn := s.currentFn
	s.currentFn = fn
	entry := s.ctx.AddBasicBlock(fn, "entry")
	s.builder.SetInsertPointAtEnd(entry)
	statePtr := fn.Param(0)

	// Snapshot the bitfield once (spec.md §4.7 step 2) so every handle's
	// test in this loop observes the state at entry, not bits set by an
	// earlier handle's listener within this same call.
	bf := s.loadBitfield(s.Layout, statePtr)

	for i, h := range module.Handles {
		cond := s.testBitValue(bf, i)
		activate := s.AppendBlock("activate_" + h.Name)
		after := s.AppendBlock("after_" + h.Name)
		s.builder.CreateCondBr(cond, activate, after)

		s.builder.SetInsertPointAtEnd(activate)
		up, err := s.fieldPointer(s.Layout, statePtr, h.Name, ReadAndClearing)
		if err != nil {
			s.currentFn = prevFn
			return err
		}
		v := up.Load(s.Layout.HandleTypes[i], h.Name)
		currentPtr := s.currentFieldPtr(statePtr, i)
		if err := statevalue.Store(s, v, currentPtr, s.Layout.HandleTypes[i]); err != nil {
			s.currentFn = prevFn
			return err
		}

		for _, listenerFn := range byTrigger[h.Name] {
			s.builder.CreateCall(listenerFn, []llvm.Value{statePtr}, "")
		}
		s.builder.CreateBr(after)
		s.builder.SetInsertPointAtEnd(after)
	}

	s.builder.CreateRetVoid()
	s.currentFn = prevFn
	return nil
}

func (s *State) currentFieldPtr(statePtr llvm.Value, idx int) llvm.Value {
	return s.builder.CreateStructGEP(statePtr, s.Layout.CurrentIndex(idx), "current_ptr")
}
