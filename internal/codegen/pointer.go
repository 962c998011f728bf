package codegen

import (
	skerrors "github.com/sunholo/skunkc/internal/errors"
	"github.com/sunholo/skunkc/internal/layout"
	"github.com/sunholo/skunkc/internal/statevalue"
	"github.com/sunholo/skunkc/internal/types"
	"tinygo.org/x/go-llvm"
)

// Purpose selects which slot a field access targets and what bookkeeping
// happens on the module bitfield, per spec.md §4.3/§4.7.
type Purpose int

const (
	// ReadWithoutClearing targets the stable current slot: what listener
	// bodies read via ReferenceToState.
	ReadWithoutClearing Purpose = iota
	// ReadAndClearing targets the update slot and clears the handle's
	// bitfield bit: the update function draining a pending value into
	// current.
	ReadAndClearing
	// WriteAndSet targets the update slot and sets the handle's bitfield
	// bit: an Output or CopyToSubModule push staging a new value.
	WriteAndSet
)

// UpdatePointer is a pointer into a module's state struct together with the
// State needed to load/store StateValues through it.
type UpdatePointer struct {
	state *State
	ptr   llvm.Value
	idx   int
}

func (u *UpdatePointer) Ptr() llvm.Value { return u.ptr }

func (u *UpdatePointer) Load(prim types.Sequence, name string) statevalue.Value {
	return statevalue.Load(u.state, u.ptr, prim, name)
}

func (u *UpdatePointer) Store(v statevalue.Value, prim types.Sequence) error {
	return statevalue.Store(u.state, v, u.ptr, prim)
}

// fieldPointer resolves handleName against l (the Layout owning that
// state-struct pointer — the module's own Layout for ordinary references,
// or a submodule's Layout when statePtr has already been GEP'd down to that
// submodule's embedded struct, spec.md §4.5) to an UpdatePointer, performing
// the bitfield side effect implied by purpose.
func (s *State) fieldPointer(l *layout.Layout, statePtr llvm.Value, handleName string, purpose Purpose) (*UpdatePointer, error) {
	idx, ok := l.IndexForHandle(handleName)
	if !ok {
		return nil, skerrors.BadReadFieldName(l.ModuleName, handleName)
	}
	switch purpose {
	case WriteAndSet:
		ptr := s.builder.CreateStructGEP(statePtr, l.UpdateIndex(idx), "update_ptr")
		s.setBit(l, statePtr, idx)
		return &UpdatePointer{state: s, ptr: ptr, idx: idx}, nil
	case ReadAndClearing:
		ptr := s.builder.CreateStructGEP(statePtr, l.UpdateIndex(idx), "update_ptr")
		s.clearBit(l, statePtr, idx)
		return &UpdatePointer{state: s, ptr: ptr, idx: idx}, nil
	default:
		ptr := s.builder.CreateStructGEP(statePtr, l.CurrentIndex(idx), "current_ptr")
		return &UpdatePointer{state: s, ptr: ptr, idx: idx}, nil
	}
}

// bitfieldPtr/submodulePtr are raw GEPs against l's own state struct.
func (s *State) bitfieldPtr(l *layout.Layout, statePtr llvm.Value) llvm.Value {
	return s.builder.CreateStructGEP(statePtr, l.BitfieldIndex(), "bitfield_ptr")
}

func (s *State) submodulePtr(l *layout.Layout, statePtr llvm.Value, j int) llvm.Value {
	return s.builder.CreateStructGEP(statePtr, l.SubmoduleFieldIndex(j), "submodule_ptr")
}

// loadBitfield loads l's bitfield once into an SSA value (spec.md §4.7 step
// 2: "load the bitfield into an SSA value B"). Callers must test against
// this snapshot rather than reloading mid-dispatch: ReadAndClearing/
// WriteAndSet mutate the bitfield in memory, and a later handle reloading it
// within the same pass would observe a bit set by an earlier handle's
// listener in this same call, draining it before the next _update call.
func (s *State) loadBitfield(l *layout.Layout, statePtr llvm.Value) llvm.Value {
	return s.builder.CreateLoad(s.bitfieldPtr(l, statePtr), "bitfield")
}

// testBitValue tests bit idx of a bitfield snapshot bf previously returned
// by loadBitfield (spec.md §4.7 step 3).
func (s *State) testBitValue(bf llvm.Value, idx int) llvm.Value {
	mask := llvm.ConstInt(s.ctx.Int64Type(), uint64(1)<<uint(idx), false)
	masked := s.builder.CreateAnd(bf, mask, "bit_masked")
	zero := llvm.ConstInt(s.ctx.Int64Type(), 0, false)
	return s.builder.CreateICmp(llvm.IntNE, masked, zero, "bit_set")
}

// anyBitSetValue reports (as an i1) whether a bitfield snapshot bf is
// nonzero: the submodule fixpoint-loop condition of spec.md §4.5.
func (s *State) anyBitSetValue(bf llvm.Value) llvm.Value {
	zero := llvm.ConstInt(s.ctx.Int64Type(), 0, false)
	return s.builder.CreateICmp(llvm.IntNE, bf, zero, "any_bit_set")
}

func (s *State) setBit(l *layout.Layout, statePtr llvm.Value, idx int) {
	s.setOrClearBit(l, statePtr, idx, true)
}

func (s *State) clearBit(l *layout.Layout, statePtr llvm.Value, idx int) {
	s.setOrClearBit(l, statePtr, idx, false)
}

func (s *State) setOrClearBit(l *layout.Layout, statePtr llvm.Value, idx int, set bool) {
	ptr := s.bitfieldPtr(l, statePtr)
	bf := s.builder.CreateLoad(ptr, "bitfield")
	mask := llvm.ConstInt(s.ctx.Int64Type(), uint64(1)<<uint(idx), false)
	var updated llvm.Value
	if set {
		updated = s.builder.CreateOr(bf, mask, "bitfield_set")
	} else {
		notMask := s.builder.CreateNot(mask, "bit_notmask")
		updated = s.builder.CreateAnd(bf, notMask, "bitfield_clear")
	}
	s.builder.CreateStore(updated, ptr)
}
