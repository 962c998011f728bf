// Package statevalue implements the StateValue algebra of spec.md §4.2: a
// small, tagged runtime-value calculus carrying both an emitted IR value
// and its TypePrimitive sequence, so load/store/size/index/compare all
// dispatch on the tag rather than needing a side-channel type table.
package statevalue

import (
	"github.com/sunholo/skunkc/internal/types"
	"tinygo.org/x/go-llvm"
)

// Tag is the closed StateValue sum. spec.md §3 lists None/Int/Char/Bool/
// MemRegion/DynamicArray/Tuple explicitly; Pointer and Composite are added
// here to give PointerTo(T), FixedArrayOf(T,n), and inline multi-field
// (non-tuple-pointer) handle types somewhere to live — see DESIGN.md for
// the rationale, recorded against spec.md §9's open questions.
type Tag int

const (
	None Tag = iota
	Int
	Char
	Bool
	MemRegion
	DynamicArray
	Pointer
	Tuple
	Composite
)

// Value is the (tag, payload, primitive-type) triple of spec.md §4.2.
//
// Scalar carries the single IR value for Int/Char/Bool/Pointer/Tuple, the
// data pointer for MemRegion/DynamicArray, or the whole struct value for
// Composite. Size carries the MemRegion/DynamicArray size field and is the
// zero Value otherwise.
type Value struct {
	Tag    Tag
	Scalar llvm.Value
	Size   llvm.Value
	Prim   types.Sequence
}

func NewNone() Value { return Value{Tag: None} }

func NewInt(v llvm.Value) Value  { return Value{Tag: Int, Scalar: v, Prim: types.IntSeq()} }
func NewChar(v llvm.Value) Value { return Value{Tag: Char, Scalar: v, Prim: types.CharSeq()} }
func NewBool(v llvm.Value) Value { return Value{Tag: Bool, Scalar: v, Prim: types.BoolSeq()} }

func NewMemRegion(data, size llvm.Value) Value {
	return Value{Tag: MemRegion, Scalar: data, Size: size, Prim: types.MemRegionSeq()}
}

func NewDynamicArray(data, size llvm.Value, elem types.Sequence) Value {
	return Value{Tag: DynamicArray, Scalar: data, Size: size, Prim: types.DynamicArrayOf(elem)}
}

func NewPointer(ptr llvm.Value, prim types.Sequence) Value {
	return Value{Tag: Pointer, Scalar: ptr, Prim: prim}
}

func NewTuple(ptr llvm.Value, fields types.Sequence) Value {
	return Value{Tag: Tuple, Scalar: ptr, Prim: types.PointerTo(fields)}
}

func NewComposite(whole llvm.Value, prim types.Sequence) Value {
	return Value{Tag: Composite, Scalar: whole, Prim: prim}
}

// kindToTag maps a scalar TypePrimitive kind to its StateValue tag, used by
// Load to build Int/Char/Bool values generically.
func kindToTag(k types.Kind) Tag {
	switch k {
	case types.Int:
		return Int
	case types.Char:
		return Char
	case types.Bool:
		return Bool
	default:
		panic("statevalue: kindToTag on non-scalar kind")
	}
}
