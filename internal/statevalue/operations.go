package statevalue

import (
	"fmt"

	skerrors "github.com/sunholo/skunkc/internal/errors"
	"github.com/sunholo/skunkc/internal/types"
	"tinygo.org/x/go-llvm"
)

// Store writes v into destPtr, a pointer to a slot of type destPrim
// (spec.md §4.2). For scalars this is a single store; for MemRegion/
// DynamicArray it stores both the data pointer and the size; for
// Pointer/Tuple it stores the pointer; for Composite it stores the whole
// struct value. Setting the bitfield bit is the caller's responsibility
// (internal/codegen's UpdatePointer, spec.md §4.4).
func Store(env Env, v Value, destPtr llvm.Value, destPrim types.Sequence) error {
	if v.Tag == None {
		// Empty/CopyToSubModule discard their write target upstream; a
		// caller that reaches here with None is a no-op by construction.
		return nil
	}
	if !v.Prim.Equal(destPrim) {
		return skerrors.TypeMismatch(env.ModuleName(),
			fmt.Sprintf("store: value type %s does not match destination type %s", v.Prim, destPrim))
	}

	b := env.Builder()
	switch v.Tag {
	case Int, Char, Bool, Pointer, Tuple, Composite:
		b.CreateStore(v.Scalar, destPtr)
		return nil
	case MemRegion, DynamicArray:
		dataPtr := b.CreateStructGEP(destPtr, 0, "dptr_data")
		b.CreateStore(v.Scalar, dataPtr)
		sizePtr := b.CreateStructGEP(destPtr, 1, "dptr_size")
		b.CreateStore(v.Size, sizePtr)
		return nil
	default:
		return skerrors.TypeMismatch(env.ModuleName(), "store: unhandled StateValue tag")
	}
}

// Load is the inverse of Store: it reads a value of type prim out of ptr.
func Load(env Env, ptr llvm.Value, prim types.Sequence, name string) Value {
	ctx := env.Context()
	b := env.Builder()

	if len(prim) != 1 {
		whole := b.CreateLoad(ptr, name)
		return NewComposite(whole, prim)
	}

	p := prim[0]
	switch p.Kind {
	case types.Int, types.Char, types.Bool:
		return Value{Tag: kindToTag(p.Kind), Scalar: b.CreateLoad(ptr, name), Prim: prim}
	case types.MemRegion:
		dataPtr := b.CreateStructGEP(ptr, 0, name+"_data")
		sizePtr := b.CreateStructGEP(ptr, 1, name+"_size")
		data := b.CreateLoad(dataPtr, name+"_data_v")
		size := b.CreateLoad(sizePtr, name+"_size_v")
		return NewMemRegion(data, size)
	case types.DynamicArray:
		dataPtr := b.CreateStructGEP(ptr, 0, name+"_data")
		sizePtr := b.CreateStructGEP(ptr, 1, name+"_size")
		elemIRPtr := llvm.PointerType(types.IRType(ctx, p.Elem), 0)
		rawData := b.CreateLoad(dataPtr, name+"_data_v")
		data := b.CreateBitCast(rawData, elemIRPtr, name+"_data_cast")
		size := b.CreateLoad(sizePtr, name+"_size_v")
		return NewDynamicArray(data, size, p.Elem)
	case types.Pointer, types.FixedArray:
		loaded := b.CreateLoad(ptr, name)
		return NewPointer(loaded, prim)
	default:
		panic("statevalue: unhandled TypePrimitive kind in Load")
	}
}

// Size returns the Int StateValue of §4.2's size(v): the stored size field
// for MemRegion/DynamicArray, a compile-time constant in bytes for the
// true scalar kinds (Int, Char, Bool), and an error for everything else —
// pointers and tuples have no size defined by the source language.
func Size(env Env, v Value) (Value, error) {
	ctx := env.Context()
	switch v.Tag {
	case MemRegion, DynamicArray:
		return NewInt(v.Size), nil
	case Int:
		return NewInt(llvm.ConstInt(ctx.Int64Type(), 8, false)), nil
	case Char:
		return NewInt(llvm.ConstInt(ctx.Int64Type(), 1, false)), nil
	case Bool:
		return NewInt(llvm.ConstInt(ctx.Int64Type(), 1, false)), nil
	default:
		return Value{}, skerrors.NoDefinedSize(env.ModuleName(), v.Prim.String())
	}
}

// ArrayLookup computes data + idx*sizeof(T) and loads a value of element
// type T. v must be DynamicArrayOf(T) or FixedArrayOf(T,_); no bounds
// checking is performed (spec.md §4.2).
func ArrayLookup(env Env, v Value, idx Value) (Value, error) {
	var elem types.Sequence
	switch {
	case v.Tag == DynamicArray:
		elem = v.Prim[0].Elem
	case v.Tag == Pointer && len(v.Prim) == 1 && v.Prim[0].Kind == types.FixedArray:
		elem = v.Prim[0].Elem
	default:
		return Value{}, skerrors.NotAnArray(env.ModuleName(), v.Prim.String())
	}
	if idx.Tag != Int {
		return Value{}, skerrors.TypeMismatch(env.ModuleName(), "array index must be Int")
	}

	b := env.Builder()
	dataPtr := v.Scalar // dptr data pointer was already cast to elem* in Load.
	elemPtr := b.CreateGEP(dataPtr, []llvm.Value{idx.Scalar}, "arr_elem_ptr")
	return Load(env, elemPtr, elem, "arr_elem"), nil
}

// TuplePack allocates a heap region sized to the packed struct of the
// elements' primitive types and stores each element at its field offset
// (spec.md §4.2). Each element must itself be scalar (length-1 primitive
// sequence); nested inline composites are not supported, matching the
// original implementation's "won't deal with inlined tuples" limitation
// (see DESIGN.md).
func TuplePack(env Env, elements []Value) (Value, error) {
	fields := make(types.Sequence, 0, len(elements))
	for _, v := range elements {
		if len(v.Prim) != 1 {
			return Value{}, skerrors.TypeMismatch(env.ModuleName(), "tuple packing does not support inline composite elements")
		}
		fields = append(fields, v.Prim[0])
	}

	ctx := env.Context()
	b := env.Builder()
	tupleIRType := types.IRType(ctx, fields)
	sizeVal := sizeOf(env, tupleIRType)
	raw := env.Malloc(sizeVal)
	tuplePtr := b.CreateBitCast(raw, llvm.PointerType(tupleIRType, 0), "tuple_ptr")

	for i, v := range elements {
		fieldPtr := b.CreateStructGEP(tuplePtr, i, fmt.Sprintf("tuple_field_%d", i))
		if err := Store(env, v, fieldPtr, types.Sequence{fields[i]}); err != nil {
			return Value{}, err
		}
	}
	return NewTuple(tuplePtr, fields), nil
}

// TupleProject GEPs to field i of a pointer-to-tuple value and loads it.
func TupleProject(env Env, v Value, i int) (Value, error) {
	if v.Tag != Tuple && !(v.Tag == Pointer && len(v.Prim) == 1 && v.Prim[0].Kind == types.Pointer) {
		return Value{}, skerrors.NotATuple(env.ModuleName(), v.Prim.String())
	}
	fields := v.Prim[0].Elem
	if i < 0 || i >= len(fields) {
		return Value{}, skerrors.TypeMismatch(env.ModuleName(), "tuple index out of range")
	}

	ctx := env.Context()
	b := env.Builder()
	tupleIRType := types.IRType(ctx, fields)
	typedPtr := b.CreateBitCast(v.Scalar, llvm.PointerType(tupleIRType, 0), "tuple_cast")
	fieldPtr := b.CreateStructGEP(typedPtr, i, "tuple_field")
	return Load(env, fieldPtr, types.Sequence{fields[i]}, "tuple_proj"), nil
}

// Equals implements spec.md §4.2's equality: defined on Int/Char/Bool via
// ICmp, and on MemRegion via "equal iff sizes equal and memcmp returns 0".
// When the MemRegion sizes differ the chosen policy (an explicit open
// question in spec.md §9) is "not equal" without invoking memcmp.
func Equals(env Env, a, b Value) (Value, error) {
	builder := env.Builder()
	switch {
	case a.Tag == Int && b.Tag == Int, a.Tag == Char && b.Tag == Char, a.Tag == Bool && b.Tag == Bool:
		return NewBool(builder.CreateICmp(llvm.IntEQ, a.Scalar, b.Scalar, "eq")), nil
	case a.Tag == MemRegion && b.Tag == MemRegion:
		return memRegionEquals(env, a, b)
	default:
		return Value{}, skerrors.TypeMismatch(env.ModuleName(), "equals is only defined on Int, Char, Bool, MemRegion")
	}
}

func memRegionEquals(env Env, a, b Value) (Value, error) {
	builder := env.Builder()
	fn := env.CurrentFunction()

	sizeEq := builder.CreateICmp(llvm.IntEQ, a.Size, b.Size, "size_eq")
	sizeEqBlock := builder.GetInsertBlock()
	compareBytes := env.AppendBlock("memregion_compare_bytes")
	join := env.AppendBlock("memregion_eq_join")
	builder.CreateCondBr(sizeEq, compareBytes, join)

	builder.SetInsertPointAtEnd(compareBytes)
	cmp := env.Memcmp(a.Scalar, b.Scalar, a.Size)
	bytesEq := builder.CreateICmp(llvm.IntEQ, cmp, llvm.ConstInt(env.Context().Int64Type(), 0, false), "bytes_eq")
	builder.CreateBr(join)

	builder.SetInsertPointAtEnd(join)
	phi := builder.CreatePHI(env.Context().Int1Type(), "memregion_eq")
	phi.AddIncoming(
		[]llvm.Value{llvm.ConstInt(env.Context().Int1Type(), 0, false), bytesEq},
		[]llvm.BasicBlock{sizeEqBlock, compareBytes},
	)
	_ = fn
	return NewBool(phi), nil
}

// LessThan/GreaterThan are defined on Int, Char, Bool only; ordering on
// non-integers is a compile-time error (spec.md §4.2).
func LessThan(env Env, a, b Value) (Value, error) {
	return order(env, a, b, llvm.IntSLT)
}

func GreaterThan(env Env, a, b Value) (Value, error) {
	return order(env, a, b, llvm.IntSGT)
}

func order(env Env, a, b Value, pred llvm.IntPredicate) (Value, error) {
	if !isOrderable(a.Tag) || !isOrderable(b.Tag) || a.Tag != b.Tag {
		return Value{}, skerrors.NoDefinedOrder(env.ModuleName(), a.Prim.String())
	}
	return NewBool(env.Builder().CreateICmp(pred, a.Scalar, b.Scalar, "cmp")), nil
}

func isOrderable(t Tag) bool { return t == Int || t == Char || t == Bool }

// sizeOf computes sizeof(t) via the classic null-pointer GEP trick, since
// tinygo.org/x/go-llvm exposes no direct DataLayout query at this layer.
func sizeOf(env Env, t llvm.Type) llvm.Value {
	ctx := env.Context()
	b := env.Builder()
	nullPtr := llvm.ConstNull(llvm.PointerType(t, 0))
	one := llvm.ConstInt(ctx.Int32Type(), 1, false)
	sizePtr := b.CreateGEP(nullPtr, []llvm.Value{one}, "sizeof_ptr")
	return b.CreatePtrToInt(sizePtr, ctx.Int64Type(), "sizeof")
}
