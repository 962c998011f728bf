package types

import (
	"github.com/sunholo/skunkc/internal/ast"
	"tinygo.org/x/go-llvm"
)

// FromSourceType flattens a source-level ast.Type into its TypePrimitive
// sequence (spec.md §3: "A source type lowers to a sequence of
// TypePrimitives"). Only TTuple produces a multi-element sequence; every
// other source type is scalar.
func FromSourceType(t ast.Type) Sequence {
	switch n := t.(type) {
	case ast.TInt:
		return IntSeq()
	case ast.TChar:
		return CharSeq()
	case ast.TBool:
		return BoolSeq()
	case ast.TMemRegion:
		return MemRegionSeq()
	case ast.TDynamicArray:
		return DynamicArrayOf(FromSourceType(n.Elem))
	case ast.TPointer:
		return PointerTo(FromSourceType(n.Elem))
	case ast.TFixedArray:
		return FixedArrayOf(FromSourceType(n.Elem), n.Len)
	case ast.TTuple:
		var seq Sequence
		for _, e := range n.Elems {
			seq = append(seq, FromSourceType(e)...)
		}
		return seq
	default:
		panic("types: unhandled source type")
	}
}

// DPtrType is the canonical {i8*, i64} "dptr" struct shared by MemRegion
// and DynamicArrayOf (spec.md §4.1 rule 2).
func DPtrType(ctx llvm.Context) llvm.Type {
	return ctx.StructType([]llvm.Type{
		llvm.PointerType(ctx.Int8Type(), 0),
		ctx.Int64Type(),
	}, false)
}

// IRType lowers a TypePrimitive sequence to a single LLVM IR type
// (spec.md §4.1). The lowering is total over well-formed input,
// deterministic, and performs no I/O or runtime allocation.
func IRType(ctx llvm.Context, seq Sequence) llvm.Type {
	if len(seq) != 1 {
		elems := make([]llvm.Type, len(seq))
		for i, p := range seq {
			elems[i] = IRType(ctx, Sequence{p})
		}
		return ctx.StructType(elems, true)
	}

	p := seq[0]
	switch p.Kind {
	case Int:
		return ctx.Int64Type()
	case Char:
		return ctx.Int8Type()
	case Bool:
		return ctx.Int1Type()
	case MemRegion:
		return DPtrType(ctx)
	case DynamicArray:
		return DPtrType(ctx)
	case Pointer:
		return llvm.PointerType(IRType(ctx, p.Elem), 0)
	case FixedArray:
		// Length is carried statically (Primitive.Len); it is not
		// materialized in the value representation.
		return llvm.PointerType(IRType(ctx, p.Elem), 0)
	default:
		panic("types: unhandled TypePrimitive kind")
	}
}

// ElementIRType returns the IR type of a single array/pointer element.
// statevalue.ArrayLookup does not call it: its GEP uses the data pointer
// that Load has already cast to the element pointer type.
func ElementIRType(ctx llvm.Context, seq Sequence) llvm.Type {
	if len(seq) != 1 {
		panic("types: ElementIRType on non-scalar sequence")
	}
	p := seq[0]
	switch p.Kind {
	case DynamicArray, FixedArray, Pointer:
		return IRType(ctx, p.Elem)
	default:
		panic("types: ElementIRType on non-indexable primitive")
	}
}
