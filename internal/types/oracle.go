package types

import (
	"github.com/sunholo/skunkc/internal/ast"
	skerrors "github.com/sunholo/skunkc/internal/errors"
)

// Locals is the subset of the codegen symbol table the oracle needs: a
// mapping from let-bound names to the TypePrimitive sequence of their
// bound value. internal/codegen's symbol table satisfies this directly.
type Locals interface {
	LookupLocalType(name string) (Sequence, bool)
}

// ExpressionType derives the TypePrimitive sequence of an expression
// without emitting any IR (spec.md §4.8). It mirrors the expression
// compiler's cases but is a stub for If and BinaryOperator — those
// report Unimplemented, matching the open question recorded in spec.md §9:
// the emitter partially compensates for If via phi, but the oracle does
// not, so a Tuple containing an If element is undefined behavior by the
// source and is rejected here instead.
func ExpressionType(module *ast.Module, locals Locals, expr ast.Expr) (Sequence, error) {
	switch e := expr.(type) {
	case *ast.Output:
		return ExpressionType(module, locals, e.Body)

	case *ast.Block:
		if len(e.Exprs) == 0 {
			return nil, nil
		}
		return ExpressionType(module, locals, e.Exprs[len(e.Exprs)-1])

	case *ast.Let:
		return ExpressionType(module, locals, e.Expr)

	case *ast.If:
		return nil, skerrors.Unimplemented(module.Name, "If in the expression type oracle")

	case *ast.Empty:
		return nil, nil

	case *ast.Break:
		// spec.md §9: Break has no defined type; While is not lowered.
		return nil, nil

	case *ast.IntLiteral:
		return IntSeq(), nil

	case *ast.CharLiteral:
		return CharSeq(), nil

	case *ast.StringLiteral:
		return DynamicArrayOf(CharSeq()), nil

	case *ast.ArrayLookup:
		arrType, err := ExpressionType(module, locals, e.Array)
		if err != nil {
			return nil, err
		}
		if len(arrType) != 1 {
			return nil, skerrors.TypeMismatch(module.Name, "array lookup on non-array")
		}
		switch arrType[0].Kind {
		case FixedArray, DynamicArray:
			return arrType[0].Elem, nil
		default:
			return nil, skerrors.TypeMismatch(module.Name, "array lookup on non-array")
		}

	case *ast.CopyToSubModule:
		return nil, nil

	case *ast.FunctionCall:
		switch e.Name {
		case "new":
			return MemRegionSeq(), nil
		case "size":
			return IntSeq(), nil
		default:
			return nil, skerrors.UnknownFunctionCall(module.Name, e.Name)
		}

	case *ast.ReferenceToState:
		if t, ok := locals.LookupLocalType(e.Name); ok {
			return t, nil
		}
		h, ok := module.TypeForField(e.Name)
		if !ok {
			return nil, skerrors.BadReadFieldName(module.Name, e.Name)
		}
		return FromSourceType(h), nil

	case *ast.Tuple:
		var contents Sequence
		for _, elem := range e.Elems {
			t, err := ExpressionType(module, locals, elem)
			if err != nil {
				return nil, err
			}
			contents = append(contents, t...)
		}
		return PointerTo(contents), nil

	case *ast.TupleLookup:
		tupleType, err := ExpressionType(module, locals, e.Tuple)
		if err != nil {
			return nil, err
		}
		if len(tupleType) == 1 && tupleType[0].Kind == Pointer {
			inner := tupleType[0].Elem
			if e.Index < 0 || e.Index >= len(inner) {
				return nil, skerrors.TypeMismatch(module.Name, "tuple index out of range")
			}
			return Sequence{inner[e.Index]}, nil
		}
		return nil, skerrors.TypeMismatch(module.Name, "non-pointer tuple field of size 1")

	case *ast.BinaryOperator:
		return nil, skerrors.Unimplemented(module.Name, "BinaryOperator in the expression type oracle")

	default:
		return nil, skerrors.Unimplemented(module.Name, "expression form in the type oracle")
	}
}
