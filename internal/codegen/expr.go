package codegen

import (
	"fmt"

	"github.com/sunholo/skunkc/internal/ast"
	skerrors "github.com/sunholo/skunkc/internal/errors"
	"github.com/sunholo/skunkc/internal/statevalue"
	"github.com/sunholo/skunkc/internal/types"
	"tinygo.org/x/go-llvm"
)

// CompileExpr emits IR for expr, evaluated against module's own Layout and
// statePtr (this module's, not a submodule's, state-struct pointer), and
// returns the StateValue it produces. It is the expression compiler of
// spec.md §4.4.
func (s *State) CompileExpr(module *ast.Module, statePtr llvm.Value, expr ast.Expr) (statevalue.Value, error) {
	switch e := expr.(type) {

	case *ast.Output:
		v, err := s.CompileExpr(module, statePtr, e.Body)
		if err != nil {
			return statevalue.Value{}, err
		}
		if e.Name != "" {
			idx, ok := s.Layout.IndexForHandle(e.Name)
			if !ok {
				return statevalue.Value{}, skerrors.BadReadFieldName(module.Name, e.Name)
			}
			up, err := s.fieldPointer(s.Layout, statePtr, e.Name, WriteAndSet)
			if err != nil {
				return statevalue.Value{}, err
			}
			if err := up.Store(v, s.Layout.HandleTypes[idx]); err != nil {
				return statevalue.Value{}, err
			}
		}
		if e.AndReturn {
			s.builder.CreateRetVoid()
			s.returned = true
		}
		return v, nil

	case *ast.Block:
		result := statevalue.NewNone()
		for _, sub := range e.Exprs {
			v, err := s.CompileExpr(module, statePtr, sub)
			if err != nil {
				return statevalue.Value{}, err
			}
			result = v
		}
		return result, nil

	case *ast.Let:
		v, err := s.CompileExpr(module, statePtr, e.Expr)
		if err != nil {
			return statevalue.Value{}, err
		}
		s.locals.bind(e.Var, v)
		return v, nil

	case *ast.If:
		return s.compileIf(module, statePtr, e)

	case *ast.Empty:
		return statevalue.NewNone(), nil

	case *ast.Break:
		return statevalue.Value{}, skerrors.Unimplemented(module.Name, "Break")

	case *ast.IntLiteral:
		return statevalue.NewInt(llvm.ConstInt(s.ctx.Int64Type(), uint64(e.Value), true)), nil

	case *ast.CharLiteral:
		return statevalue.NewChar(llvm.ConstInt(s.ctx.Int8Type(), uint64(e.Value), false)), nil

	case *ast.StringLiteral:
		return s.compileStringLiteral(e), nil

	case *ast.ArrayLookup:
		arr, err := s.CompileExpr(module, statePtr, e.Array)
		if err != nil {
			return statevalue.Value{}, err
		}
		idx, err := s.CompileExpr(module, statePtr, e.Index)
		if err != nil {
			return statevalue.Value{}, err
		}
		return statevalue.ArrayLookup(s, arr, idx)

	case *ast.Tuple:
		elems := make([]statevalue.Value, 0, len(e.Elems))
		for _, sub := range e.Elems {
			v, err := s.CompileExpr(module, statePtr, sub)
			if err != nil {
				return statevalue.Value{}, err
			}
			elems = append(elems, v)
		}
		return statevalue.TuplePack(s, elems)

	case *ast.TupleLookup:
		tup, err := s.CompileExpr(module, statePtr, e.Tuple)
		if err != nil {
			return statevalue.Value{}, err
		}
		return statevalue.TupleProject(s, tup, e.Index)

	case *ast.ReferenceToState:
		if v, ok := s.locals.lookup(e.Name); ok {
			return v, nil
		}
		idx, ok := s.Layout.IndexForHandle(e.Name)
		if !ok {
			return statevalue.Value{}, skerrors.BadReadFieldName(module.Name, e.Name)
		}
		up, err := s.fieldPointer(s.Layout, statePtr, e.Name, ReadWithoutClearing)
		if err != nil {
			return statevalue.Value{}, err
		}
		return up.Load(s.Layout.HandleTypes[idx], e.Name), nil

	case *ast.CopyToSubModule:
		return statevalue.NewNone(), s.compileCopyToSubModule(module, statePtr, e)

	case *ast.FunctionCall:
		return s.compileFunctionCall(module, statePtr, e)

	case *ast.BinaryOperator:
		return s.compileBinaryOperator(module, statePtr, e)

	default:
		return statevalue.Value{}, skerrors.Unimplemented(module.Name, fmt.Sprintf("expression form %T", expr))
	}
}

// compileStringLiteral materializes a string constant as a global and
// returns it as a DynamicArrayOf(Char) StateValue (spec.md §4.4).
func (s *State) compileStringLiteral(e *ast.StringLiteral) statevalue.Value {
	g := s.builder.CreateGlobalStringPtr(e.Value, "str_lit")
	size := llvm.ConstInt(s.ctx.Int64Type(), uint64(len(e.Value)), false)
	return statevalue.NewDynamicArray(g, size, types.CharSeq())
}

// compileFunctionCall handles the two built-ins spec.md §4.4 recognizes:
// new(n) allocates an n-byte MemRegion; size(v) is statevalue.Size.
func (s *State) compileFunctionCall(module *ast.Module, statePtr llvm.Value, e *ast.FunctionCall) (statevalue.Value, error) {
	switch e.Name {
	case "new":
		n, err := s.CompileExpr(module, statePtr, e.Arg)
		if err != nil {
			return statevalue.Value{}, err
		}
		if n.Tag != statevalue.Int {
			return statevalue.Value{}, skerrors.TypeMismatch(module.Name, "new() argument must be Int")
		}
		data := s.Malloc(n.Scalar)
		return statevalue.NewMemRegion(data, n.Scalar), nil

	case "size":
		v, err := s.CompileExpr(module, statePtr, e.Arg)
		if err != nil {
			return statevalue.Value{}, err
		}
		return statevalue.Size(s, v)

	default:
		return statevalue.Value{}, skerrors.UnknownFunctionCall(module.Name, e.Name)
	}
}

// compileIf joins Then/Else with a phi node. spec.md §4.4 keys the None
// decision on the then-value alone: "if the then-value is None, the result
// is None; otherwise emit a phi over the then and else values." An arm that
// ends with an AndReturn (e.g. spec.md §8's `if ... { error <!- 1; }`, whose
// Else is an Empty/None arm) already terminates its block with a ret void —
// such an arm contributes no edge to the join block, so it is excluded from
// the phi rather than fed into it as a dangling incoming value.
func (s *State) compileIf(module *ast.Module, statePtr llvm.Value, e *ast.If) (statevalue.Value, error) {
	test, err := s.CompileExpr(module, statePtr, e.Test)
	if err != nil {
		return statevalue.Value{}, err
	}
	cond := test.Scalar
	if test.Tag != statevalue.Bool {
		zero := llvm.ConstInt(s.ctx.Int64Type(), 0, false)
		cond = s.builder.CreateICmp(llvm.IntNE, test.Scalar, zero, "if_test")
	}

	thenBlock := s.AppendBlock("if_then")
	elseBlock := s.AppendBlock("if_else")
	joinBlock := s.AppendBlock("if_join")
	s.builder.CreateCondBr(cond, thenBlock, elseBlock)

	savedReturned := s.returned

	s.returned = false
	s.builder.SetInsertPointAtEnd(thenBlock)
	thenVal, err := s.CompileExpr(module, statePtr, e.Then)
	if err != nil {
		return statevalue.Value{}, err
	}
	thenReturned := s.returned
	thenEnd := s.builder.GetInsertBlock()
	if !thenReturned {
		s.builder.CreateBr(joinBlock)
	}

	s.returned = false
	s.builder.SetInsertPointAtEnd(elseBlock)
	elseVal, err := s.CompileExpr(module, statePtr, e.Else)
	if err != nil {
		return statevalue.Value{}, err
	}
	elseReturned := s.returned
	elseEnd := s.builder.GetInsertBlock()
	if !elseReturned {
		s.builder.CreateBr(joinBlock)
	}

	s.returned = savedReturned || (thenReturned && elseReturned)

	s.builder.SetInsertPointAtEnd(joinBlock)
	switch {
	case thenReturned && elseReturned:
		// Both arms already returned: the join block is unreachable.
		s.builder.CreateUnreachable()
		return statevalue.NewNone(), nil
	case thenReturned:
		return elseVal, nil
	case elseReturned:
		return thenVal, nil
	case thenVal.Tag == statevalue.None:
		return statevalue.NewNone(), nil
	default:
		phi := s.builder.CreatePHI(thenVal.Scalar.Type(), "if_result")
		phi.AddIncoming([]llvm.Value{thenVal.Scalar, elseVal.Scalar}, []llvm.BasicBlock{thenEnd, elseEnd})
		result := thenVal
		result.Scalar = phi
		return result, nil
	}
}

// compileBinaryOperator implements spec.md §4.4: LogicalOr/LogicalAnd
// short-circuit via phi; Equality/LessThan/GreaterThan evaluate both sides
// eagerly and dispatch to the StateValue algebra.
func (s *State) compileBinaryOperator(module *ast.Module, statePtr llvm.Value, e *ast.BinaryOperator) (statevalue.Value, error) {
	if e.Op.IsLogical() {
		return s.compileShortCircuit(module, statePtr, e)
	}

	left, err := s.CompileExpr(module, statePtr, e.Left)
	if err != nil {
		return statevalue.Value{}, err
	}
	right, err := s.CompileExpr(module, statePtr, e.Right)
	if err != nil {
		return statevalue.Value{}, err
	}
	switch e.Op {
	case ast.Equality:
		return statevalue.Equals(s, left, right)
	case ast.LessThan:
		return statevalue.LessThan(s, left, right)
	case ast.GreaterThan:
		return statevalue.GreaterThan(s, left, right)
	default:
		return statevalue.Value{}, skerrors.Unimplemented(module.Name, "binary operator "+e.Op.String())
	}
}

// compileShortCircuit emits the classic two-block short-circuit form: for
// ||, evaluate left; if true, skip right and join with true; otherwise
// evaluate right and join with its value. && is the dual.
func (s *State) compileShortCircuit(module *ast.Module, statePtr llvm.Value, e *ast.BinaryOperator) (statevalue.Value, error) {
	left, err := s.CompileExpr(module, statePtr, e.Left)
	if err != nil {
		return statevalue.Value{}, err
	}
	leftEnd := s.builder.GetInsertBlock()

	rhsBlock := s.AppendBlock("shortcircuit_rhs")
	joinBlock := s.AppendBlock("shortcircuit_join")

	if e.Op == ast.LogicalOr {
		s.builder.CreateCondBr(left.Scalar, joinBlock, rhsBlock)
	} else {
		s.builder.CreateCondBr(left.Scalar, rhsBlock, joinBlock)
	}

	s.builder.SetInsertPointAtEnd(rhsBlock)
	right, err := s.CompileExpr(module, statePtr, e.Right)
	if err != nil {
		return statevalue.Value{}, err
	}
	rhsEnd := s.builder.GetInsertBlock()
	s.builder.CreateBr(joinBlock)

	s.builder.SetInsertPointAtEnd(joinBlock)
	phi := s.builder.CreatePHI(s.ctx.Int1Type(), "shortcircuit_result")
	phi.AddIncoming([]llvm.Value{left.Scalar, right.Scalar}, []llvm.BasicBlock{leftEnd, rhsEnd})
	return statevalue.NewBool(phi), nil
}
