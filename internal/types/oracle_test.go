package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/skunkc/internal/ast"
)

type fakeLocals map[string]Sequence

func (f fakeLocals) LookupLocalType(name string) (Sequence, bool) {
	t, ok := f[name]
	return t, ok
}

func oracleModule() *ast.Module {
	return &ast.Module{
		Name: "m",
		Handles: []ast.Handle{
			{Name: "x", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
		},
	}
}

func TestExpressionType_ReferenceToState(t *testing.T) {
	seq, err := ExpressionType(oracleModule(), fakeLocals{}, &ast.ReferenceToState{Name: "x"})
	require.NoError(t, err)
	require.True(t, seq.Equal(IntSeq()))
}

func TestExpressionType_UnknownHandle(t *testing.T) {
	_, err := ExpressionType(oracleModule(), fakeLocals{}, &ast.ReferenceToState{Name: "missing"})
	require.Error(t, err)
}

func TestExpressionType_Tuple(t *testing.T) {
	seq, err := ExpressionType(oracleModule(), fakeLocals{}, &ast.Tuple{
		Elems: []ast.Expr{
			&ast.IntLiteral{Value: 1},
			&ast.CharLiteral{Value: 'a'},
		},
	})
	require.NoError(t, err)
	require.Len(t, seq, 1)
	require.Equal(t, Pointer, seq[0].Kind)
}

func TestExpressionType_If_Unimplemented(t *testing.T) {
	_, err := ExpressionType(oracleModule(), fakeLocals{}, &ast.If{
		Test: &ast.IntLiteral{Value: 1},
		Then: &ast.IntLiteral{Value: 1},
		Else: &ast.IntLiteral{Value: 2},
	})
	require.Error(t, err)
}

func TestExpressionType_NewIntrinsic(t *testing.T) {
	seq, err := ExpressionType(oracleModule(), fakeLocals{}, &ast.FunctionCall{
		Name: "new",
		Arg:  &ast.IntLiteral{Value: 8},
	})
	require.NoError(t, err)
	require.True(t, seq.Equal(MemRegionSeq()))
}
