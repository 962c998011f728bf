package ast

import "fmt"

// Print produces a deterministic s-expression rendering of an expression
// tree, used by the inspector REPL and by tests that want a readable
// golden form without round-tripping through the IR.
func Print(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch n := e.(type) {
	case *Output:
		name := n.Name
		if name == "" {
			name = "_"
		}
		arrow := "<-"
		if n.AndReturn {
			arrow = "<!-"
		}
		return fmt.Sprintf("(%s %s %s)", name, arrow, Print(n.Body))
	case *Block:
		s := "(block"
		for _, x := range n.Exprs {
			s += " " + Print(x)
		}
		return s + ")"
	case *Let:
		return fmt.Sprintf("(let %s %s)", n.Var, Print(n.Expr))
	case *If:
		return fmt.Sprintf("(if %s %s %s)", Print(n.Test), Print(n.Then), Print(n.Else))
	case *Empty:
		return "(empty)"
	case *Break:
		return "(break)"
	case *IntLiteral:
		return fmt.Sprintf("%d", n.Value)
	case *CharLiteral:
		return fmt.Sprintf("'%c'", n.Value)
	case *StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *ArrayLookup:
		return fmt.Sprintf("(index %s %s)", Print(n.Array), Print(n.Index))
	case *Tuple:
		s := "(tuple"
		for _, x := range n.Elems {
			s += " " + Print(x)
		}
		return s + ")"
	case *TupleLookup:
		return fmt.Sprintf("(%s . %d)", Print(n.Tuple), n.Index)
	case *ReferenceToState:
		return n.Name
	case *CopyToSubModule:
		return fmt.Sprintf("(copy-to-submodule %s -> submodule[%d].%s)", n.State, n.SubmoduleIndex, n.SubmoduleState)
	case *FunctionCall:
		return fmt.Sprintf("(%s %s)", n.Name, Print(n.Arg))
	case *BinaryOperator:
		return fmt.Sprintf("(%s %s %s)", n.Op, Print(n.Left), Print(n.Right))
	default:
		return fmt.Sprintf("<unknown %T>", e)
	}
}
