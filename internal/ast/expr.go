package ast

// Expr is the base interface for Skunk expressions: the bodies of listener
// implementations. Unlike a general-purpose language AST this is not in
// A-normal form — the expression compiler (internal/codegen) performs its
// own ANF-style decomposition into basic blocks as it emits IR.
type Expr interface {
	expr()
}

// Output writes the value of Body into the handle named Name (WriteAndSet,
// spec.md §4.3) unless Name is empty, in which case the body is evaluated
// purely for effect (e.g. a CopyToSubModule). AndReturn, if set, emits an
// IR return immediately after the write.
type Output struct {
	Name      string
	Body      Expr
	AndReturn bool
}

func (*Output) expr() {}

// Block evaluates its expressions in order; its value is that of the last
// expression, or None if empty.
type Block struct {
	Exprs []Expr
}

func (*Block) expr() {}

// Let binds Var to the value of Expr within the remainder of the enclosing
// listener body (spec.md: "a single flat local scope per listener").
type Let struct {
	Var  string
	Expr Expr
}

func (*Let) expr() {}

// If branches on Test (compared against zero) and joins Then/Else with a
// phi node unless Then is None-typed.
type If struct {
	Test Expr
	Then Expr
	Else Expr
}

func (*If) expr() {}

// Empty produces no IR and the None value.
type Empty struct{}

func (*Empty) expr() {}

// Break is an unimplemented extension point (spec.md §9): while loops are
// announced by the AST but the core does not lower them.
type Break struct{}

func (*Break) expr() {}

type IntLiteral struct{ Value int64 }

func (*IntLiteral) expr() {}

type CharLiteral struct{ Value byte }

func (*CharLiteral) expr() {}

type StringLiteral struct{ Value string }

func (*StringLiteral) expr() {}

// ArrayLookup indexes Array (a DynamicArrayOf/FixedArrayOf value) at Index.
// No bounds checking is performed (spec.md §4.2).
type ArrayLookup struct {
	Array Expr
	Index Expr
}

func (*ArrayLookup) expr() {}

// Tuple packs the values of Elems into a heap-allocated tuple.
type Tuple struct {
	Elems []Expr
}

func (*Tuple) expr() {}

// TupleLookup projects field Index out of a pointer-to-tuple value.
type TupleLookup struct {
	Tuple Expr
	Index int
}

func (*TupleLookup) expr() {}

// ReferenceToState reads a local let-binding if Name is bound, otherwise
// the current value of handle Name.
type ReferenceToState struct {
	Name string
}

func (*ReferenceToState) expr() {}

// CopyToSubModule implements the parent->child push / fixpoint / drain
// protocol of spec.md §4.5. State is the parent handle whose current value
// is pushed into the child; SubmoduleIndex selects the child in
// Module.Submodules; SubmoduleState names the child handle receiving it.
type CopyToSubModule struct {
	State           string
	SubmoduleIndex  int
	SubmoduleState  string
}

func (*CopyToSubModule) expr() {}

// FunctionCall invokes a built-in function. The core recognizes exactly
// "new" and "size" (spec.md §4.4); any other name is UnknownFunctionCall.
type FunctionCall struct {
	Name string
	Arg  Expr
}

func (*FunctionCall) expr() {}

// Operator enumerates the binary operators the expression compiler
// understands. Anything beyond these is an open extension point.
type Operator int

const (
	LogicalOr Operator = iota
	LogicalAnd
	Equality
	LessThan
	GreaterThan
)

func (o Operator) IsLogical() bool { return o == LogicalOr || o == LogicalAnd }

func (o Operator) String() string {
	switch o {
	case LogicalOr:
		return "||"
	case LogicalAnd:
		return "&&"
	case Equality:
		return "=="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	default:
		return "?"
	}
}

type BinaryOperator struct {
	Left  Expr
	Op    Operator
	Right Expr
}

func (*BinaryOperator) expr() {}
