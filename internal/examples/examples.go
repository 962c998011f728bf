// Package examples builds small, hand-written ast.Module trees exercising
// each scenario of spec.md §8. Since the grammar parser and graph resolver
// are out of scope, these constructors are the only way to get an
// ast.Module into the compiler — they play the role the teacher's
// out-of-scope example-harness generator played for its own pipeline, and
// are what cmd/skunkc's "inspect"/"compile" subcommands offer in lieu of
// parsing real Skunk source text.
package examples

import "github.com/sunholo/skunkc/internal/ast"

// Passthrough (S1): three handles foo(R,W), far(R), bar(W), one listener
// foo.onChange: bar <- far. Starting from bitfield 0x1 (only foo pending),
// one _update call must drain foo, run the listener, and leave the
// bitfield at 0x4 (bar pending, far never touched) — not 0x0, which is
// what a per-handle bitfield reload would wrongly produce by observing
// bar's bit (set by this same listener call) within the same dispatch pass.
func Passthrough() *ast.Module {
	return &ast.Module{
		Name: "passthrough",
		Handles: []ast.Handle{
			{Name: "foo", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
			{Name: "far", Type: ast.TInt{}, Usage: ast.Read},
			{Name: "bar", Type: ast.TInt{}, Usage: ast.Write},
		},
		Listeners: []ast.Listener{
			{
				Trigger: "foo",
				Kind:    ast.OnChange,
				Body: &ast.Output{
					Name: "bar",
					Body: &ast.ReferenceToState{Name: "far"},
				},
			},
		},
	}
}

// InvalidTrigger (S2): a listener names a trigger that is not a handle of
// its module, which must be rejected before any IR is emitted.
func InvalidTrigger() *ast.Module {
	return &ast.Module{
		Name: "invalid_trigger",
		Handles: []ast.Handle{
			{Name: "x", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
		},
		Listeners: []ast.Listener{
			{Trigger: "not_a_handle", Kind: ast.OnChange, Body: &ast.Empty{}},
		},
	}
}

// Pipeline (S3): a parent module pushes its "input" handle into a child
// module's "in" handle; the child passes it through unchanged into "out";
// the parent drains "out" back into its own "result" handle.
func Pipeline() *ast.Module {
	child := &ast.Module{
		Name: "pipeline_child",
		Handles: []ast.Handle{
			{Name: "in", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
			{Name: "out", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
		},
		Listeners: []ast.Listener{
			{
				Trigger: "in",
				Kind:    ast.OnChange,
				Body: &ast.Output{
					Name: "out",
					Body: &ast.ReferenceToState{Name: "in"},
				},
			},
		},
	}

	return &ast.Module{
		Name: "pipeline_parent",
		Handles: []ast.Handle{
			{Name: "input", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
			{Name: "result", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
		},
		Listeners: []ast.Listener{
			{
				Trigger: "input",
				Kind:    ast.OnChange,
				Body: &ast.CopyToSubModule{
					State:          "input",
					SubmoduleIndex: 0,
					SubmoduleState: "in",
				},
			},
		},
		Submodules: []ast.SubmoduleInfo{
			{Module: child, HandleMap: map[string]string{"out": "result"}},
		},
	}
}

// NewIntrinsic (S4): a listener allocates a MemRegion via new(size) and
// stores its pointer handle.
func NewIntrinsic() *ast.Module {
	return &ast.Module{
		Name: "new_intrinsic",
		Handles: []ast.Handle{
			{Name: "size", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
			{Name: "buf", Type: ast.TMemRegion{}, Usage: ast.Read | ast.Write},
		},
		Listeners: []ast.Listener{
			{
				Trigger: "size",
				Kind:    ast.OnChange,
				Body: &ast.Output{
					Name: "buf",
					Body: &ast.FunctionCall{Name: "new", Arg: &ast.ReferenceToState{Name: "size"}},
				},
			},
		},
	}
}

// StringIndex (S5): a listener indexes a string-literal handle value.
func StringIndex() *ast.Module {
	return &ast.Module{
		Name: "string_index",
		Handles: []ast.Handle{
			{Name: "idx", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
			{Name: "ch", Type: ast.TChar{}, Usage: ast.Read | ast.Write},
		},
		Listeners: []ast.Listener{
			{
				Trigger: "idx",
				Kind:    ast.OnChange,
				Body: &ast.Output{
					Name: "ch",
					Body: &ast.ArrayLookup{
						Array: &ast.StringLiteral{Value: "skunk"},
						Index: &ast.ReferenceToState{Name: "idx"},
					},
				},
			},
		},
	}
}

// TuplePackProject (S6): a listener packs two Int handles into a tuple,
// then immediately projects field 0 back out.
func TuplePackProject() *ast.Module {
	return &ast.Module{
		Name: "tuple_pack_project",
		Handles: []ast.Handle{
			{Name: "a", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
			{Name: "b", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
			{Name: "first", Type: ast.TInt{}, Usage: ast.Read | ast.Write},
		},
		Listeners: []ast.Listener{
			{
				Trigger: "a",
				Kind:    ast.OnChange,
				Body: &ast.Output{
					Name: "first",
					Body: &ast.TupleLookup{
						Tuple: &ast.Tuple{Elems: []ast.Expr{
							&ast.ReferenceToState{Name: "a"},
							&ast.ReferenceToState{Name: "b"},
						}},
						Index: 0,
					},
				},
			},
		},
	}
}

// ShortCircuitOr (S7): short-circuit logical-or with indexing.
//
//	let offset = input.1;
//	if offset == size(input.0) || input.0[offset] < '0' || input.0[offset] > '9' {
//	  error <!- 1;
//	}
//	result <- 3;
//
// "input" is a pointer-to-tuple-of-(string, Int), the handle shape
// TupleLookup needs to project fields straight out of a ReferenceToState: a
// bare TTuple handle lowers to a flat multi-field sequence, which Load
// turns into an opaque Composite rather than something TupleLookup can
// project. The two field lookups recur three times (size/offset bounds and
// both character comparisons); only offset is bound via Let, so the
// left-associative `(A || B) || C` chain rebuilds each "input.0" access.
func ShortCircuitOr() *ast.Module {
	inputType := ast.TPointer{Elem: ast.TTuple{Elems: []ast.Type{
		ast.TDynamicArray{Elem: ast.TChar{}},
		ast.TInt{},
	}}}

	text := func() ast.Expr {
		return &ast.TupleLookup{Tuple: &ast.ReferenceToState{Name: "input"}, Index: 0}
	}
	offset := func() ast.Expr { return &ast.ReferenceToState{Name: "offset"} }

	return &ast.Module{
		Name: "short_circuit_or",
		Handles: []ast.Handle{
			{Name: "input", Type: inputType, Usage: ast.Read | ast.Write},
			{Name: "error", Type: ast.TInt{}, Usage: ast.Write},
			{Name: "result", Type: ast.TInt{}, Usage: ast.Write},
		},
		Listeners: []ast.Listener{
			{
				Trigger: "input",
				Kind:    ast.OnChange,
				Body: &ast.Block{Exprs: []ast.Expr{
					&ast.Let{
						Var:  "offset",
						Expr: &ast.TupleLookup{Tuple: &ast.ReferenceToState{Name: "input"}, Index: 1},
					},
					&ast.If{
						Test: &ast.BinaryOperator{
							Left: &ast.BinaryOperator{
								Left: &ast.BinaryOperator{
									Left:  offset(),
									Op:    ast.Equality,
									Right: &ast.FunctionCall{Name: "size", Arg: text()},
								},
								Op: ast.LogicalOr,
								Right: &ast.BinaryOperator{
									Left:  &ast.ArrayLookup{Array: text(), Index: offset()},
									Op:    ast.LessThan,
									Right: &ast.CharLiteral{Value: '0'},
								},
							},
							Op: ast.LogicalOr,
							Right: &ast.BinaryOperator{
								Left:  &ast.ArrayLookup{Array: text(), Index: offset()},
								Op:    ast.GreaterThan,
								Right: &ast.CharLiteral{Value: '9'},
							},
						},
						Then: &ast.Output{Name: "error", Body: &ast.IntLiteral{Value: 1}, AndReturn: true},
						Else: &ast.Empty{},
					},
					&ast.Output{Name: "result", Body: &ast.IntLiteral{Value: 3}},
				}},
			},
		},
	}
}

// All returns every named scenario, for tooling that wants to iterate them.
func All() map[string]*ast.Module {
	return map[string]*ast.Module{
		"passthrough":         Passthrough(),
		"invalid_trigger":     InvalidTrigger(),
		"pipeline":            Pipeline(),
		"new_intrinsic":       NewIntrinsic(),
		"string_index":        StringIndex(),
		"tuple_pack_project":  TuplePackProject(),
		"short_circuit_or":    ShortCircuitOr(),
	}
}
