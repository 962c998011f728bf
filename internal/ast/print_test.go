package ast

import "testing"

func TestPrint_Output(t *testing.T) {
	e := &Output{Name: "x", Body: &ReferenceToState{Name: "y"}}
	if got, want := Print(e), "(x <- y)"; got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrint_OutputAndReturn(t *testing.T) {
	e := &Output{Name: "x", Body: &IntLiteral{Value: 1}, AndReturn: true}
	if got, want := Print(e), "(x <!- 1)"; got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrint_BinaryOperator(t *testing.T) {
	e := &BinaryOperator{Left: &IntLiteral{Value: 1}, Op: Equality, Right: &IntLiteral{Value: 2}}
	if got, want := Print(e), "(== 1 2)"; got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrint_CopyToSubModule(t *testing.T) {
	e := &CopyToSubModule{State: "input", SubmoduleIndex: 0, SubmoduleState: "in"}
	if got, want := Print(e), "(copy-to-submodule input -> submodule[0].in)"; got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrint_Nil(t *testing.T) {
	if got, want := Print(nil), "<nil>"; got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}
