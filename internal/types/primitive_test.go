package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sunholo/skunkc/internal/ast"
)

func TestFromSourceType_Tuple(t *testing.T) {
	got := FromSourceType(ast.TTuple{Elems: []ast.Type{ast.TInt{}, ast.TBool{}}})
	want := Sequence{{Kind: Int}, {Kind: Bool}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FromSourceType mismatch (-want +got):\n%s", diff)
	}
}

func TestFromSourceType_DynamicArray(t *testing.T) {
	got := FromSourceType(ast.TDynamicArray{Elem: ast.TChar{}})
	want := DynamicArrayOf(CharSeq())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FromSourceType mismatch (-want +got):\n%s", diff)
	}
}

func TestSequenceEqual(t *testing.T) {
	a := IntSeq()
	b := Sequence{{Kind: Int}}
	if !a.Equal(b) {
		t.Fatalf("expected %v to equal %v", a, b)
	}
	if a.Equal(CharSeq()) {
		t.Fatalf("Int should not equal Char")
	}
}

func TestSequenceString(t *testing.T) {
	seq := Sequence{{Kind: Int}, {Kind: Bool}}
	if got, want := seq.String(), "(Int, Bool)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestIsScalar(t *testing.T) {
	if !IntSeq().IsScalar() {
		t.Fatal("Int sequence should be scalar")
	}
	multi := Sequence{{Kind: Int}, {Kind: Char}}
	if multi.IsScalar() {
		t.Fatal("multi-element sequence should not be scalar")
	}
}
