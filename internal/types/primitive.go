// Package types implements TypePrimitive lowering (spec.md §4.1) and the
// expression type oracle (spec.md §4.8).
package types

import "fmt"

// Kind is the closed TypePrimitive sum (spec.md §3).
type Kind int

const (
	Int Kind = iota
	Char
	Bool
	MemRegion
	DynamicArray
	Pointer
	FixedArray
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case Char:
		return "Char"
	case Bool:
		return "Bool"
	case MemRegion:
		return "MemRegion"
	case DynamicArray:
		return "DynamicArrayOf"
	case Pointer:
		return "PointerTo"
	case FixedArray:
		return "FixedArrayOf"
	default:
		return "?"
	}
}

// Primitive is one element of a TypePrimitive sequence. Elem carries the
// element type for DynamicArray/Pointer/FixedArray; Len carries the static
// length for FixedArray.
type Primitive struct {
	Kind Kind
	Elem Sequence
	Len  int
}

// Sequence is a flattened TypePrimitive sequence: length 1 is scalar,
// longer sequences lower to an anonymous packed struct (spec.md §3, §4.1).
type Sequence []Primitive

func (s Sequence) String() string {
	if len(s) == 1 {
		p := s[0]
		switch p.Kind {
		case DynamicArray, FixedArray, Pointer:
			return fmt.Sprintf("%s(%s)", p.Kind, p.Elem)
		default:
			return p.Kind.String()
		}
	}
	out := "("
	for i, p := range s {
		if i > 0 {
			out += ", "
		}
		out += Sequence{p}.String()
	}
	return out + ")"
}

// Equal reports structural equality of two sequences, used by store/compare
// type-mismatch checks.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		a, b := s[i], other[i]
		if a.Kind != b.Kind || a.Len != b.Len {
			return false
		}
		if !a.Elem.Equal(b.Elem) {
			return false
		}
	}
	return true
}

// IsScalar reports whether the sequence lowers to a single IR value, i.e.
// has length 1 (a one-element flattened tuple counts as scalar).
func (s Sequence) IsScalar() bool { return len(s) == 1 }

func IntSeq() Sequence       { return Sequence{{Kind: Int}} }
func CharSeq() Sequence      { return Sequence{{Kind: Char}} }
func BoolSeq() Sequence      { return Sequence{{Kind: Bool}} }
func MemRegionSeq() Sequence { return Sequence{{Kind: MemRegion}} }

func DynamicArrayOf(elem Sequence) Sequence {
	return Sequence{{Kind: DynamicArray, Elem: elem}}
}

func PointerTo(elem Sequence) Sequence {
	return Sequence{{Kind: Pointer, Elem: elem}}
}

func FixedArrayOf(elem Sequence, n int) Sequence {
	return Sequence{{Kind: FixedArray, Elem: elem, Len: n}}
}
