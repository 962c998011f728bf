package codegen

import (
	"github.com/sunholo/skunkc/internal/statevalue"
	"github.com/sunholo/skunkc/internal/types"
)

// symtab is the single flat local scope per listener body (spec.md §4.4's
// Let semantics: "a single flat local scope per listener", no nested
// shadowing). It is reset at the start of each listener compile.
type symtab struct {
	values map[string]statevalue.Value
}

func newSymtab() *symtab {
	return &symtab{values: make(map[string]statevalue.Value)}
}

func (t *symtab) reset() {
	t.values = make(map[string]statevalue.Value)
}

func (t *symtab) bind(name string, v statevalue.Value) {
	t.values[name] = v
}

func (t *symtab) lookup(name string) (statevalue.Value, bool) {
	v, ok := t.values[name]
	return v, ok
}

// LookupLocalType implements types.Locals for the expression type oracle.
func (t *symtab) LookupLocalType(name string) (types.Sequence, bool) {
	v, ok := t.values[name]
	if !ok {
		return nil, false
	}
	return v.Prim, true
}
