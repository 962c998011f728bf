// Package layout synthesizes the module state struct (spec.md §4.6) and
// publishes its field-index math as a stable, externally-consumable
// descriptor — adapted from the teacher's internal/iface, which played the
// same "stable structural contract for outside tooling" role for exported
// module interfaces.
package layout

import (
	"github.com/sunholo/skunkc/internal/ast"
	skerrors "github.com/sunholo/skunkc/internal/errors"
	"github.com/sunholo/skunkc/internal/types"
	"tinygo.org/x/go-llvm"
)

// Layout describes one module's state struct: for each handle i, slot 2i
// is current and 2i+1 is update; slot 2H is the bitfield; slots
// 2H+1..2H+S are nested submodule states, all in declaration order
// (spec.md §4.6 — field order and count are the ABI).
type Layout struct {
	ModuleName  string
	HandleNames []string
	HandleTypes []types.Sequence
	HandleUsage []ast.Usage
	Submodules  []*Layout
}

// Build walks a Module tree (parent then each submodule, recursively) and
// produces its Layout, validating handle-name uniqueness along the way
// (spec.md §3: "must be unique within a module").
func Build(m *ast.Module) (*Layout, error) {
	seen := make(map[string]bool, len(m.Handles))
	l := &Layout{ModuleName: m.Name}
	for _, h := range m.Handles {
		if seen[h.Name] {
			return nil, skerrors.DuplicateHandle(m.Name, h.Name)
		}
		seen[h.Name] = true
		l.HandleNames = append(l.HandleNames, h.Name)
		l.HandleTypes = append(l.HandleTypes, types.FromSourceType(h.Type))
		l.HandleUsage = append(l.HandleUsage, h.Usage)
	}
	for _, si := range m.Submodules {
		sub, err := Build(si.Module)
		if err != nil {
			return nil, err
		}
		l.Submodules = append(l.Submodules, sub)
	}
	return l, nil
}

func (l *Layout) HandleCount() int    { return len(l.HandleNames) }
func (l *Layout) SubmoduleCount() int { return len(l.Submodules) }

// CurrentIndex/UpdateIndex/BitfieldIndex/SubmoduleFieldIndex implement the
// "field index math" of spec.md §3.
func (l *Layout) CurrentIndex(i int) int         { return 2 * i }
func (l *Layout) UpdateIndex(i int) int          { return 2*i + 1 }
func (l *Layout) BitfieldIndex() int             { return 2 * l.HandleCount() }
func (l *Layout) SubmoduleFieldIndex(j int) int  { return 2*l.HandleCount() + 1 + j }
func (l *Layout) FieldCount() int                { return 2*l.HandleCount() + 1 + l.SubmoduleCount() }

// IndexForHandle returns the declaration-order index of a handle by name.
func (l *Layout) IndexForHandle(name string) (int, bool) {
	for i, n := range l.HandleNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// IRStructType builds the LLVM struct type for this module's state,
// recursing into submodule layouts in declaration order. The struct is
// not packed — natural alignment — but field order and count are load-
// bearing (spec.md §4.6).
func (l *Layout) IRStructType(ctx llvm.Context) llvm.Type {
	fields := make([]llvm.Type, 0, l.FieldCount())
	for _, t := range l.HandleTypes {
		irType := types.IRType(ctx, t)
		fields = append(fields, irType, irType)
	}
	fields = append(fields, ctx.Int64Type())
	for _, sub := range l.Submodules {
		fields = append(fields, sub.IRStructType(ctx))
	}
	return ctx.StructType(fields, false)
}
