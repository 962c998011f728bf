package layout

import (
	"encoding/json"

	"github.com/sunholo/skunkc/internal/ast"
)

// Descriptor is the normalized, JSON-serializable form of a Layout, for
// external test harnesses and drivers that construct ModuleState structs
// directly (spec.md §6: "the ABI... is the contract with externally-
// written tests and drivers").
type Descriptor struct {
	Schema         string             `json:"schema"`
	Module         string             `json:"module"`
	BitfieldField  int                `json:"bitfield_field"`
	Handles        []HandleDescriptor `json:"handles"`
	Submodules     []Descriptor       `json:"submodules"`
}

type HandleDescriptor struct {
	Name          string `json:"name"`
	CurrentField  int    `json:"current_field"`
	UpdateField   int    `json:"update_field"`
	Type          string `json:"type"`
	Read          bool   `json:"read"`
	Write         bool   `json:"write"`
}

const Schema = "skunkc.layout/v1"

// ToDescriptor flattens a Layout into its normalized Descriptor form.
func (l *Layout) ToDescriptor() Descriptor {
	d := Descriptor{
		Schema:        Schema,
		Module:        l.ModuleName,
		BitfieldField: l.BitfieldIndex(),
	}
	for i, name := range l.HandleNames {
		d.Handles = append(d.Handles, HandleDescriptor{
			Name:         name,
			CurrentField: l.CurrentIndex(i),
			UpdateField:  l.UpdateIndex(i),
			Type:         l.HandleTypes[i].String(),
			Read:         l.HandleUsage[i].Has(ast.Read),
			Write:        l.HandleUsage[i].Has(ast.Write),
		})
	}
	for _, sub := range l.Submodules {
		d.Submodules = append(d.Submodules, sub.ToDescriptor())
	}
	return d
}

// ToJSON renders the Layout's Descriptor as indented JSON.
func (l *Layout) ToJSON() (string, error) {
	data, err := json.MarshalIndent(l.ToDescriptor(), "", "  ")
	return string(data), err
}
