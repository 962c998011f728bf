package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Schema identifies the Report JSON shape for external tooling that parses
// skunkc's diagnostics (spec.md §7: structured, machine-readable errors).
const Schema = "skunkc.report/v1"

// Fix represents a suggested fix with confidence score.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Report is the canonical structured error type for skunkc. All error
// builders below return an error that already wraps their *Report with
// WrapReport, so it survives errors.As() unwrapping back out of the codegen
// packages.
type Report struct {
	Schema  string         `json:"schema"` // Always Schema
	Code    string         `json:"code"`
	Phase   string         `json:"phase"` // "types", "codegen", "layout", ...
	Message string         `json:"message"`
	Module  string         `json:"module,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// ReportError wraps a Report as an error.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error. Call sites return
// errors.WrapReport(report) to preserve structure through ordinary `error`
// return values.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON converts a Report to JSON.
func (r *Report) ToJSON(compact bool) (string, error) {
	if compact {
		data, err := json.Marshal(r)
		return string(data), err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	return string(data), err
}

func newReport(code, phase, module, msg string, data map[string]any) error {
	return WrapReport(&Report{
		Schema:  Schema,
		Code:    code,
		Phase:   phase,
		Module:  module,
		Message: msg,
		Data:    data,
	})
}

// BadListenerTrigger — a listener names a handle that does not exist on
// its module (spec.md §7).
func BadListenerTrigger(module, trigger string) error {
	return newReport(LIS001, "codegen", module,
		fmt.Sprintf("listener trigger %q is not a handle of module %q", trigger, module),
		map[string]any{"trigger": trigger})
}

// FunctionMissing — an update function attempts to call a listener that
// was not emitted.
func FunctionMissing(module, functionName string) error {
	return newReport(LIS002, "codegen", module,
		fmt.Sprintf("listener function %q was not emitted", functionName),
		map[string]any{"function": functionName})
}

// BadReadFieldName — a reference-to-state names a non-handle, non-local.
func BadReadFieldName(module, name string) error {
	return newReport(COD001, "codegen", module,
		fmt.Sprintf("%q is neither a local binding nor a handle of module %q", name, module),
		map[string]any{"name": name})
}

// UnknownFunctionCall — FunctionCall references a name other than
// new/size.
func UnknownFunctionCall(module, name string) error {
	return newReport(COD002, "codegen", module,
		fmt.Sprintf("unknown function %q (only \"new\" and \"size\" are built in)", name),
		map[string]any{"name": name})
}

// Unimplemented — an expression form the compiler does not lower
// (spec.md §9: Break, and the type oracle's If/BinaryOperator stubs).
func Unimplemented(module, what string) error {
	return newReport(COD005, "codegen", module,
		fmt.Sprintf("%s is not implemented", what),
		map[string]any{"what": what})
}

// BadSubmoduleIndex — a CopyToSubModule names a submodule index out of
// range for its module.
func BadSubmoduleIndex(module string, idx, count int) error {
	return newReport(COD006, "codegen", module,
		fmt.Sprintf("submodule index %d out of range (module has %d submodules)", idx, count),
		map[string]any{"index": idx, "count": count})
}

// TypeMismatch — store/load mismatch, non-array indexed, non-tuple
// projected, etc.
func TypeMismatch(module, detail string) error {
	return newReport(TYP001, "types", module, detail, nil)
}

// NoDefinedSize — size() was requested on a type without a well-defined
// size.
func NoDefinedSize(module, typeDesc string) error {
	return newReport(TYP002, "types", module,
		fmt.Sprintf("type %s has no defined size", typeDesc), nil)
}

// NotAnArray — array_lookup was attempted on a non-array value.
func NotAnArray(module, typeDesc string) error {
	return newReport(TYP003, "types", module,
		fmt.Sprintf("type %s is not indexable", typeDesc), nil)
}

// NotATuple — a tuple operation was attempted on a non-tuple value.
func NotATuple(module, typeDesc string) error {
	return newReport(TYP004, "types", module,
		fmt.Sprintf("type %s is not a tuple", typeDesc), nil)
}

// NoDefinedOrder — ordering was requested on a non-integer primitive.
func NoDefinedOrder(module, typeDesc string) error {
	return newReport(TYP005, "types", module,
		fmt.Sprintf("type %s has no defined ordering", typeDesc), nil)
}

// DuplicateHandle — two handles in the same module share a name.
func DuplicateHandle(module, name string) error {
	return newReport(LAY001, "layout", module,
		fmt.Sprintf("duplicate handle name %q", name), nil)
}
