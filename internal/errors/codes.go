// Package errors provides centralized error code definitions for skunkc.
// All error codes follow a consistent taxonomy for structured error
// reporting, adapted from the teacher's AI-friendly error code registry.
package errors

// Error code constants organized by phase.
const (
	// ============================================================
	// Listener / trigger validation (LIS###) — spec.md §4.7, §7
	// ============================================================

	// LIS001 indicates a listener's trigger does not name a handle on its
	// module (BadListenerTrigger). Detected before any IR is emitted for
	// the containing update function.
	LIS001 = "LIS001"

	// LIS002 indicates an update function attempted to call a listener
	// function that was never emitted (FunctionMissing).
	LIS002 = "LIS002"

	// ============================================================
	// Expression compilation (COD###) — spec.md §4.4, §4.5
	// ============================================================

	// COD001 indicates a reference-to-state names neither a local
	// binding nor an existing handle (BadReadFieldName).
	COD001 = "COD001"

	// COD002 indicates an unrecognized built-in function name in a
	// FunctionCall (UnknownFunctionCall).
	COD002 = "COD002"

	// COD005 indicates an unimplemented expression form reached the
	// compiler: Break, or an If/BinaryOperator combination the type oracle
	// does not cover (spec.md §9).
	COD005 = "COD005"

	// COD006 indicates a submodule index in a CopyToSubModule is out of
	// range for its module's Submodules list.
	COD006 = "COD006"

	// ============================================================
	// StateValue / type-primitive errors (TYP###) — spec.md §4.2
	// ============================================================

	// TYP001 indicates a store/load primitive mismatch between a value
	// and its destination (TypeMismatch).
	TYP001 = "TYP001"

	// TYP002 indicates size() was requested on a type with no
	// well-defined size.
	TYP002 = "TYP002"

	// TYP003 indicates array_lookup was attempted on a non-array value.
	TYP003 = "TYP003"

	// TYP004 indicates a tuple operation (pack/project) was attempted on
	// a non-tuple value.
	TYP004 = "TYP004"

	// TYP005 indicates ordering (<, >) was requested on a non-integer
	// primitive.
	TYP005 = "TYP005"

	// ============================================================
	// Module layout (LAY###) — spec.md §4.6
	// ============================================================

	// LAY001 indicates a handle name collision within a module's
	// declared handle list.
	LAY001 = "LAY001"
)

// ErrorInfo provides structured information about an error code.
type ErrorInfo struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// Registry maps error codes to their information.
var Registry = map[string]ErrorInfo{
	LIS001: {LIS001, "codegen", "listener", "Listener trigger names no handle"},
	LIS002: {LIS002, "codegen", "listener", "Listener function not emitted"},
	COD001: {COD001, "codegen", "reference", "Reference to unknown field"},
	COD002: {COD002, "codegen", "builtin", "Unknown built-in function"},
	COD005: {COD005, "codegen", "unimplemented", "Expression form not implemented"},
	COD006: {COD006, "codegen", "submodule", "Submodule index out of range"},
	TYP001: {TYP001, "types", "mismatch", "Primitive type mismatch"},
	TYP002: {TYP002, "types", "size", "Type has no defined size"},
	TYP003: {TYP003, "types", "array", "Not an array type"},
	TYP004: {TYP004, "types", "tuple", "Not a tuple type"},
	TYP005: {TYP005, "types", "order", "Type has no defined ordering"},
	LAY001: {LAY001, "layout", "handle", "Duplicate handle name"},
}

// GetErrorInfo returns information about an error code.
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, exists := Registry[code]
	return info, exists
}
