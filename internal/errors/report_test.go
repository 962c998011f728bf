package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsReport_RoundTrip(t *testing.T) {
	err := BadListenerTrigger("m", "not_a_handle")

	rep, ok := AsReport(err)
	require.True(t, ok)
	require.Equal(t, LIS001, rep.Code)
	require.Equal(t, "m", rep.Module)
	require.Equal(t, Schema, rep.Schema)
}

func TestAsReport_WrappedError(t *testing.T) {
	inner := TypeMismatch("m", "bad store")
	wrapped := fmtErrorf(inner)

	rep, ok := AsReport(wrapped)
	require.True(t, ok)
	require.Equal(t, TYP001, rep.Code)
}

func TestAsReport_PlainError(t *testing.T) {
	_, ok := AsReport(stderrors.New("plain"))
	require.False(t, ok)
}

func TestToJSON(t *testing.T) {
	err := DuplicateHandle("m", "x")
	rep, ok := AsReport(err)
	require.True(t, ok)

	text, jsonErr := rep.ToJSON(true)
	require.NoError(t, jsonErr)
	require.Contains(t, text, LAY001)
}

func TestGetErrorInfo(t *testing.T) {
	info, ok := GetErrorInfo(COD001)
	require.True(t, ok)
	require.Equal(t, "codegen", info.Phase)

	_, ok = GetErrorInfo("NOPE000")
	require.False(t, ok)
}

// fmtErrorf wraps err the way a caller higher up the stack would, to make
// sure AsReport still finds the Report through errors.As's unwrapping.
func fmtErrorf(err error) error {
	return &wrapper{err}
}

type wrapper struct{ err error }

func (w *wrapper) Error() string { return w.err.Error() }
func (w *wrapper) Unwrap() error { return w.err }
