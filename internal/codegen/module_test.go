package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"tinygo.org/x/go-llvm"

	"github.com/sunholo/skunkc/internal/errors"
	"github.com/sunholo/skunkc/internal/examples"
)

func allIR(mods []llvm.Module) string {
	var b strings.Builder
	for _, m := range mods {
		b.WriteString(m.String())
	}
	return b.String()
}

func TestCompileModule_Passthrough(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	mods, err := CompileModule(ctx, examples.Passthrough())
	require.NoError(t, err)
	require.Len(t, mods, 1)

	ir := allIR(mods)
	require.Contains(t, ir, "passthrough_update")
	require.Contains(t, ir, "passthrough__OnChange__foo")
}

func TestCompileModule_InvalidTrigger(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	_, err := CompileModule(ctx, examples.InvalidTrigger())
	require.Error(t, err)

	rep, ok := errors.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errors.LIS001, rep.Code)
}

func TestCompileModule_Pipeline(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	mods, err := CompileModule(ctx, examples.Pipeline())
	require.NoError(t, err)
	require.Len(t, mods, 2)

	ir := allIR(mods)
	require.True(t, strings.Contains(ir, "pipeline_parent_update"))
	require.True(t, strings.Contains(ir, "pipeline_child_update"))
}

func TestCompileModule_AllScenariosCompile(t *testing.T) {
	for name, mod := range examples.All() {
		name, mod := name, mod
		t.Run(name, func(t *testing.T) {
			ctx := llvm.NewContext()
			defer ctx.Dispose()

			_, err := CompileModule(ctx, mod)
			if name == "invalid_trigger" {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
