package scenariofile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_SimpleManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "m.yaml", `
name: passthrough
handles:
  - name: x
    type: Int
    read: true
    write: true
`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "passthrough", m.Name)
	require.Len(t, m.Handles, 1)
	require.Equal(t, "x", m.Handles[0].Name)
}

func TestToModule_WithSubmodule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "child.yaml", `
name: child
handles:
  - name: in
    type: Int
    read: true
    write: true
`)
	parentPath := writeFile(t, dir, "parent.yaml", `
name: parent
handles:
  - name: p
    type: Int
    read: true
    write: true
submodules:
  - file: child.yaml
    handle_map:
      in: p
`)

	m, err := Load(parentPath)
	require.NoError(t, err)

	mod, err := m.ToModule(dir)
	require.NoError(t, err)
	require.Equal(t, "parent", mod.Name)
	require.Len(t, mod.Submodules, 1)
	require.Equal(t, "child", mod.Submodules[0].Module.Name)
	require.Equal(t, "p", mod.Submodules[0].HandleMap["in"])
}

func TestToModule_UnknownType(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", `
name: bad
handles:
  - name: x
    type: NotAType
`)
	m, err := Load(path)
	require.NoError(t, err)

	_, err = m.ToModule(dir)
	require.Error(t, err)
}
